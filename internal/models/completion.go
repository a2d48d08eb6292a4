package model

import (
	"time"

	"github.com/MassBabyGeek/HabitFlow-backend/internal/clock"
)

// CompletionEvent est un enregistrement "activité X faite le jour Y" pour un
// participant. Journal en append-only : jamais modifié ni supprimé par le
// moteur. Unicité garantie en base sur (participant_id, activity_id,
// completed_on).
type CompletionEvent struct {
	ID               string     `json:"id"`
	ParticipantID    string     `json:"participantId"`
	ActivityID       string     `json:"activityId"`
	CompletedOn      clock.Date `json:"completedOn"`
	VerificationURL  *string    `json:"verificationUrl,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// DedupeCompletions réduit une liste brute d'événements en paires
// (activité, date) uniques. Défensif : des lignes dupliquées peuvent exister
// si la contrainte d'unicité a été ajoutée après coup sur de vieilles données.
func DedupeCompletions(events []CompletionEvent) map[[2]string]bool {
	set := make(map[[2]string]bool, len(events))
	for _, e := range events {
		set[[2]string{e.ActivityID, e.CompletedOn.String()}] = true
	}
	return set
}
