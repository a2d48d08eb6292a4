package model

import (
	"time"

	"github.com/MassBabyGeek/HabitFlow-backend/internal/clock"
)

// Statuts d'un participant. completed et failed sont terminaux : une fois
// posés ils ne sont jamais remis à active. abandoned et left résultent d'une
// action explicite de l'utilisateur.
const (
	ParticipantStatusActive    = "active"
	ParticipantStatusCompleted = "completed"
	ParticipantStatusFailed    = "failed"
	ParticipantStatusAbandoned = "abandoned"
	ParticipantStatusLeft      = "left"
)

// Paliers de badge. BadgeFailed est une sentinelle, pas un palier affichable.
const (
	BadgeGold   = "gold"
	BadgeSilver = "silver"
	BadgeBronze = "bronze"
	BadgeFailed = "failed"
)

// Participant est l'inscription d'un utilisateur à un challenge, avec sa
// propre date de départ. Les champs dérivés ne sont écrits que par le
// recalcul de progression et le reclassement, jamais par les handlers.
type Participant struct {
	ID                 string     `json:"id"`
	ChallengeID        string     `json:"challengeId"`
	UserID             string     `json:"userId"`
	StartDate          clock.Date `json:"startDate"`
	Status             string     `json:"status"`
	SelectedActivities []string   `json:"selectedActivities,omitempty"`

	// Champs dérivés.
	CurrentDay           int     `json:"currentDay"`
	CompletedDays        int     `json:"completedDays"`
	CompletionPercentage int     `json:"completionPercentage"`
	CurrentStreak        int     `json:"currentStreak"`
	LongestStreak        int     `json:"longestStreak"`
	DaysTaken            *int    `json:"daysTaken,omitempty"`
	Rank                 int     `json:"rank"`
	Percentile           float64 `json:"percentile"`
	BadgeEarned          string  `json:"badgeEarned,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsTerminal renvoie true si le statut ne peut plus évoluer.
func (p *Participant) IsTerminal() bool {
	return p.Status == ParticipantStatusCompleted || p.Status == ParticipantStatusFailed
}

// OnLeaderboard renvoie true si le participant apparaît au classement.
// Seuls les participants "left" en sont exclus.
func (p *Participant) OnLeaderboard() bool {
	return p.Status != ParticipantStatusLeft
}
