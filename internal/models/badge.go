package model

import "time"

// BadgeAward est l'attribution d'un badge à un utilisateur pour un challenge.
// Insert-or-ignore : rejouer l'attribution est sans effet.
type BadgeAward struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	ChallengeID string    `json:"challengeId"`
	Tier        string    `json:"tier"`
	AwardedAt   time.Time `json:"awardedAt"`
}
