package engine

import "errors"

// Taxonomie d'erreurs du moteur. Les opérations d'écriture renvoient ces
// sentinelles plutôt que de paniquer, pour que les handlers dégradent
// proprement ("déjà loggé aujourd'hui" plutôt qu'une 500). Les erreurs de
// persistance sont enveloppées avec %w autour de l'erreur du driver.
var (
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrChallengeNotFound     = errors.New("challenge not found")
	ErrParticipantNotFound   = errors.New("participant not found")
	ErrActivityNotFound      = errors.New("activity not found in challenge")
	ErrAlreadyJoined         = errors.New("challenge already joined")
	ErrAlreadyCompletedToday = errors.New("activity already completed for this date")
	ErrChallengeExpired      = errors.New("personal challenge window has elapsed")
)
