package progress

import (
	"github.com/MassBabyGeek/HabitFlow-backend/internal/clock"
	model "github.com/MassBabyGeek/HabitFlow-backend/internal/models"
)

// Seuils de badge, volontairement indépendants du seuil de réussite du
// challenge (comportement du produit d'origine, conservé en l'état).
const (
	goldCutoff   = 80
	silverCutoff = 60
)

// BadgeTier renvoie le palier correspondant à un pourcentage de complétion
// d'un participant qui a réussi son challenge.
func BadgeTier(percentage int) string {
	switch {
	case percentage >= goldCutoff:
		return model.BadgeGold
	case percentage >= silverCutoff:
		return model.BadgeSilver
	default:
		return model.BadgeBronze
	}
}

// Finalize fait transitionner le participant vers completed ou failed si, et
// seulement si, sa fenêtre personnelle est entièrement écoulée. Renvoie true
// quand une transition a eu lieu. Les statuts terminaux et les départs
// volontaires ne sont jamais retouchés.
func Finalize(p *model.Participant, c *model.Challenge, d Derived) bool {
	if p.Status != model.ParticipantStatusActive {
		return false
	}
	if !d.Expired(c.DurationDays) {
		// Mi-parcours : être en retard n'est pas un échec.
		return false
	}

	if d.CompletionPercentage >= c.SuccessThreshold {
		p.Status = model.ParticipantStatusCompleted
		p.BadgeEarned = BadgeTier(d.CompletionPercentage)
		p.DaysTaken = daysTaken(p, c, d)
	} else {
		p.Status = model.ParticipantStatusFailed
		p.BadgeEarned = model.BadgeFailed
	}
	return true
}

// daysTaken est le jour de challenge du dernier événement logué : le nombre
// de jours qu'il a fallu au participant pour boucler ses complétions.
// Départage du classement à pourcentage égal (moins de jours = mieux).
func daysTaken(p *model.Participant, c *model.Challenge, d Derived) *int {
	if d.LastCompletionDate.IsZero() {
		return nil
	}
	taken := clock.DaysBetween(p.StartDate, d.LastCompletionDate) + 1
	if taken < 1 {
		taken = 1
	}
	if taken > c.DurationDays {
		taken = c.DurationDays
	}
	return &taken
}
