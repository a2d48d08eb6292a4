package model

import (
	"time"
)

// Statuts d'un challenge (catalogue, lecture seule pour le moteur).
const (
	ChallengeStatusDraft    = "draft"
	ChallengeStatusActive   = "active"
	ChallengeStatusArchived = "archived"
)

// Challenge est la définition immuable d'un challenge : durée en jours,
// seuil de réussite (en %), liste d'activités. Le moteur ne modifie jamais
// un challenge, il le consomme depuis le catalogue.
type Challenge struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	DurationDays     int        `json:"durationDays"`
	SuccessThreshold int        `json:"successThreshold"` // pourcentage requis pour "completed"
	Activities       []Activity `json:"activities"`
	BadgeIconName    string     `json:"badgeIconName"`
	BadgeIconColor   string     `json:"badgeIconColor"`
	Status           string     `json:"status"`
	IsOfficial       bool       `json:"isOfficial"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Activity est une activité d'un challenge, avec une fenêtre de jours
// optionnelle [StartDay, EndDay] (1-based, bornes incluses). Fenêtre absente =
// activité due sur toute la durée du challenge.
type Activity struct {
	ID          string `json:"id"`
	ChallengeID string `json:"challengeId"`
	Title       string `json:"title"`
	StartDay    *int   `json:"startDay,omitempty"`
	EndDay      *int   `json:"endDay,omitempty"`
}

// Window renvoie la fenêtre effective de l'activité, bornée à [1, duration].
// Les données d'activités arrivent peu typées (imports mobiles historiques) :
// on normalise ici, une fois, plutôt que de revérifier la forme partout en aval.
func (a Activity) Window(duration int) (start, end int) {
	start, end = 1, duration
	if a.StartDay != nil && *a.StartDay > 1 {
		start = *a.StartDay
	}
	if a.EndDay != nil && *a.EndDay < duration {
		end = *a.EndDay
	}
	if start > duration {
		start = duration
	}
	if end < start {
		// Fenêtre incohérente : on retombe sur la fenêtre complète,
		// comportement historique de l'app mobile.
		start, end = 1, duration
	}
	return start, end
}

// NormalizeSelection renvoie l'ensemble des activités effectivement suivies
// par un participant. Une sélection vide ou contenant un id inconnu signifie
// "toutes les activités" (données legacy d'avant la sélection par activité).
// nil = toutes les activités du challenge.
func NormalizeSelection(activities []Activity, selected []string) map[string]bool {
	if len(selected) == 0 {
		return nil
	}

	known := make(map[string]bool, len(activities))
	for _, a := range activities {
		known[a.ID] = true
	}

	set := make(map[string]bool, len(selected))
	for _, id := range selected {
		if !known[id] {
			return nil
		}
		set[id] = true
	}
	return set
}
