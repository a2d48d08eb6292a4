// Package schedule détermine quelles activités d'un challenge sont dues un
// jour donné, en tenant compte des fenêtres [startDay, endDay] et de la
// sélection d'activités du participant.
package schedule

import (
	model "github.com/MassBabyGeek/HabitFlow-backend/internal/models"
)

// DueOn renvoie les ids des activités dues au jour `day` (1-based).
// Une activité est due si sa fenêtre couvre le jour ET qu'elle fait partie de
// la sélection du participant (sélection vide/invalide = toutes).
func DueOn(activities []model.Activity, selected []string, day int, duration int) map[string]bool {
	if day < 1 || day > duration {
		return nil
	}

	selection := model.NormalizeSelection(activities, selected)

	due := make(map[string]bool)
	for _, a := range activities {
		if selection != nil && !selection[a.ID] {
			continue
		}
		start, end := a.Window(duration)
		if day >= start && day <= end {
			due[a.ID] = true
		}
	}
	return due
}

// ExpectedCount renvoie le nombre cumulé d'instances d'activités attendues du
// jour 1 au jour throughDay inclus. C'est un cumul, pas un compte par jour :
// il sert de dénominateur au pourcentage de complétion.
func ExpectedCount(activities []model.Activity, selected []string, throughDay int, duration int) int {
	if throughDay < 1 {
		return 0
	}
	if throughDay > duration {
		throughDay = duration
	}

	selection := model.NormalizeSelection(activities, selected)

	// Par activité, le nombre de jours dus jusqu'à throughDay est le
	// recouvrement de sa fenêtre avec [1, throughDay]. Inutile d'itérer
	// jour par jour.
	total := 0
	for _, a := range activities {
		if selection != nil && !selection[a.ID] {
			continue
		}
		start, end := a.Window(duration)
		if end > throughDay {
			end = throughDay
		}
		if end >= start {
			total += end - start + 1
		}
	}
	return total
}
