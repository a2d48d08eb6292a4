// Package progress recalcule les statistiques dérivées d'un participant à
// partir du journal d'événements de complétion, et fait évoluer son statut
// une fois sa fenêtre personnelle écoulée.
package progress

import (
	"math"

	"github.com/MassBabyGeek/HabitFlow-backend/internal/clock"
	model "github.com/MassBabyGeek/HabitFlow-backend/internal/models"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/schedule"
)

// Derived regroupe les champs recalculés d'un participant. Le recalcul est
// pur et idempotent : mêmes entrées, mêmes sorties, rejouable après un
// événement en retard ou dupliqué.
type Derived struct {
	// CurrentDay est borné à [0, DurationDays] pour l'affichage.
	// CurrentDayRaw est la valeur non bornée ; elle seule sert à détecter
	// l'expiration de la fenêtre personnelle.
	CurrentDay    int
	CurrentDayRaw int

	TotalCompletions     int
	CompletionPercentage int
	CompletedDays        int
	CurrentStreak        int
	LongestStreak        int

	// LastCompletionDate est la date du dernier événement (zéro si aucun).
	LastCompletionDate clock.Date
}

// Expired renvoie true si la fenêtre personnelle du participant est
// entièrement écoulée. L'évaluer sur la valeur bornée ferait échouer à tort
// un participant simplement en retard en cours de challenge.
func (d Derived) Expired(duration int) bool {
	return d.CurrentDayRaw > duration
}

// Recompute dérive l'ensemble des statistiques d'un participant.
// events peut arriver dans n'importe quel ordre et contenir des doublons ;
// une liste vide produit des valeurs zéro, jamais d'erreur.
func Recompute(p *model.Participant, c *model.Challenge, events []model.CompletionEvent, clk clock.Clock) Derived {
	today := clk.Today()

	var d Derived
	d.CurrentDayRaw = clock.DaysBetween(p.StartDate, today) + 1
	d.CurrentDay = clampDay(d.CurrentDayRaw, c.DurationDays)

	// Jour effectif pour le dénominateur : aujourd'hui compte tant que le
	// challenge est en cours (retour temps réel), plafonné à la durée une
	// fois la fenêtre écoulée.
	effectiveDay := d.CurrentDayRaw
	if effectiveDay > c.DurationDays {
		effectiveDay = c.DurationDays
	}

	// Dédoublonnage (activité, date) + ensemble des jours avec complétion.
	pairs := model.DedupeCompletions(events)
	d.TotalCompletions = len(pairs)

	days := make(map[clock.Date]bool, len(events))
	for _, e := range events {
		days[e.CompletedOn] = true
		if d.LastCompletionDate.IsZero() || d.LastCompletionDate.Before(e.CompletedOn) {
			d.LastCompletionDate = e.CompletedOn
		}
	}
	d.CompletedDays = len(days)

	expected := schedule.ExpectedCount(c.Activities, p.SelectedActivities, effectiveDay, c.DurationDays)
	if expected > 0 {
		pct := int(math.Round(float64(d.TotalCompletions) / float64(expected) * 100))
		if pct > 100 {
			pct = 100
		}
		d.CompletionPercentage = pct
	}

	// Série en cours : remonter depuis aujourd'hui tant que chaque jour
	// consécutif a au moins une complétion.
	for day := today; days[day]; day = day.AddDays(-1) {
		d.CurrentStreak++
	}

	// La plus longue série ne décroît jamais.
	d.LongestStreak = p.LongestStreak
	if d.CurrentStreak > d.LongestStreak {
		d.LongestStreak = d.CurrentStreak
	}

	return d
}

// Apply reporte les champs dérivés sur le participant.
func (d Derived) Apply(p *model.Participant) {
	p.CurrentDay = d.CurrentDay
	p.CompletedDays = d.CompletedDays
	p.CompletionPercentage = d.CompletionPercentage
	p.CurrentStreak = d.CurrentStreak
	p.LongestStreak = d.LongestStreak
}

func clampDay(day, duration int) int {
	if day < 0 {
		return 0
	}
	if day > duration {
		return duration
	}
	return day
}
