package progress

import (
	"testing"
	"time"

	"github.com/MassBabyGeek/HabitFlow-backend/internal/clock"
	model "github.com/MassBabyGeek/HabitFlow-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

var startDate = clock.NewDate(2025, time.March, 1)

func dailyChallenge(duration, threshold int) *model.Challenge {
	return &model.Challenge{
		ID:               "ch-1",
		Title:            "30 jours de méditation",
		DurationDays:     duration,
		SuccessThreshold: threshold,
		Activities:       []model.Activity{{ID: "act-1", ChallengeID: "ch-1", Title: "Méditer"}},
	}
}

func participant() *model.Participant {
	return &model.Participant{
		ID:          "p-1",
		ChallengeID: "ch-1",
		UserID:      "u-1",
		StartDate:   startDate,
		Status:      model.ParticipantStatusActive,
	}
}

// eventsOnDays fabrique un événement act-1 pour chaque jour de challenge donné (1-based).
func eventsOnDays(days ...int) []model.CompletionEvent {
	var events []model.CompletionEvent
	for _, day := range days {
		events = append(events, model.CompletionEvent{
			ParticipantID: "p-1",
			ActivityID:    "act-1",
			CompletedOn:   startDate.AddDays(day - 1),
		})
	}
	return events
}

func rangeDays(from, to int) []int {
	var days []int
	for d := from; d <= to; d++ {
		days = append(days, d)
	}
	return days
}

func TestRecomputeEmptyEvents(t *testing.T) {
	clk := clock.FixedClock{Date: startDate.AddDays(4)} // jour 5

	d := Recompute(participant(), dailyChallenge(30, 80), nil, clk)

	assert.Equal(t, 5, d.CurrentDay)
	assert.Equal(t, 5, d.CurrentDayRaw)
	assert.Equal(t, 0, d.TotalCompletions)
	assert.Equal(t, 0, d.CompletionPercentage)
	assert.Equal(t, 0, d.CompletedDays)
	assert.Equal(t, 0, d.CurrentStreak)
	assert.True(t, d.LastCompletionDate.IsZero())
}

func TestRecomputeCurrentDayBounds(t *testing.T) {
	c := dailyChallenge(30, 80)

	// Challenge pas encore commencé : jour courant à 0, pas négatif.
	clk := clock.FixedClock{Date: startDate.AddDays(-3)}
	d := Recompute(participant(), c, nil, clk)
	assert.Equal(t, 0, d.CurrentDay)
	assert.Equal(t, -2, d.CurrentDayRaw)
	assert.False(t, d.Expired(c.DurationDays))

	// Fenêtre écoulée : affichage borné à la durée, valeur brute au-delà.
	clk = clock.FixedClock{Date: startDate.AddDays(40)}
	d = Recompute(participant(), c, nil, clk)
	assert.Equal(t, 30, d.CurrentDay)
	assert.Equal(t, 41, d.CurrentDayRaw)
	assert.True(t, d.Expired(c.DurationDays))
}

func TestRecomputeCurrentDayMonotonic(t *testing.T) {
	c := dailyChallenge(30, 80)
	prev := -1
	for offset := -2; offset <= 35; offset++ {
		d := Recompute(participant(), c, nil, clock.FixedClock{Date: startDate.AddDays(offset)})
		assert.GreaterOrEqual(t, d.CurrentDay, prev, "offset %d", offset)
		assert.GreaterOrEqual(t, d.CurrentDay, 0)
		assert.LessOrEqual(t, d.CurrentDay, c.DurationDays)
		prev = d.CurrentDay
	}
}

func TestRecomputePercentage(t *testing.T) {
	c := dailyChallenge(30, 80)
	clk := clock.FixedClock{Date: startDate.AddDays(9)} // jour 10

	// 7 jours complétés sur 10 attendus.
	d := Recompute(participant(), c, eventsOnDays(rangeDays(1, 7)...), clk)
	assert.Equal(t, 70, d.CompletionPercentage)
	assert.Equal(t, 7, d.CompletedDays)
	assert.Equal(t, 7, d.TotalCompletions)

	// Jamais au-dessus de 100, même avec plus de complétions qu'attendu.
	extra := append(eventsOnDays(rangeDays(1, 10)...), model.CompletionEvent{
		ParticipantID: "p-1", ActivityID: "act-ghost", CompletedOn: startDate,
	})
	d = Recompute(participant(), c, extra, clk)
	assert.Equal(t, 100, d.CompletionPercentage)
}

func TestRecomputeDeduplicatesRawRows(t *testing.T) {
	c := dailyChallenge(30, 80)
	clk := clock.FixedClock{Date: startDate.AddDays(9)}

	// Doublons (activité, date) issus d'une course sur l'insertion.
	events := append(eventsOnDays(1, 2, 3), eventsOnDays(1, 2, 3)...)
	d := Recompute(participant(), c, events, clk)

	assert.Equal(t, 3, d.TotalCompletions)
	assert.Equal(t, 3, d.CompletedDays)
	assert.Equal(t, 30, d.CompletionPercentage)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	c := dailyChallenge(30, 80)
	clk := clock.FixedClock{Date: startDate.AddDays(14)}
	events := eventsOnDays(rangeDays(1, 12)...)

	first := Recompute(participant(), c, events, clk)
	second := Recompute(participant(), c, events, clk)
	assert.Equal(t, first, second)
}

func TestRecomputeStreaks(t *testing.T) {
	c := dailyChallenge(30, 80)
	clk := clock.FixedClock{Date: startDate.AddDays(9)} // jour 10

	// Jours 1-3 puis 8-10 : série en cours de 3 (se termine aujourd'hui).
	d := Recompute(participant(), c, eventsOnDays(1, 2, 3, 8, 9, 10), clk)
	assert.Equal(t, 3, d.CurrentStreak)
	assert.Equal(t, 3, d.LongestStreak)

	// Rien aujourd'hui : la série en cours tombe à zéro.
	d = Recompute(participant(), c, eventsOnDays(1, 2, 3, 8, 9), clk)
	assert.Equal(t, 0, d.CurrentStreak)
}

func TestRecomputeLongestStreakNeverDecreases(t *testing.T) {
	c := dailyChallenge(30, 80)
	clk := clock.FixedClock{Date: startDate.AddDays(9)}

	p := participant()
	p.LongestStreak = 7 // série historique plus longue que l'actuelle

	d := Recompute(p, c, eventsOnDays(9, 10), clk)
	assert.Equal(t, 2, d.CurrentStreak)
	assert.Equal(t, 7, d.LongestStreak)
}

func TestRecomputeWithActivityWindows(t *testing.T) {
	ten, twenty := 10, 20
	c := &model.Challenge{
		ID:               "ch-2",
		DurationDays:     30,
		SuccessThreshold: 80,
		Activities: []model.Activity{
			{ID: "daily", ChallengeID: "ch-2"},
			{ID: "windowed", ChallengeID: "ch-2", StartDay: &ten, EndDay: &twenty},
		},
	}
	p := participant()
	p.ChallengeID = "ch-2"

	// Jour 15 : attendu = 15 (daily) + 6 (windowed, jours 10..15) = 21.
	clk := clock.FixedClock{Date: startDate.AddDays(14)}
	var events []model.CompletionEvent
	for day := 1; day <= 15; day++ {
		events = append(events, model.CompletionEvent{
			ParticipantID: "p-1", ActivityID: "daily", CompletedOn: startDate.AddDays(day - 1),
		})
	}
	d := Recompute(p, c, events, clk)
	// 15/21 = 71.4 -> 71
	assert.Equal(t, 71, d.CompletionPercentage)
}
