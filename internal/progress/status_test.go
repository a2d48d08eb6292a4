package progress

import (
	"testing"

	"github.com/MassBabyGeek/HabitFlow-backend/internal/clock"
	model "github.com/MassBabyGeek/HabitFlow-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// finalizeAfterWindow recalcule au lendemain de la fenêtre (jour 31) puis
// applique la machine à états.
func finalizeAfterWindow(t *testing.T, c *model.Challenge, completedDays int) *model.Participant {
	t.Helper()
	p := participant()
	clk := clock.FixedClock{Date: startDate.AddDays(c.DurationDays)} // jour 31

	d := Recompute(p, c, eventsOnDays(rangeDays(1, completedDays)...), clk)
	require.True(t, d.Expired(c.DurationDays))
	d.Apply(p)
	assert.True(t, Finalize(p, c, d))
	return p
}

func TestFinalizeGold(t *testing.T) {
	// 25 complétions sur 30 attendues = 83% : réussi, badge or.
	c := dailyChallenge(30, 80)
	p := finalizeAfterWindow(t, c, 25)

	assert.Equal(t, 83, p.CompletionPercentage)
	assert.Equal(t, model.ParticipantStatusCompleted, p.Status)
	assert.Equal(t, model.BadgeGold, p.BadgeEarned)
	require.NotNil(t, p.DaysTaken)
	assert.Equal(t, 25, *p.DaysTaken)
}

func TestFinalizeSilver(t *testing.T) {
	// 20/30 = 67% : au-dessus du seuil de 60, badge argent (>=60, <80).
	c := dailyChallenge(30, 60)
	p := finalizeAfterWindow(t, c, 20)

	assert.Equal(t, 67, p.CompletionPercentage)
	assert.Equal(t, model.ParticipantStatusCompleted, p.Status)
	assert.Equal(t, model.BadgeSilver, p.BadgeEarned)
}

func TestFinalizeBronze(t *testing.T) {
	// 16/30 = 53% : réussi de justesse contre un seuil de 50, mais les
	// paliers de badge restent figés à 80/60 -> bronze.
	c := dailyChallenge(30, 50)
	p := finalizeAfterWindow(t, c, 16)

	assert.Equal(t, 53, p.CompletionPercentage)
	assert.Equal(t, model.ParticipantStatusCompleted, p.Status)
	assert.Equal(t, model.BadgeBronze, p.BadgeEarned)
}

func TestFinalizeFailed(t *testing.T) {
	// 15/30 = 50%, sous le seuil de 80 : échec, badge sentinelle.
	c := dailyChallenge(30, 80)
	p := finalizeAfterWindow(t, c, 15)

	assert.Equal(t, 50, p.CompletionPercentage)
	assert.Equal(t, model.ParticipantStatusFailed, p.Status)
	assert.Equal(t, model.BadgeFailed, p.BadgeEarned)
	assert.Nil(t, p.DaysTaken)
}

func TestFinalizeNotBeforeWindowElapses(t *testing.T) {
	// Jour 20, participant loin derrière : être en retard en cours de
	// challenge n'est pas un échec.
	c := dailyChallenge(30, 80)
	p := participant()
	clk := clock.FixedClock{Date: startDate.AddDays(19)}

	d := Recompute(p, c, eventsOnDays(1, 2), clk)
	assert.False(t, Finalize(p, c, d))
	assert.Equal(t, model.ParticipantStatusActive, p.Status)
	assert.Empty(t, p.BadgeEarned)
}

func TestFinalizeTerminalStatusIsNeverReverted(t *testing.T) {
	c := dailyChallenge(30, 80)
	clk := clock.FixedClock{Date: startDate.AddDays(35)}

	for _, status := range []string{
		model.ParticipantStatusCompleted,
		model.ParticipantStatusFailed,
		model.ParticipantStatusAbandoned,
		model.ParticipantStatusLeft,
	} {
		p := participant()
		p.Status = status
		p.BadgeEarned = model.BadgeGold

		d := Recompute(p, c, nil, clk)
		assert.False(t, Finalize(p, c, d), "status %s", status)
		assert.Equal(t, status, p.Status)
	}
}

func TestFinalizeIsIdempotent(t *testing.T) {
	c := dailyChallenge(30, 80)
	p := finalizeAfterWindow(t, c, 25)

	// Rejouer le recalcul et la finalisation ne change rien.
	clk := clock.FixedClock{Date: startDate.AddDays(c.DurationDays)}
	d := Recompute(p, c, eventsOnDays(rangeDays(1, 25)...), clk)
	assert.False(t, Finalize(p, c, d))
	assert.Equal(t, model.ParticipantStatusCompleted, p.Status)
	assert.Equal(t, model.BadgeGold, p.BadgeEarned)
}

func TestBadgeTierCutoffs(t *testing.T) {
	tests := []struct {
		pct  int
		want string
	}{
		{100, model.BadgeGold},
		{80, model.BadgeGold},
		{79, model.BadgeSilver},
		{60, model.BadgeSilver},
		{59, model.BadgeBronze},
		{0, model.BadgeBronze},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BadgeTier(tt.pct), "pct %d", tt.pct)
	}
}
