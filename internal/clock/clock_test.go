package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b Date
		want int
	}{
		{"same day", NewDate(2025, time.March, 10), NewDate(2025, time.March, 10), 0},
		{"next day", NewDate(2025, time.March, 10), NewDate(2025, time.March, 11), 1},
		{"reversed", NewDate(2025, time.March, 11), NewDate(2025, time.March, 10), -1},
		{"across month", NewDate(2025, time.January, 31), NewDate(2025, time.February, 2), 2},
		{"across year", NewDate(2024, time.December, 30), NewDate(2025, time.January, 2), 3},
		{"leap day", NewDate(2024, time.February, 28), NewDate(2024, time.March, 1), 2},
		{"non leap", NewDate(2025, time.February, 28), NewDate(2025, time.March, 1), 1},
		{"thirty days", NewDate(2025, time.June, 1), NewDate(2025, time.July, 1), 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.a, tt.b))
		})
	}
}

func TestDateOfTruncatesTimeOfDay(t *testing.T) {
	// 23h59 et 00h01 le même jour donnent la même date calendaire,
	// peu importe l'heure de l'instant d'origine.
	late := time.Date(2025, time.March, 10, 23, 59, 0, 0, time.Local)
	early := time.Date(2025, time.March, 10, 0, 1, 0, 0, time.Local)

	assert.Equal(t, DateOf(late), DateOf(early))
	assert.Equal(t, 0, DaysBetween(DateOf(early), DateOf(late)))
	assert.Equal(t, 1, DaysBetween(DateOf(late), DateOf(late).AddDays(1)))
}

func TestDaysBetweenAcrossDSTBoundary(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	// Le passage à l'heure d'été (30 mars 2025) raccourcit la journée à 23h.
	// La soustraction d'instants bruts donnerait 0 jour entre ces deux minuits
	// si on divisait naïvement par 24h ; via les dates tronquées on obtient 1.
	before := time.Date(2025, time.March, 29, 22, 0, 0, 0, loc)
	after := time.Date(2025, time.March, 30, 22, 0, 0, 0, loc)

	assert.Equal(t, 1, DaysBetween(DateOf(before), DateOf(after)))
}

func TestAddDays(t *testing.T) {
	d := NewDate(2025, time.January, 1)
	assert.Equal(t, NewDate(2025, time.January, 31), d.AddDays(30))
	assert.Equal(t, NewDate(2024, time.December, 31), d.AddDays(-1))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-07-14")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, time.July, 14), d)

	_, err = ParseDate("14/07/2025")
	assert.Error(t, err)
}

func TestFixedClock(t *testing.T) {
	day := NewDate(2025, time.May, 5)
	var c Clock = FixedClock{Date: day}
	assert.Equal(t, day, c.Today())
	assert.Equal(t, day, c.Today())
}
