package rank

import (
	"testing"

	model "github.com/MassBabyGeek/HabitFlow-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pWith(id string, pct int, daysTaken *int) *model.Participant {
	return &model.Participant{
		ID:                   id,
		UserID:               "u-" + id,
		Status:               model.ParticipantStatusActive,
		CompletionPercentage: pct,
		DaysTaken:            daysTaken,
	}
}

func intPtr(n int) *int { return &n }

func TestRankOrderingWithTieBreak(t *testing.T) {
	// (90,5), (70,3), (70,8) -> rangs 1, 2, 3 ; à 70%, 3 jours bat 8 jours.
	a := pWith("a", 90, intPtr(5))
	b := pWith("b", 70, intPtr(3))
	c := pWith("c", 70, intPtr(8))

	ranked := Rank([]*model.Participant{c, a, b})
	require.Len(t, ranked, 3)

	assert.Equal(t, "a", ranked[0].ID)
	assert.Equal(t, "b", ranked[1].ID)
	assert.Equal(t, "c", ranked[2].ID)
	assert.Equal(t, 1, a.Rank)
	assert.Equal(t, 2, b.Rank)
	assert.Equal(t, 3, c.Rank)
}

func TestRankNilDaysTakenSortsLastAmongTies(t *testing.T) {
	finished := pWith("finished", 70, intPtr(12))
	pending := pWith("pending", 70, nil)

	ranked := Rank([]*model.Participant{pending, finished})
	assert.Equal(t, "finished", ranked[0].ID)
	assert.Equal(t, "pending", ranked[1].ID)
}

func TestRankExcludesLeftParticipants(t *testing.T) {
	stay := pWith("stay", 50, nil)
	gone := pWith("gone", 99, intPtr(2))
	gone.Status = model.ParticipantStatusLeft

	ranked := Rank([]*model.Participant{stay, gone})
	require.Len(t, ranked, 1)
	assert.Equal(t, "stay", ranked[0].ID)
	// Le participant parti ne reçoit pas de rang.
	assert.Equal(t, 0, gone.Rank)
}

func TestRankContiguity(t *testing.T) {
	var participants []*model.Participant
	for i := 0; i < 10; i++ {
		// Plusieurs égalités volontaires de pourcentage.
		participants = append(participants, pWith(string(rune('a'+i)), (i%4)*25, nil))
	}

	ranked := Rank(participants)
	require.Len(t, ranked, 10)
	seen := make(map[int]bool)
	for _, p := range ranked {
		seen[p.Rank] = true
	}
	for r := 1; r <= 10; r++ {
		assert.True(t, seen[r], "rank %d missing", r)
	}
}

func TestRankHigherPercentageAlwaysRanksBetter(t *testing.T) {
	a := pWith("a", 80, intPtr(30))
	b := pWith("b", 79, intPtr(1))

	Rank([]*model.Participant{b, a})
	assert.Less(t, a.Rank, b.Rank)
}

func TestPercentile(t *testing.T) {
	// Rang 1 sur 4 -> 75.0 ; dernier -> 0.0.
	var participants []*model.Participant
	for i := 0; i < 4; i++ {
		participants = append(participants, pWith(string(rune('a'+i)), 100-i*10, nil))
	}

	ranked := Rank(participants)
	assert.Equal(t, 75.0, ranked[0].Percentile)
	assert.Equal(t, 50.0, ranked[1].Percentile)
	assert.Equal(t, 25.0, ranked[2].Percentile)
	assert.Equal(t, 0.0, ranked[3].Percentile)

	// Une décimale : 2 sur 3 -> ((3-2)/3)*100 = 33.3.
	three := Rank([]*model.Participant{
		pWith("x", 90, nil), pWith("y", 50, nil), pWith("z", 10, nil),
	})
	assert.Equal(t, 33.3, three[1].Percentile)
}

func TestLessTieBreaksOnPersistedRank(t *testing.T) {
	// Égalité complète (pourcentage, daysTaken) : le rang du dernier
	// reclassement tranche, quel que soit l'ordre d'entrée.
	second := pWith("second", 100, nil)
	second.Rank = 2
	first := pWith("first", 100, nil)
	first.Rank = 1

	assert.True(t, Less(first, second))
	assert.False(t, Less(second, first))

	ranked := Rank([]*model.Participant{second, first})
	assert.Equal(t, "first", ranked[0].ID)
	assert.Equal(t, "second", ranked[1].ID)

	// Un nouveau venu (rang 0) passe derrière ses égaux déjà classés.
	newcomer := pWith("newcomer", 100, nil)
	assert.True(t, Less(second, newcomer))
	assert.False(t, Less(newcomer, second))
}

func TestRankEmptyAndStability(t *testing.T) {
	assert.Empty(t, Rank(nil))

	// Égalité parfaite : l'ordre d'entrée est conservé (tri stable),
	// mais les rangs restent distincts.
	a := pWith("a", 70, intPtr(5))
	b := pWith("b", 70, intPtr(5))
	ranked := Rank([]*model.Participant{a, b})
	assert.Equal(t, "a", ranked[0].ID)
	assert.Equal(t, 1, a.Rank)
	assert.Equal(t, 2, b.Rank)
}
