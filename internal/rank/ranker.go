// Package rank reclasse l'ensemble des participants d'un challenge.
// Recalcul complet après chaque écriture : assumé tant que les challenges
// restent à quelques centaines de participants ; au-delà, remplacer par un
// index d'ordre maintenu incrémentalement (delta d'un seul participant).
package rank

import (
	"math"
	"sort"

	model "github.com/MassBabyGeek/HabitFlow-backend/internal/models"
)

// Less est le comparateur canonique du classement : pourcentage décroissant,
// départagé par daysTaken croissant. Un participant sans daysTaken (pas
// encore terminé) passe après ses égaux en pourcentage. À égalité complète,
// le rang persisté du dernier reclassement tranche.
func Less(a, b *model.Participant) bool {
	if a.CompletionPercentage != b.CompletionPercentage {
		return a.CompletionPercentage > b.CompletionPercentage
	}
	switch {
	case a.DaysTaken == nil && b.DaysTaken == nil:
	case a.DaysTaken == nil:
		return false
	case b.DaysTaken == nil:
		return true
	case *a.DaysTaken != *b.DaysTaken:
		return *a.DaysTaken < *b.DaysTaken
	}
	return ByPersistedRank(a, b)
}

// ByPersistedRank ordonne deux égalités complètes par leur rang persisté :
// deux lectures du même état rendent la même liste, quel que soit l'ordre
// dans lequel le store renvoie les lignes. Un participant jamais classé
// (rang 0) passe derrière ses égaux déjà classés.
func ByPersistedRank(a, b *model.Participant) bool {
	if a.Rank == 0 {
		return false
	}
	if b.Rank == 0 {
		return true
	}
	return a.Rank < b.Rank
}

// Rank trie les participants et leur affecte rang et percentile.
// Les participants "left" sont écartés et renvoyés hors classement. Les rangs
// forment toujours la suite 1..N sans trous : les égalités reçoivent des
// rangs distincts consécutifs, pas de rang partagé.
func Rank(participants []*model.Participant) []*model.Participant {
	ranked := make([]*model.Participant, 0, len(participants))
	for _, p := range participants {
		if p.OnLeaderboard() {
			ranked = append(ranked, p)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return Less(ranked[i], ranked[j])
	})

	n := len(ranked)
	for i, p := range ranked {
		p.Rank = i + 1
		p.Percentile = percentile(p.Rank, n)
	}
	return ranked
}

// percentile renvoie round(((n-rank)/n)*100, 1 décimale) : le rang 1 tend
// vers 100, le dernier vers 0.
func percentile(rank, n int) float64 {
	if n == 0 {
		return 0
	}
	return math.Round(float64(n-rank)/float64(n)*1000) / 10
}
