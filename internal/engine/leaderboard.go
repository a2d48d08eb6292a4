package engine

import (
	"context"
	"sort"

	model "github.com/MassBabyGeek/HabitFlow-backend/internal/models"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/rank"
)

// Limite par défaut du classement, comme partout ailleurs dans l'API.
const defaultLeaderboardLimit = 50

// GetLeaderboard sert la vue classement d'un challenge, filtrée (all /
// friends / circle) et triée (rank / fastest / perfect). Les filtres
// s'appuient sur les rangs et percentiles persistés par le dernier
// reclassement ; seul le jour courant est recalculé à la lecture, pour ne pas
// afficher un compteur figé pour un participant qui n'a pas rouvert l'app.
func (e *Engine) GetLeaderboard(ctx context.Context, challengeID, viewerID, filter, sortMode string, limit int) ([]model.LeaderboardEntry, error) {
	challenge, err := e.challenges.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	participants, err := e.participants.ListByChallenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	visible := make([]*model.Participant, 0, len(participants))
	for _, p := range participants {
		if p.OnLeaderboard() {
			visible = append(visible, p)
		}
	}

	// Un ensemble externe vide donne un classement vide, jamais un retour
	// silencieux au filtre "all".
	switch filter {
	case model.LeaderboardFilterFriends:
		ids, err := e.friends.FriendIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		visible = filterByUserIDs(visible, ids)
	case model.LeaderboardFilterCircle:
		ids, err := e.circles.CircleMemberIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		visible = filterByUserIDs(visible, ids)
	}

	sortEntries(visible, sortMode)

	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if len(visible) > limit {
		visible = visible[:limit]
	}

	userIDs := make([]string, len(visible))
	for i, p := range visible {
		userIDs[i] = p.UserID
	}
	profiles, err := e.users.Profiles(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	today := e.clock.Today()
	entries := make([]model.LeaderboardEntry, 0, len(visible))
	for _, p := range visible {
		profile := profiles[p.UserID]
		entries = append(entries, model.LeaderboardEntry{
			UserID:               p.UserID,
			UserName:             profile.Name,
			Avatar:               profile.Avatar,
			CompletionPercentage: p.CompletionPercentage,
			CompletedDays:        p.CompletedDays,
			CurrentDay:           displayDay(p.StartDate, today, challenge.DurationDays),
			CurrentStreak:        p.CurrentStreak,
			DaysTaken:            p.DaysTaken,
			Rank:                 p.Rank,
			Percentile:           p.Percentile,
		})
	}
	return entries, nil
}

func filterByUserIDs(participants []*model.Participant, ids []string) []*model.Participant {
	allowed := make(map[string]bool, len(ids))
	for _, id := range ids {
		allowed[id] = true
	}

	kept := participants[:0]
	for _, p := range participants {
		if allowed[p.UserID] {
			kept = append(kept, p)
		}
	}
	return kept
}

// sortEntries applique le comparateur du mode demandé. rank et perfect
// partagent le comparateur canonique du classement (duplication héritée du
// produit, voir modèle) ; fastest privilégie le nombre de jours.
func sortEntries(participants []*model.Participant, sortMode string) {
	switch sortMode {
	case model.LeaderboardSortFastest:
		sort.SliceStable(participants, func(i, j int) bool {
			return fasterThan(participants[i], participants[j])
		})
	default: // rank, perfect
		sort.SliceStable(participants, func(i, j int) bool {
			return rank.Less(participants[i], participants[j])
		})
	}
}

// fasterThan : daysTaken croissant (absent en dernier), puis pourcentage
// décroissant, puis le rang persisté pour les égalités complètes.
func fasterThan(a, b *model.Participant) bool {
	switch {
	case a.DaysTaken == nil && b.DaysTaken == nil:
	case a.DaysTaken == nil:
		return false
	case b.DaysTaken == nil:
		return true
	case *a.DaysTaken != *b.DaysTaken:
		return *a.DaysTaken < *b.DaysTaken
	}
	if a.CompletionPercentage != b.CompletionPercentage {
		return a.CompletionPercentage > b.CompletionPercentage
	}
	return rank.ByPersistedRank(a, b)
}
