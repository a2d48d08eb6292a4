package store

import (
	"context"
	"fmt"

	model "github.com/MassBabyGeek/HabitFlow-backend/internal/models"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/scanner"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// SocialStore lit les ensembles d'ids des collaborateurs sociaux (graphe
// d'amis, cercles) et l'annuaire utilisateur. Ces tables appartiennent au
// domaine social de l'app ; le moteur ne fait qu'y lire des ids et des noms.
type SocialStore struct {
	pool *pgxpool.Pool
}

func NewSocialStore(pool *pgxpool.Pool) *SocialStore {
	return &SocialStore{pool: pool}
}

func (s *SocialStore) FriendIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT friend_id FROM friendships
		WHERE user_id = $1 AND status = 'accepted'
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("friend ids: %w", err)
	}
	defer rows.Close()

	return collectIDs(rows)
}

// CircleMemberIDs renvoie les membres de tous les cercles de l'utilisateur,
// lui compris s'il appartient à au moins un cercle.
func (s *SocialStore) CircleMemberIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT cm.user_id
		FROM circle_members cm
		WHERE cm.circle_id IN (
			SELECT circle_id FROM circle_members WHERE user_id = $1
		)
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("circle member ids: %w", err)
	}
	defer rows.Close()

	return collectIDs(rows)
}

func (s *SocialStore) Profiles(ctx context.Context, userIDs []string) (map[string]model.UserProfile, error) {
	profiles := make(map[string]model.UserProfile, len(userIDs))
	if len(userIDs) == 0 {
		return profiles, nil
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, name, email, avatar, join_date, created_at, updated_at
		FROM users
		WHERE id = ANY($1) AND deleted_at IS NULL
	`, pq.Array(userIDs))
	if err != nil {
		return nil, fmt.Errorf("profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanner.ScanUserProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles[u.ID] = *u
	}
	return profiles, rows.Err()
}

func collectIDs(rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}) ([]string, error) {
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
