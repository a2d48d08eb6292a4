// Package store implémente les ports de stockage du moteur sur PostgreSQL.
// SQL brut via pgx, scan centralisé dans internal/scanner.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MassBabyGeek/HabitFlow-backend/internal/engine"
	model "github.com/MassBabyGeek/HabitFlow-backend/internal/models"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/scanner"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChallengeStore lit le catalogue de challenges. Lecture seule : le moteur
// ne crée ni ne modifie jamais un challenge.
type ChallengeStore struct {
	pool *pgxpool.Pool
}

func NewChallengeStore(pool *pgxpool.Pool) *ChallengeStore {
	return &ChallengeStore{pool: pool}
}

func (s *ChallengeStore) GetByID(ctx context.Context, id string) (*model.Challenge, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, title, description, duration_days, success_threshold,
			badge_icon_name, badge_icon_color, status, is_official,
			created_at, updated_at
		FROM challenges
		WHERE id = $1
	`, id)

	challenge, err := scanner.ScanChallenge(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, engine.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("get challenge: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, challenge_id, title, start_day, end_day
		FROM challenge_activities
		WHERE challenge_id = $1
		ORDER BY start_day NULLS FIRST, title
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get challenge activities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		activity, err := scanner.ScanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		challenge.Activities = append(challenge.Activities, *activity)
	}

	return challenge, rows.Err()
}

func (s *ChallengeStore) ListActiveIDs(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id FROM challenges WHERE status = $1`,
		model.ChallengeStatusActive,
	)
	if err != nil {
		return nil, fmt.Errorf("list active challenges: %w", err)
	}
	defer rows.Close()

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
