package database

import (
	"context"
	"fmt"
	"time"

	"github.com/MassBabyGeek/HabitFlow-backend/internal/config"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

var DB *pgxpool.Pool

func ConnectPostgres(cfg *config.Config) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	logger.Success("Connected to PostgreSQL")

	DB = pool

	return pool, nil
}

// EnsureSchema crée les tables manquantes. La contrainte d'unicité de
// completion_events est la garantie d'idempotence du journal : deux
// enregistrements simultanés de la même complétion peuvent tous deux passer
// la lecture préalable, seul l'index unique tranche.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS challenges (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			duration_days INT NOT NULL,
			success_threshold INT NOT NULL,
			badge_icon_name TEXT NOT NULL DEFAULT '',
			badge_icon_color TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'active',
			is_official BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS challenge_activities (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			challenge_id UUID NOT NULL REFERENCES challenges(id),
			title TEXT NOT NULL,
			start_day INT,
			end_day INT
		)`,
		`CREATE TABLE IF NOT EXISTS challenge_participants (
			id UUID PRIMARY KEY,
			challenge_id UUID NOT NULL REFERENCES challenges(id),
			user_id UUID NOT NULL,
			start_date DATE NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			selected_activity_ids TEXT[] NOT NULL DEFAULT '{}',
			current_day INT NOT NULL DEFAULT 0,
			completed_days INT NOT NULL DEFAULT 0,
			completion_percentage INT NOT NULL DEFAULT 0,
			current_streak INT NOT NULL DEFAULT 0,
			longest_streak INT NOT NULL DEFAULT 0,
			days_taken INT,
			rank INT NOT NULL DEFAULT 0,
			percentile DOUBLE PRECISION NOT NULL DEFAULT 0,
			badge_earned TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (challenge_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS completion_events (
			id UUID PRIMARY KEY,
			participant_id UUID NOT NULL REFERENCES challenge_participants(id),
			activity_id UUID NOT NULL,
			completed_on DATE NOT NULL,
			verification_url TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (participant_id, activity_id, completed_on)
		)`,
		`CREATE TABLE IF NOT EXISTS badge_awards (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL,
			challenge_id UUID NOT NULL,
			tier TEXT NOT NULL,
			awarded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, challenge_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_completion_events_participant
			ON completion_events(participant_id)`,
		`CREATE INDEX IF NOT EXISTS idx_participants_challenge
			ON challenge_participants(challenge_id)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
