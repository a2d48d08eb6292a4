package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MassBabyGeek/HabitFlow-backend/internal/engine"
	model "github.com/MassBabyGeek/HabitFlow-backend/internal/models"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/scanner"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/utils"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const participantColumns = `
	id, challenge_id, user_id, start_date, status, selected_activity_ids,
	current_day, completed_days, completion_percentage,
	current_streak, longest_streak, days_taken,
	rank, percentile, badge_earned, created_at, updated_at`

// ParticipantStore persiste les inscriptions et leurs champs dérivés.
type ParticipantStore struct {
	pool *pgxpool.Pool
}

func NewParticipantStore(pool *pgxpool.Pool) *ParticipantStore {
	return &ParticipantStore{pool: pool}
}

func (s *ParticipantStore) Create(ctx context.Context, p *model.Participant) error {
	// ON CONFLICT sur (challenge_id, user_id) : deux joins simultanés du même
	// utilisateur ne créent qu'une inscription, le second reçoit AlreadyJoined.
	res, err := s.pool.Exec(ctx, `
		INSERT INTO challenge_participants(
			id, challenge_id, user_id, start_date, status, selected_activity_ids,
			current_day, completed_days, completion_percentage,
			current_streak, longest_streak, created_at, updated_at
		) VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		ON CONFLICT (challenge_id, user_id) DO NOTHING
	`,
		p.ID, p.ChallengeID, p.UserID, p.StartDate.String(), p.Status,
		pq.Array(p.SelectedActivities),
		p.CurrentDay, p.CompletedDays, p.CompletionPercentage,
		p.CurrentStreak, p.LongestStreak,
	)
	if err != nil {
		return fmt.Errorf("create participant: %w", err)
	}
	if res.RowsAffected() == 0 {
		return engine.ErrAlreadyJoined
	}
	return nil
}

func (s *ParticipantStore) GetByID(ctx context.Context, id string) (*model.Participant, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+participantColumns+` FROM challenge_participants WHERE id = $1`, id)

	p, err := scanner.ScanParticipant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}
	return p, nil
}

func (s *ParticipantStore) GetByUser(ctx context.Context, challengeID, userID string) (*model.Participant, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+participantColumns+` FROM challenge_participants
		 WHERE challenge_id = $1 AND user_id = $2`, challengeID, userID)

	p, err := scanner.ScanParticipant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get participant by user: %w", err)
	}
	return p, nil
}

func (s *ParticipantStore) ListByChallenge(ctx context.Context, challengeID string) ([]*model.Participant, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+participantColumns+` FROM challenge_participants
		 WHERE challenge_id = $1`, challengeID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	var participants []*model.Participant
	for rows.Next() {
		p, err := scanner.ScanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func (s *ParticipantStore) SaveDerived(ctx context.Context, p *model.Participant) error {
	res, err := s.pool.Exec(ctx, `
		UPDATE challenge_participants SET
			current_day = $2, completed_days = $3, completion_percentage = $4,
			current_streak = $5, longest_streak = $6, days_taken = $7,
			status = $8, badge_earned = $9, updated_at = NOW()
		WHERE id = $1
	`,
		p.ID, p.CurrentDay, p.CompletedDays, p.CompletionPercentage,
		p.CurrentStreak, p.LongestStreak, utils.IntPointerToNull(p.DaysTaken),
		p.Status, nullIfEmpty(p.BadgeEarned),
	)
	if err != nil {
		return fmt.Errorf("save derived fields: %w", err)
	}
	if res.RowsAffected() == 0 {
		return engine.ErrParticipantNotFound
	}
	return nil
}

// SaveRanks réécrit rang et percentile de tout le classement en une
// transaction : un lecteur ne voit jamais un mélange d'ancien et de nouveau
// classement au sein d'une même requête.
func (s *ParticipantStore) SaveRanks(ctx context.Context, participants []*model.Participant) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("save ranks: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range participants {
		if _, err := tx.Exec(ctx,
			`UPDATE challenge_participants SET rank = $2, percentile = $3, updated_at = NOW()
			 WHERE id = $1`,
			p.ID, p.Rank, p.Percentile,
		); err != nil {
			return fmt.Errorf("save rank of %s: %w", p.ID, err)
		}
	}
	return tx.Commit(ctx)
}

func (s *ParticipantStore) SetStatus(ctx context.Context, id, status string) error {
	res, err := s.pool.Exec(ctx,
		`UPDATE challenge_participants SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	if res.RowsAffected() == 0 {
		return engine.ErrParticipantNotFound
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
