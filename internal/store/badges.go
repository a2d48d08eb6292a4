package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// BadgeStore persiste les attributions de badge. Insert-or-ignore sur
// (user_id, challenge_id) : rejouer une attribution est sans effet.
type BadgeStore struct {
	pool *pgxpool.Pool
}

func NewBadgeStore(pool *pgxpool.Pool) *BadgeStore {
	return &BadgeStore{pool: pool}
}

func (s *BadgeStore) Award(ctx context.Context, userID, challengeID, tier string) error {
	if _, err := s.pool.Exec(ctx, `
		INSERT INTO badge_awards(user_id, challenge_id, tier, awarded_at)
		VALUES($1, $2, $3, NOW())
		ON CONFLICT (user_id, challenge_id) DO NOTHING
	`, userID, challengeID, tier); err != nil {
		return fmt.Errorf("award badge: %w", err)
	}
	return nil
}
