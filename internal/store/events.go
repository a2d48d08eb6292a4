package store

import (
	"context"
	"fmt"

	model "github.com/MassBabyGeek/HabitFlow-backend/internal/models"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/scanner"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/utils"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EventStore est le journal append-only des complétions : jamais de mise à
// jour ni de suppression, même au départ d'un participant. L'unicité
// (participant, activité, date) est portée par l'index unique de la table :
// c'est lui qui tranche la course entre deux enregistrements simultanés,
// jamais une lecture préalable.
type EventStore struct {
	pool *pgxpool.Pool
}

func NewEventStore(pool *pgxpool.Pool) *EventStore {
	return &EventStore{pool: pool}
}

// Record insère l'événement. Renvoie false si la clé existait déjà :
// l'appelant doit traiter ce cas comme "déjà complété", pas comme une erreur.
func (s *EventStore) Record(ctx context.Context, e *model.CompletionEvent) (bool, error) {
	res, err := s.pool.Exec(ctx, `
		INSERT INTO completion_events(id, participant_id, activity_id, completed_on, verification_url, created_at)
		VALUES($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (participant_id, activity_id, completed_on) DO NOTHING
	`,
		e.ID, e.ParticipantID, e.ActivityID, e.CompletedOn.String(),
		utils.StringPointerToNull(e.VerificationURL),
	)
	if err != nil {
		return false, fmt.Errorf("record completion event: %w", err)
	}
	return res.RowsAffected() > 0, nil
}

func (s *EventStore) ListByParticipant(ctx context.Context, participantID string) ([]model.CompletionEvent, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, participant_id, activity_id, completed_on, verification_url, created_at
		FROM completion_events
		WHERE participant_id = $1
	`, participantID)
	if err != nil {
		return nil, fmt.Errorf("list completion events: %w", err)
	}
	defer rows.Close()

	var events []model.CompletionEvent
	for rows.Next() {
		e, err := scanner.ScanCompletionEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan completion event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}
