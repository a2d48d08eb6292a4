package engine

import (
	"context"

	"github.com/MassBabyGeek/HabitFlow-backend/internal/logger"
)

// Taille du tampon du bus d'événements. Si le worker est saturé,
// l'émission est abandonnée avec un warning : la réconciliation rejouera
// l'attribution du badge (Award est insert-or-ignore).
const completedBuffer = 64

// CompletedEvent est émis quand un participant passe au statut completed.
// Consommé hors du chemin de requête : l'attribution du badge et les
// notifications ne pèsent pas sur la latence de recordCompletion.
type CompletedEvent struct {
	ParticipantID string
	UserID        string
	ChallengeID   string
	Badge         string
}

// emitCompleted publie sans jamais bloquer l'appelant.
func (e *Engine) emitCompleted(ev CompletedEvent) {
	select {
	case e.completed <- ev:
	default:
		logger.Warning("completed-event bus full, dropping award for %s (reconcile will replay)", ev.ParticipantID)
	}
}

// RunBadgeWorker consomme les événements de complétion et attribue les
// badges. À lancer dans sa propre goroutine ; s'arrête quand ctx est annulé.
func (e *Engine) RunBadgeWorker(ctx context.Context, badges BadgeStore) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-e.completed:
			if err := badges.Award(ctx, ev.UserID, ev.ChallengeID, ev.Badge); err != nil {
				logger.Error("badge award %s/%s failed: %v", ev.UserID, ev.ChallengeID, err)
				continue
			}
			logger.Success("badge %s awarded to %s for challenge %s", ev.Badge, ev.UserID, ev.ChallengeID)
		}
	}
}
