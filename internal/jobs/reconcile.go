// Package jobs héberge les tâches planifiées du serveur.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/MassBabyGeek/HabitFlow-backend/internal/engine"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/logger"
	"github.com/go-co-op/gocron/v2"
)

// StartReconcileJob lance le balayage de réconciliation quotidien : recalcul
// des dérivés de tous les participants actifs depuis le journal, finalisation
// des fenêtres écoulées, reclassement. at est au format HH:MM (heure locale).
// Renvoie le scheduler pour que l'appelant puisse l'arrêter proprement.
func StartReconcileJob(e *engine.Engine, at string) (gocron.Scheduler, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(at, "%d:%d", &hour, &minute); err != nil {
		return nil, fmt.Errorf("invalid reconcile time %q, expected HH:MM: %w", at, err)
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(hour), uint(minute), 0))),
		gocron.NewTask(func() {
			start := time.Now()
			logger.Info("Reconciliation sweep starting")

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
			defer cancel()

			if err := e.Reconcile(ctx); err != nil {
				logger.Error("Reconciliation sweep failed: %v", err)
				return
			}
			logger.Success("Reconciliation sweep done in %v", time.Since(start))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("schedule reconcile job: %w", err)
	}

	sched.Start()
	logger.Info("Reconciliation sweep scheduled daily at %02d:%02d", hour, minute)
	return sched, nil
}
