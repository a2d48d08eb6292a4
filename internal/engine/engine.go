// Package engine orchestre la progression des challenges : journal de
// complétions, recalcul des statistiques dérivées, machine à états de statut
// et reclassement. Séquence canonique d'une écriture : (1) append de
// l'événement, (2) recalcul et persistance des champs dérivés du participant,
// (3) reclassement complet du challenge. Un échec après (1) laisse
// l'événement en base et des stats périmées ; le balayage de réconciliation
// les réalignera (disponibilité de la source de vérité avant cohérence
// immédiate des dérivés).
package engine

import (
	"context"
	"fmt"

	"github.com/MassBabyGeek/HabitFlow-backend/internal/clock"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/logger"
	model "github.com/MassBabyGeek/HabitFlow-backend/internal/models"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/progress"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/rank"
	"github.com/google/uuid"
)

// ChallengeStore expose le catalogue de challenges (lecture seule).
type ChallengeStore interface {
	GetByID(ctx context.Context, id string) (*model.Challenge, error)
	ListActiveIDs(ctx context.Context) ([]string, error)
}

// ParticipantStore persiste les participants et leurs champs dérivés.
type ParticipantStore interface {
	Create(ctx context.Context, p *model.Participant) error
	GetByID(ctx context.Context, id string) (*model.Participant, error)
	GetByUser(ctx context.Context, challengeID, userID string) (*model.Participant, error)
	ListByChallenge(ctx context.Context, challengeID string) ([]*model.Participant, error)
	SaveDerived(ctx context.Context, p *model.Participant) error
	SaveRanks(ctx context.Context, participants []*model.Participant) error
	SetStatus(ctx context.Context, id, status string) error
}

// EventStore est le journal append-only des complétions. Record renvoie
// false quand la contrainte d'unicité (participant, activité, date) rejette
// l'insertion : c'est le signal canonique "déjà complété", pas la lecture
// préalable, car deux appels simultanés peuvent tous deux passer la lecture.
type EventStore interface {
	Record(ctx context.Context, e *model.CompletionEvent) (created bool, err error)
	ListByParticipant(ctx context.Context, participantID string) ([]model.CompletionEvent, error)
}

// BadgeStore attribue les badges (insert-or-ignore).
type BadgeStore interface {
	Award(ctx context.Context, userID, challengeID, tier string) error
}

// FriendGraph et CircleMembership sont les collaborateurs externes des
// filtres du classement. Le moteur ne consomme que des ensembles d'ids.
type FriendGraph interface {
	FriendIDs(ctx context.Context, userID string) ([]string, error)
}

type CircleMembership interface {
	CircleMemberIDs(ctx context.Context, userID string) ([]string, error)
}

// UserDirectory fournit l'identité d'affichage des entrées du classement.
type UserDirectory interface {
	Profiles(ctx context.Context, userIDs []string) (map[string]model.UserProfile, error)
}

// Engine est le point d'entrée des opérations du moteur. Aucune goroutine
// interne hormis le worker de badges ; la concurrence vient des appelants.
type Engine struct {
	challenges   ChallengeStore
	participants ParticipantStore
	events       EventStore
	friends      FriendGraph
	circles      CircleMembership
	users        UserDirectory
	clock        clock.Clock

	completed chan CompletedEvent
}

// New construit un moteur. clk est injectable pour figer le temps en test.
func New(
	challenges ChallengeStore,
	participants ParticipantStore,
	events EventStore,
	friends FriendGraph,
	circles CircleMembership,
	users UserDirectory,
	clk clock.Clock,
) *Engine {
	return &Engine{
		challenges:   challenges,
		participants: participants,
		events:       events,
		friends:      friends,
		circles:      circles,
		users:        users,
		clock:        clk,
		completed:    make(chan CompletedEvent, completedBuffer),
	}
}

// JoinChallenge inscrit un utilisateur à un challenge avec sa date de départ
// personnelle et sa sélection d'activités (vide = toutes).
func (e *Engine) JoinChallenge(ctx context.Context, userID, challengeID string, selected []string, startDate clock.Date) (*model.Participant, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	challenge, err := e.challenges.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	if existing, err := e.participants.GetByUser(ctx, challengeID, userID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrAlreadyJoined
	}

	if startDate.IsZero() {
		startDate = e.clock.Today()
	}

	p := &model.Participant{
		ID:                 uuid.NewString(),
		ChallengeID:        challengeID,
		UserID:             userID,
		StartDate:          startDate,
		Status:             model.ParticipantStatusActive,
		SelectedActivities: selected,
	}

	d := progress.Recompute(p, challenge, nil, e.clock)
	d.Apply(p)

	// La contrainte unique (challenge_id, user_id) couvre la course entre
	// deux joins simultanés ; Create la traduit en ErrAlreadyJoined.
	if err := e.participants.Create(ctx, p); err != nil {
		return nil, err
	}

	if err := e.rerank(ctx, challengeID); err != nil {
		logger.Warning("join: rerank of challenge %s failed: %v", challengeID, err)
	}

	return p, nil
}

// RecordCompletion enregistre "activité faite tel jour" pour un participant,
// puis déroule recalcul et reclassement. Une fois l'événement committé,
// les échecs des étapes suivantes sont logués, jamais propagés : le journal
// reste la source de vérité et la réconciliation rattrape les dérivés.
func (e *Engine) RecordCompletion(ctx context.Context, userID, participantID, activityID string, date clock.Date, verificationURL *string) (*model.Participant, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	p, err := e.participants.GetByID(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.UserID != userID {
		return nil, ErrParticipantNotFound
	}

	challenge, err := e.challenges.GetByID(ctx, p.ChallengeID)
	if err != nil {
		return nil, err
	}
	if !challengeHasActivity(challenge, activityID) {
		return nil, ErrActivityNotFound
	}

	// Vérifié avant l'append : une fenêtre personnelle écoulée ne peut pas
	// être prolongée en continuant d'y écrire.
	today := e.clock.Today()
	if p.IsTerminal() || clock.DaysBetween(p.StartDate, today)+1 > challenge.DurationDays {
		return nil, ErrChallengeExpired
	}

	if date.IsZero() {
		date = today
	}

	event := &model.CompletionEvent{
		ID:              uuid.NewString(),
		ParticipantID:   p.ID,
		ActivityID:      activityID,
		CompletedOn:     date,
		VerificationURL: verificationURL,
	}
	created, err := e.events.Record(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("record completion: %w", err)
	}
	if !created {
		return nil, ErrAlreadyCompletedToday
	}

	// À partir d'ici l'événement est en base : tout est best-effort.
	if err := e.refreshParticipant(ctx, p, challenge); err != nil {
		logger.Error("recompute after completion of %s failed: %v", p.ID, err)
		return p, nil
	}
	if err := e.rerank(ctx, p.ChallengeID); err != nil {
		logger.Error("rerank of challenge %s failed: %v", p.ChallengeID, err)
	}

	return p, nil
}

// LeaveChallenge retire un participant du challenge (statut left, définitif).
// keepActivities gouverne la liste d'habitudes personnelle de l'utilisateur,
// gérée par l'app hors du moteur ; il ne touche pas au journal de complétions,
// qui n'est jamais supprimé (append-only). Le statut left suffit à écarter le
// participant du classement.
func (e *Engine) LeaveChallenge(ctx context.Context, userID, participantID string, keepActivities bool) error {
	if userID == "" {
		return ErrNotAuthenticated
	}

	p, err := e.participants.GetByID(ctx, participantID)
	if err != nil {
		return err
	}
	if p == nil || p.UserID != userID {
		return ErrParticipantNotFound
	}
	if p.Status == model.ParticipantStatusLeft {
		return nil
	}

	if err := e.participants.SetStatus(ctx, p.ID, model.ParticipantStatusLeft); err != nil {
		return err
	}
	p.Status = model.ParticipantStatusLeft

	// Le départ libère un rang : reclasser les restants.
	if err := e.rerank(ctx, p.ChallengeID); err != nil {
		logger.Warning("rerank after leave of %s failed: %v", p.ID, err)
	}
	return nil
}

// GetParticipant renvoie l'inscription d'un utilisateur à un challenge, ou
// nil s'il n'y participe pas. Le jour courant est rafraîchi à la lecture :
// la valeur stockée date de la dernière écriture du participant.
func (e *Engine) GetParticipant(ctx context.Context, challengeID, userID string) (*model.Participant, error) {
	p, err := e.participants.GetByUser(ctx, challengeID, userID)
	if err != nil || p == nil {
		return nil, err
	}

	if challenge, err := e.challenges.GetByID(ctx, challengeID); err == nil {
		p.CurrentDay = displayDay(p.StartDate, e.clock.Today(), challenge.DurationDays)
	}
	return p, nil
}

// Reconcile rejoue recalcul, finalisation et reclassement pour tous les
// participants de tous les challenges actifs. Exécuté en tâche planifiée :
// c'est le filet de sécurité qui réaligne les dérivés sur le journal après un
// échec partiel d'écriture, et qui finalise les participants dont la fenêtre
// s'est écoulée sans qu'ils rouvrent l'app.
func (e *Engine) Reconcile(ctx context.Context) error {
	ids, err := e.challenges.ListActiveIDs(ctx)
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}

	for _, challengeID := range ids {
		challenge, err := e.challenges.GetByID(ctx, challengeID)
		if err != nil {
			logger.Error("reconcile: challenge %s: %v", challengeID, err)
			continue
		}
		participants, err := e.participants.ListByChallenge(ctx, challengeID)
		if err != nil {
			logger.Error("reconcile: participants of %s: %v", challengeID, err)
			continue
		}

		for _, p := range participants {
			if p.Status == model.ParticipantStatusLeft {
				continue
			}
			if err := e.refreshParticipant(ctx, p, challenge); err != nil {
				logger.Error("reconcile: participant %s: %v", p.ID, err)
				continue
			}
			// Ré-émettre pour les complétés : rattrape les attributions de
			// badge perdues quand le bus était saturé. Award est
			// insert-or-ignore, rejouer est sans effet.
			if p.Status == model.ParticipantStatusCompleted {
				e.emitCompleted(CompletedEvent{
					ParticipantID: p.ID,
					UserID:        p.UserID,
					ChallengeID:   p.ChallengeID,
					Badge:         p.BadgeEarned,
				})
			}
		}
		if err := e.rerank(ctx, challengeID); err != nil {
			logger.Error("reconcile: rerank %s: %v", challengeID, err)
		}
	}
	return nil
}

// refreshParticipant recharge le journal, recalcule les dérivés, applique la
// machine à états et persiste. Idempotent : rejouable sans effet de bord.
func (e *Engine) refreshParticipant(ctx context.Context, p *model.Participant, challenge *model.Challenge) error {
	events, err := e.events.ListByParticipant(ctx, p.ID)
	if err != nil {
		return err
	}

	d := progress.Recompute(p, challenge, events, e.clock)
	d.Apply(p)

	if progress.Finalize(p, challenge, d) && p.Status == model.ParticipantStatusCompleted {
		e.emitCompleted(CompletedEvent{
			ParticipantID: p.ID,
			UserID:        p.UserID,
			ChallengeID:   p.ChallengeID,
			Badge:         p.BadgeEarned,
		})
	}

	return e.participants.SaveDerived(ctx, p)
}

// rerank recharge tous les participants du challenge et réécrit rangs et
// percentiles. Recalcul complet à chaque écriture : un rang affiché peut être
// périmé entre la mise à jour d'un participant et la fin du reclassement
// suivant, fenêtre d'incohérence acceptée.
func (e *Engine) rerank(ctx context.Context, challengeID string) error {
	participants, err := e.participants.ListByChallenge(ctx, challengeID)
	if err != nil {
		return err
	}
	ranked := rank.Rank(participants)
	return e.participants.SaveRanks(ctx, ranked)
}

func challengeHasActivity(c *model.Challenge, activityID string) bool {
	for _, a := range c.Activities {
		if a.ID == activityID {
			return true
		}
	}
	return false
}

// displayDay borne le jour courant à [0, duration] pour l'affichage.
func displayDay(start, today clock.Date, duration int) int {
	day := clock.DaysBetween(start, today) + 1
	if day < 0 {
		return 0
	}
	if day > duration {
		return duration
	}
	return day
}
