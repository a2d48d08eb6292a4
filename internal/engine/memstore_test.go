package engine

import (
	"context"
	"sync"

	model "github.com/MassBabyGeek/HabitFlow-backend/internal/models"
)

// Doubles en mémoire des ports de stockage. Reproduisent les contraintes
// d'unicité que la base garantit en production (clé d'événement, couple
// challenge/utilisateur).

type memChallenges struct {
	byID map[string]*model.Challenge
}

func (m *memChallenges) GetByID(_ context.Context, id string) (*model.Challenge, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, ErrChallengeNotFound
	}
	return c, nil
}

func (m *memChallenges) ListActiveIDs(context.Context) ([]string, error) {
	var ids []string
	for id := range m.byID {
		ids = append(ids, id)
	}
	return ids, nil
}

type memParticipants struct {
	mu   sync.Mutex
	byID map[string]*model.Participant
}

func newMemParticipants() *memParticipants {
	return &memParticipants{byID: make(map[string]*model.Participant)}
}

func (m *memParticipants) Create(_ context.Context, p *model.Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.ChallengeID == p.ChallengeID && existing.UserID == p.UserID {
			return ErrAlreadyJoined
		}
	}
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memParticipants) GetByID(_ context.Context, id string) (*model.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memParticipants) GetByUser(_ context.Context, challengeID, userID string) (*model.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byID {
		if p.ChallengeID == challengeID && p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memParticipants) ListByChallenge(_ context.Context, challengeID string) ([]*model.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Participant
	for _, p := range m.byID {
		if p.ChallengeID == challengeID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memParticipants) SaveDerived(_ context.Context, p *model.Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.byID[p.ID]
	if !ok {
		return ErrParticipantNotFound
	}
	stored.CurrentDay = p.CurrentDay
	stored.CompletedDays = p.CompletedDays
	stored.CompletionPercentage = p.CompletionPercentage
	stored.CurrentStreak = p.CurrentStreak
	stored.LongestStreak = p.LongestStreak
	stored.DaysTaken = p.DaysTaken
	stored.Status = p.Status
	stored.BadgeEarned = p.BadgeEarned
	return nil
}

func (m *memParticipants) SaveRanks(_ context.Context, participants []*model.Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range participants {
		if stored, ok := m.byID[p.ID]; ok {
			stored.Rank = p.Rank
			stored.Percentile = p.Percentile
		}
	}
	return nil
}

func (m *memParticipants) SetStatus(_ context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.byID[id]
	if !ok {
		return ErrParticipantNotFound
	}
	stored.Status = status
	return nil
}

type memEvents struct {
	mu     sync.Mutex
	events []model.CompletionEvent
	keys   map[string]bool
}

func newMemEvents() *memEvents {
	return &memEvents{keys: make(map[string]bool)}
}

func (m *memEvents) Record(_ context.Context, e *model.CompletionEvent) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := e.ParticipantID + "|" + e.ActivityID + "|" + e.CompletedOn.String()
	if m.keys[key] {
		return false, nil
	}
	m.keys[key] = true
	m.events = append(m.events, *e)
	return true, nil
}

func (m *memEvents) ListByParticipant(_ context.Context, participantID string) ([]model.CompletionEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.CompletionEvent
	for _, e := range m.events {
		if e.ParticipantID == participantID {
			out = append(out, e)
		}
	}
	return out, nil
}

type memBadges struct {
	mu     sync.Mutex
	awards map[string]string // userID|challengeID -> tier
}

func newMemBadges() *memBadges {
	return &memBadges{awards: make(map[string]string)}
}

func (m *memBadges) Award(_ context.Context, userID, challengeID, tier string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := userID + "|" + challengeID
	if _, ok := m.awards[key]; ok {
		return nil // insert-or-ignore
	}
	m.awards[key] = tier
	return nil
}

func (m *memBadges) tier(userID, challengeID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.awards[userID+"|"+challengeID]
}

type memSocial struct {
	friends map[string][]string
	circles map[string][]string
}

func (m *memSocial) FriendIDs(_ context.Context, userID string) ([]string, error) {
	return m.friends[userID], nil
}

func (m *memSocial) CircleMemberIDs(_ context.Context, userID string) ([]string, error) {
	return m.circles[userID], nil
}

type memUsers struct{}

func (memUsers) Profiles(_ context.Context, userIDs []string) (map[string]model.UserProfile, error) {
	out := make(map[string]model.UserProfile, len(userIDs))
	for _, id := range userIDs {
		out[id] = model.UserProfile{ID: id, Name: "user " + id}
	}
	return out, nil
}
