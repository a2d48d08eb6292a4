package scanner

import (
	"database/sql"
	"time"

	"github.com/MassBabyGeek/HabitFlow-backend/internal/clock"
	model "github.com/MassBabyGeek/HabitFlow-backend/internal/models"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/utils"
	"github.com/lib/pq"
)

// RowScanner est l'interface structurelle commune à pgx.Row et pgx.Rows.
type RowScanner interface {
	Scan(dest ...interface{}) error
}

// ScanChallenge scanne une ligne SQL vers un Challenge (sans ses activités)
func ScanChallenge(scanner RowScanner) (*model.Challenge, error) {
	var c model.Challenge

	err := scanner.Scan(
		&c.ID, &c.Title, &c.Description, &c.DurationDays, &c.SuccessThreshold,
		&c.BadgeIconName, &c.BadgeIconColor, &c.Status, &c.IsOfficial,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// ScanActivity scanne une ligne SQL vers une Activity
func ScanActivity(scanner RowScanner) (*model.Activity, error) {
	var a model.Activity
	var startDay, endDay sql.NullInt64

	err := scanner.Scan(&a.ID, &a.ChallengeID, &a.Title, &startDay, &endDay)
	if err != nil {
		return nil, err
	}

	// Conversions
	a.StartDay = utils.NullInt64ToPointer(startDay)
	a.EndDay = utils.NullInt64ToPointer(endDay)

	return &a, nil
}

// ScanParticipant scanne une ligne SQL vers un Participant
func ScanParticipant(scanner RowScanner) (*model.Participant, error) {
	var p model.Participant
	var startDate time.Time
	var daysTaken sql.NullInt64
	var badge sql.NullString

	err := scanner.Scan(
		&p.ID, &p.ChallengeID, &p.UserID, &startDate, &p.Status,
		pq.Array(&p.SelectedActivities),
		&p.CurrentDay, &p.CompletedDays, &p.CompletionPercentage,
		&p.CurrentStreak, &p.LongestStreak, &daysTaken,
		&p.Rank, &p.Percentile, &badge,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Conversions
	p.StartDate = clock.DateOf(startDate)
	p.DaysTaken = utils.NullInt64ToPointer(daysTaken)
	p.BadgeEarned = utils.NullStringToString(badge)

	return &p, nil
}

// ScanCompletionEvent scanne une ligne SQL vers un CompletionEvent
func ScanCompletionEvent(scanner RowScanner) (*model.CompletionEvent, error) {
	var e model.CompletionEvent
	var completedOn time.Time
	var verification sql.NullString

	err := scanner.Scan(
		&e.ID, &e.ParticipantID, &e.ActivityID, &completedOn,
		&verification, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.CompletedOn = clock.DateOf(completedOn)
	e.VerificationURL = utils.NullStringToPointer(verification)

	return &e, nil
}

// ScanUserProfile scanne une ligne SQL vers un UserProfile
func ScanUserProfile(scanner RowScanner) (*model.UserProfile, error) {
	var u model.UserProfile
	var avatar sql.NullString

	err := scanner.Scan(&u.ID, &u.Name, &u.Email, &avatar, &u.JoinDate, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}

	u.Avatar = utils.NullStringToString(avatar)

	return &u, nil
}
