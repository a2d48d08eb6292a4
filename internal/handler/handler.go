package handler

import (
	"errors"
	"net/http"

	"github.com/MassBabyGeek/HabitFlow-backend/internal/engine"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/utils"
)

// Moteur et catalogue partagés par tous les handlers, câblés au démarrage.
var (
	eng        *engine.Engine
	challenges engine.ChallengeStore
)

// Init câble les dépendances du package. À appeler avant SetupRouter.
func Init(e *engine.Engine, ch engine.ChallengeStore) {
	eng = e
	challenges = ch
}

// engineError traduit les sentinelles du moteur en statuts HTTP. Toute erreur
// hors taxonomie est une 500.
func engineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrNotAuthenticated):
		utils.ErrorSimple(w, http.StatusUnauthorized, "not authenticated")
	case errors.Is(err, engine.ErrChallengeNotFound):
		utils.ErrorSimple(w, http.StatusNotFound, "challenge not found")
	case errors.Is(err, engine.ErrParticipantNotFound):
		utils.ErrorSimple(w, http.StatusNotFound, "participant not found")
	case errors.Is(err, engine.ErrActivityNotFound):
		utils.ErrorSimple(w, http.StatusNotFound, "activity not found in challenge")
	case errors.Is(err, engine.ErrAlreadyJoined):
		utils.ErrorSimple(w, http.StatusConflict, "challenge already joined")
	case errors.Is(err, engine.ErrAlreadyCompletedToday):
		utils.ErrorSimple(w, http.StatusConflict, "activity already completed for this date")
	case errors.Is(err, engine.ErrChallengeExpired):
		utils.ErrorSimple(w, http.StatusUnprocessableEntity, "challenge window has elapsed")
	default:
		utils.Error(w, http.StatusInternalServerError, "internal error", err)
	}
}
