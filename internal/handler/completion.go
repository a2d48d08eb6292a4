package handler

import (
	"net/http"

	"github.com/MassBabyGeek/HabitFlow-backend/internal/clock"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/middleware"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/utils"
	"github.com/gorilla/mux"
)

type recordCompletionRequest struct {
	ActivityID string `json:"activityId"`
	// Date de la complétion (YYYY-MM-DD). Vide = aujourd'hui. Les clients
	// mobiles antidatent quand ils resynchronisent après une coupure réseau.
	Date            string  `json:"date"`
	VerificationURL *string `json:"verificationUrl"`
}

// RecordCompletion logge "activité faite tel jour" pour un participant
func RecordCompletion(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	participantID := mux.Vars(r)["id"]

	var req recordCompletionRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.ActivityID == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "activityId is required")
		return
	}

	var date clock.Date
	if req.Date != "" {
		date, err = clock.ParseDate(req.Date)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", err)
			return
		}
	}

	participant, err := eng.RecordCompletion(r.Context(), user.ID, participantID, req.ActivityID, date, req.VerificationURL)
	if err != nil {
		engineError(w, err)
		return
	}

	utils.Success(w, participant)
}
