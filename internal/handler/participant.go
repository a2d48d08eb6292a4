package handler

import (
	"net/http"

	"github.com/MassBabyGeek/HabitFlow-backend/internal/clock"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/middleware"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/utils"
	"github.com/gorilla/mux"
)

type joinChallengeRequest struct {
	// Date de départ personnelle (YYYY-MM-DD). Vide = aujourd'hui.
	StartDate           string   `json:"startDate"`
	SelectedActivityIds []string `json:"selectedActivityIds"`
}

// JoinChallenge inscrit l'utilisateur courant à un challenge
func JoinChallenge(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	challengeID := mux.Vars(r)["id"]

	var req joinChallengeRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	var startDate clock.Date
	if req.StartDate != "" {
		startDate, err = clock.ParseDate(req.StartDate)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid startDate, expected YYYY-MM-DD", err)
			return
		}
	}

	participant, err := eng.JoinChallenge(r.Context(), user.ID, challengeID, req.SelectedActivityIds, startDate)
	if err != nil {
		engineError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, utils.APIResponse{Success: true, Data: participant})
}

// GetParticipant renvoie l'inscription de l'utilisateur courant au challenge
func GetParticipant(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	challengeID := mux.Vars(r)["id"]

	participant, err := eng.GetParticipant(r.Context(), challengeID, user.ID)
	if err != nil {
		engineError(w, err)
		return
	}
	if participant == nil {
		utils.ErrorSimple(w, http.StatusNotFound, "not a participant of this challenge")
		return
	}

	utils.Success(w, participant)
}

type leaveChallengeRequest struct {
	// true = conserver l'historique de complétions pour les stats personnelles
	KeepActivities bool `json:"keepActivities"`
}

// LeaveChallenge retire l'utilisateur courant du challenge
func LeaveChallenge(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	participantID := mux.Vars(r)["id"]

	var req leaveChallengeRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := eng.LeaveChallenge(r.Context(), user.ID, participantID, req.KeepActivities); err != nil {
		engineError(w, err)
		return
	}

	utils.Message(w, "challenge left")
}
