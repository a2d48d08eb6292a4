package handler

import (
	"net/http"
	"strconv"

	"github.com/MassBabyGeek/HabitFlow-backend/internal/middleware"
	model "github.com/MassBabyGeek/HabitFlow-backend/internal/models"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/utils"
	"github.com/gorilla/mux"
)

// GetChallengeLeaderboard récupère le classement d'un challenge.
// Params: filter (all/friends/circle), sort (rank/fastest/perfect), limit.
// Les filtres sociaux exigent un viewer authentifié ; la vue "all" est
// accessible anonymement.
func GetChallengeLeaderboard(w http.ResponseWriter, r *http.Request) {
	challengeID := mux.Vars(r)["id"]
	query := r.URL.Query()

	filter := query.Get("filter")
	if filter == "" {
		filter = model.LeaderboardFilterAll
	}
	sortMode := query.Get("sort")
	if sortMode == "" {
		sortMode = model.LeaderboardSortRank
	}

	limit := 0
	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	viewerID := ""
	if user, err := middleware.GetUserFromContext(r); err == nil {
		viewerID = user.ID
	}
	if viewerID == "" && filter != model.LeaderboardFilterAll {
		utils.ErrorSimple(w, http.StatusUnauthorized, "social filters require authentication")
		return
	}

	entries, err := eng.GetLeaderboard(r.Context(), challengeID, viewerID, filter, sortMode, limit)
	if err != nil {
		engineError(w, err)
		return
	}

	utils.Success(w, entries)
}
