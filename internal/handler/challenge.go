package handler

import (
	"net/http"

	"github.com/MassBabyGeek/HabitFlow-backend/internal/utils"
	"github.com/gorilla/mux"
)

// GetChallengeById récupère un challenge du catalogue avec ses activités
func GetChallengeById(w http.ResponseWriter, r *http.Request) {
	challengeID := mux.Vars(r)["id"]

	challenge, err := challenges.GetByID(r.Context(), challengeID)
	if err != nil {
		engineError(w, err)
		return
	}

	utils.Success(w, challenge)
}
