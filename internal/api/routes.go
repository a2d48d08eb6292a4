package api

import (
	"net/http"

	"github.com/MassBabyGeek/HabitFlow-backend/internal/handler"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/middleware"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/utils"
	"github.com/fatih/color"
	"github.com/gorilla/mux"
)

func SetupRouter() http.Handler {
	r := mux.NewRouter()

	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(middleware.AuthMiddleware)
	authenticatedRoutes.Use(middleware.LoggerMiddleware)

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)

	// Challenges (catalogue)
	r.HandleFunc("/challenges/{id}", handler.GetChallengeById).Methods(http.MethodGet)

	// Participation
	authenticatedRoutes.HandleFunc("/challenges/{id}/join", handler.JoinChallenge).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/challenges/{id}/participant", handler.GetParticipant).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/participants/{id}/completions", handler.RecordCompletion).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/participants/{id}/leave", handler.LeaveChallenge).Methods(http.MethodPost)

	// Challenge leaderboard : lecture anonyme pour le filtre "all", viewer
	// optionnel pour les filtres sociaux. Seule route à auth optionnelle, pour
	// ne pas valider le token deux fois sur les routes authentifiées.
	r.Handle("/challenges/{id}/leaderboard",
		middleware.OptionalAuth(http.HandlerFunc(handler.GetChallengeLeaderboard))).Methods(http.MethodGet)

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.LogError("404 Not Found: %s %s", r.Method, r.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
