package middleware

import (
	"net/http"
	"time"

	"github.com/MassBabyGeek/HabitFlow-backend/internal/logger"
)

// LoggerMiddleware trace chaque requête avec son status code et sa durée,
// colorés selon la classe de la réponse.
func LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		logger.Request(r.Method, r.URL.Path, recorder.status, time.Since(start))
	})
}

// statusRecorder capture le status code écrit par le handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
