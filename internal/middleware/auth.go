package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/MassBabyGeek/HabitFlow-backend/internal/database"
	model "github.com/MassBabyGeek/HabitFlow-backend/internal/models"
	"github.com/MassBabyGeek/HabitFlow-backend/internal/utils"
	"github.com/jackc/pgx/v5"
)

// Context keys
type contextKey string

const userContextKey = contextKey("user")

// AuthMiddleware valide le token de session et injecte l'utilisateur dans le
// contexte. Le moteur ne possède pas les sessions : elles sont écrites par le
// fournisseur d'identité, on ne fait que les lire.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			utils.ErrorSimple(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		user, err := validateTokenAndGetUser(r.Context(), token)
		if err != nil {
			utils.ErrorSimple(w, http.StatusUnauthorized, fmt.Sprintf("invalid token: %v", err))
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, *user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth injecte l'utilisateur si un token valide est présent, et
// laisse passer la requête anonyme sinon.
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := r.Header.Get("Authorization"); token != "" {
			if user, err := validateTokenAndGetUser(r.Context(), token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), userContextKey, *user))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// validateTokenAndGetUser valide le token et retourne l'utilisateur associé
func validateTokenAndGetUser(ctx context.Context, token string) (*model.UserProfile, error) {
	var user model.UserProfile

	err := database.DB.QueryRow(ctx, `
		SELECT u.id, u.name, u.email, COALESCE(u.avatar, '')
		FROM users u
		JOIN sessions s ON u.id = s.user_id
		WHERE s.token = $1
			AND s.is_active = true
			AND s.expires_at > NOW()
			AND u.deleted_at IS NULL
	`, token).Scan(&user.ID, &user.Name, &user.Email, &user.Avatar)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("token not found or expired")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &user, nil
}

// GetUserFromContext récupère l'utilisateur depuis le contexte de la requête
func GetUserFromContext(r *http.Request) (model.UserProfile, error) {
	user, ok := r.Context().Value(userContextKey).(model.UserProfile)
	if !ok {
		return model.UserProfile{}, fmt.Errorf("user not found in context")
	}
	return user, nil
}
