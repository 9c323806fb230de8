package handlers

import (
	"context"
	"net/http"
	"strings"

	"quizify/internal/models"
	"quizify/internal/services"
	"quizify/internal/utility"
	httputil "quizify/internal/utility/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthMiddleware resolves the bearer token to a full user record and stores it
// in the request context, so handlers and services receive identity as data.
type AuthMiddleware struct {
	users services.UserStore
}

func NewAuthMiddleware(users services.UserStore) *AuthMiddleware {
	return &AuthMiddleware{users: users}
}

func (m *AuthMiddleware) Authentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			httputil.RespondError(w, http.StatusUnauthorized, "No Authorization header provided", nil)
			return
		}
		clientToken := strings.TrimPrefix(header, "Bearer ")

		claims, errMsg := utility.ValidateToken(clientToken)
		if errMsg != "" {
			httputil.RespondError(w, http.StatusUnauthorized, errMsg, nil)
			return
		}

		uid, err := primitive.ObjectIDFromHex(claims.Uid)
		if err != nil {
			httputil.RespondError(w, http.StatusUnauthorized, "Invalid token", nil)
			return
		}
		user, err := m.users.FindByID(r.Context(), uid)
		if err != nil {
			httputil.RespondError(w, http.StatusUnauthorized, "User no longer exists", nil)
			return
		}

		ctx := context.WithValue(r.Context(), models.ContextUser, *user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly requires Authentication to have run first.
func (m *AuthMiddleware) AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := CurrentUser(r)
		if !ok {
			httputil.RespondError(w, http.StatusUnauthorized, "Not authenticated", nil)
			return
		}
		if !user.IsAdmin {
			httputil.RespondError(w, http.StatusForbidden, "Admin privileges required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentUser returns the authenticated user placed in the context by Authentication.
func CurrentUser(r *http.Request) (models.User, bool) {
	user, ok := r.Context().Value(models.ContextUser).(models.User)
	return user, ok
}
