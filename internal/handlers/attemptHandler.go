package handlers

import (
	"net/http"

	"quizify/internal/services"
	httputil "quizify/internal/utility/http"
)

type AttemptHandler struct {
	attempts *services.AttemptService
}

func NewAttemptHandler(attempts *services.AttemptService) *AttemptHandler {
	return &AttemptHandler{attempts: attempts}
}

// GetMyAttempts lists the caller's attempts, newest first.
func (h *AttemptHandler) GetMyAttempts(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}

	attempts, err := h.attempts.GetUserAttempts(r.Context(), user.ID)
	if err != nil {
		httputil.RespondServiceError(w, err)
		return
	}
	httputil.RespondSuccess(w, attempts)
}

// GetAttemptByID serves one attempt to its owner or an admin. Missing attempt
// and unauthorized access stay distinct (404 vs 403).
func (h *AttemptHandler) GetAttemptByID(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}
	attemptID, ok := urlObjectID(w, r, "attemptId")
	if !ok {
		return
	}

	attempt, err := h.attempts.GetAttemptByID(r.Context(), attemptID, user.ID, user.IsAdmin)
	if err != nil {
		httputil.RespondServiceError(w, err)
		return
	}
	httputil.RespondSuccess(w, attempt)
}
