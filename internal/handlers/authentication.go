package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"quizify/internal/models"
	"quizify/internal/services"
	httputil "quizify/internal/utility/http"
)

const refreshCookieName = "refreshToken"

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type signUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.auth.SignUp(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		httputil.RespondServiceError(w, err)
		return
	}

	httputil.RespondCreated(w, map[string]interface{}{
		"userId":   user.ID,
		"username": user.Username,
	})
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, accessToken, refreshToken, err := h.auth.SignIn(r.Context(), req.Username, req.Password)
	if err != nil {
		httputil.RespondServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		Expires:  time.Now().Add(services.RefreshTokenTTL),
	})

	httputil.RespondSuccess(w, map[string]interface{}{
		"accessToken": accessToken,
		"userId":      user.ID,
		"username":    user.Username,
		"isAdmin":     user.IsAdmin,
	})
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(refreshCookieName); err == nil {
		if err := h.auth.SignOut(r.Context(), cookie.Value); err != nil {
			httputil.RespondServiceError(w, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	httputil.RespondSuccess(w, nil)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		httputil.RespondError(w, http.StatusUnauthorized, "No refresh token", nil)
		return
	}

	accessToken, err := h.auth.Refresh(r.Context(), cookie.Value)
	if errors.Is(err, models.ErrSessionNotFound) {
		httputil.RespondError(w, http.StatusUnauthorized, "Refresh token is no longer valid", nil)
		return
	}
	if err != nil {
		httputil.RespondServiceError(w, err)
		return
	}
	httputil.RespondSuccess(w, map[string]interface{}{"accessToken": accessToken})
}
