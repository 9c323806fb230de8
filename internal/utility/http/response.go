package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"quizify/internal/models"
)

type jsonResponse struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(w http.ResponseWriter, data interface{}) {
	response := &jsonResponse{
		Success: true,
		Code:    http.StatusOK,
		Message: "Success",
		Data:    data,
	}
	sendJSONResponse(w, http.StatusOK, response)
}

// RespondCreated is RespondSuccess with a 201.
func RespondCreated(w http.ResponseWriter, data interface{}) {
	response := &jsonResponse{
		Success: true,
		Code:    http.StatusCreated,
		Message: "Success",
		Data:    data,
	}
	sendJSONResponse(w, http.StatusCreated, response)
}

// RespondError sends an error JSON response.
func RespondError(w http.ResponseWriter, code int, message string, err error) {
	if err != nil {
		log.Printf("Error: %v", err)
	}
	response := &jsonResponse{
		Success: false,
		Code:    code,
		Message: message,
	}
	sendJSONResponse(w, code, response)
}

// RespondServiceError maps the service error kinds onto status codes. Lookup
// misses and authorization failures stay distinguishable (404 vs 403).
func RespondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrQuizNotFound),
		errors.Is(err, models.ErrQuestionNotFound),
		errors.Is(err, models.ErrAttemptNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrSessionNotFound),
		errors.Is(err, models.ErrQuestionNotInQuiz):
		RespondError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, models.ErrForbidden):
		RespondError(w, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, models.ErrInvalidCredentials):
		RespondError(w, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, models.ErrInvalidInput):
		RespondError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, models.ErrAlreadyExists):
		RespondError(w, http.StatusConflict, err.Error(), nil)
	default:
		RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
	}
}

func sendJSONResponse(w http.ResponseWriter, code int, response *jsonResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
