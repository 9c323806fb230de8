package handlers

import (
	"encoding/json"
	"net/http"

	"quizify/internal/models"
	"quizify/internal/services"
	httputil "quizify/internal/utility/http"
)

type QuestionHandler struct {
	questions *services.QuestionService
}

func NewQuestionHandler(questions *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

func (h *QuestionHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questions.GetAllQuestions(r.Context())
	if err != nil {
		httputil.RespondServiceError(w, err)
		return
	}
	httputil.RespondSuccess(w, map[string]interface{}{
		"questions":      questions,
		"totalQuestions": len(questions),
	})
}

func (h *QuestionHandler) GetQuestionByID(w http.ResponseWriter, r *http.Request) {
	questionID, ok := urlObjectID(w, r, "questionId")
	if !ok {
		return
	}

	question, err := h.questions.GetQuestionByID(r.Context(), questionID)
	if err != nil {
		httputil.RespondServiceError(w, err)
		return
	}
	httputil.RespondSuccess(w, question)
}

// EditQuestion is author-only; the service rejects non-authors with a 403.
func (h *QuestionHandler) EditQuestion(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}
	questionID, ok := urlObjectID(w, r, "questionId")
	if !ok {
		return
	}

	var update models.QuestionUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	question, err := h.questions.UpdateQuestion(r.Context(), questionID, user.ID, update)
	if err != nil {
		httputil.RespondServiceError(w, err)
		return
	}
	httputil.RespondSuccess(w, question)
}

func (h *QuestionHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}
	questionID, ok := urlObjectID(w, r, "questionId")
	if !ok {
		return
	}

	question, err := h.questions.DeleteQuestion(r.Context(), questionID, user.ID)
	if err != nil {
		httputil.RespondServiceError(w, err)
		return
	}
	httputil.RespondSuccess(w, question)
}
