package handlers

import (
	"encoding/json"
	"net/http"

	"quizify/internal/models"
	"quizify/internal/services"
	httputil "quizify/internal/utility/http"
)

type QuizHandler struct {
	quizzes  *services.QuizService
	attempts *services.AttemptService
}

func NewQuizHandler(quizzes *services.QuizService, attempts *services.AttemptService) *QuizHandler {
	return &QuizHandler{quizzes: quizzes, attempts: attempts}
}

func (h *QuizHandler) GetQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.quizzes.GetAllQuizzes(r.Context())
	if err != nil {
		httputil.RespondServiceError(w, err)
		return
	}
	httputil.RespondSuccess(w, quizzes)
}

func (h *QuizHandler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}

	var input models.QuizInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	quiz, err := h.quizzes.CreateQuiz(r.Context(), user.ID, input)
	if err != nil {
		httputil.RespondServiceError(w, err)
		return
	}
	httputil.RespondCreated(w, quiz)
}

func (h *QuizHandler) GetQuizByID(w http.ResponseWriter, r *http.Request) {
	quizID, ok := urlObjectID(w, r, "quizId")
	if !ok {
		return
	}

	quiz, err := h.quizzes.GetQuizByID(r.Context(), quizID)
	if err != nil {
		httputil.RespondServiceError(w, err)
		return
	}
	httputil.RespondSuccess(w, quiz)
}

func (h *QuizHandler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, ok := urlObjectID(w, r, "quizId")
	if !ok {
		return
	}

	var update models.QuizUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	quiz, err := h.quizzes.UpdateQuiz(r.Context(), quizID, update)
	if err != nil {
		httputil.RespondServiceError(w, err)
		return
	}
	httputil.RespondSuccess(w, quiz)
}

func (h *QuizHandler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, ok := urlObjectID(w, r, "quizId")
	if !ok {
		return
	}

	quiz, err := h.quizzes.DeleteQuiz(r.Context(), quizID)
	if err != nil {
		httputil.RespondServiceError(w, err)
		return
	}
	httputil.RespondSuccess(w, quiz)
}

func (h *QuizHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}
	quizID, ok := urlObjectID(w, r, "quizId")
	if !ok {
		return
	}

	var input models.QuestionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	question, err := h.quizzes.AddQuestionToQuiz(r.Context(), quizID, user.ID, input)
	if err != nil {
		httputil.RespondServiceError(w, err)
		return
	}
	httputil.RespondCreated(w, question)
}

func (h *QuizHandler) AddManyQuestions(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}
	quizID, ok := urlObjectID(w, r, "quizId")
	if !ok {
		return
	}

	var inputs []models.QuestionInput
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Request body must be an array of questions", err)
		return
	}

	count, err := h.quizzes.AddManyQuestionsToQuiz(r.Context(), quizID, user.ID, inputs)
	if err != nil {
		httputil.RespondServiceError(w, err)
		return
	}
	httputil.RespondCreated(w, map[string]interface{}{"inserted": count})
}

func (h *QuizHandler) FilterByKeyword(w http.ResponseWriter, r *http.Request) {
	quizID, ok := urlObjectID(w, r, "quizId")
	if !ok {
		return
	}
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		httputil.RespondError(w, http.StatusBadRequest, "keyword query parameter is required", nil)
		return
	}

	quiz, err := h.quizzes.FilterQuestionsByKeyword(r.Context(), quizID, keyword)
	if err != nil {
		httputil.RespondServiceError(w, err)
		return
	}
	httputil.RespondSuccess(w, quiz)
}

// TakeQuiz serves the redacted projection; the answer key never leaves the server here.
func (h *QuizHandler) TakeQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, ok := urlObjectID(w, r, "quizId")
	if !ok {
		return
	}

	quiz, err := h.quizzes.GetQuizForTaking(r.Context(), quizID)
	if err != nil {
		httputil.RespondServiceError(w, err)
		return
	}
	httputil.RespondSuccess(w, quiz)
}

type submitRequest struct {
	Answers []models.AnswerSubmission `json:"answers"`
}

func (h *QuizHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}
	quizID, ok := urlObjectID(w, r, "quizId")
	if !ok {
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	summary, err := h.attempts.CreateAttempt(r.Context(), user.ID, quizID, req.Answers)
	if err != nil {
		httputil.RespondServiceError(w, err)
		return
	}
	httputil.RespondCreated(w, summary)
}
