package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"quizify/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttemptService scores submissions and serves attempts back with
// authorization-filtered access. It never mutates quiz or question records.
type AttemptService struct {
	attempts  AttemptStore
	quizzes   QuizStore
	questions QuestionStore
}

func NewAttemptService(attempts AttemptStore, quizzes QuizStore, questions QuestionStore) *AttemptService {
	return &AttemptService{attempts: attempts, quizzes: quizzes, questions: questions}
}

// CreateAttempt loads the quiz with its full question set, validates every
// submitted answer against it, computes the score and persists one immutable
// attempt. An answer referencing a question outside the quiz is a hard failure,
// not a silent skip. The score is computed against the quiz's question count at
// read time, so unanswered questions count as incorrect.
func (s *AttemptService) CreateAttempt(ctx context.Context, userID, quizID primitive.ObjectID, answers []models.AnswerSubmission) (*models.AttemptSummary, error) {
	quiz, err := s.quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questions.FindByIDs(ctx, quiz.Questions)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	totalQuestions := len(questions)
	correctCount := 0
	validated := make([]models.AttemptAnswer, 0, len(answers))
	for _, answer := range answers {
		question, ok := byID[answer.QuestionID]
		if !ok {
			return nil, fmt.Errorf("question %s: %w", answer.QuestionID.Hex(), models.ErrQuestionNotInQuiz)
		}
		if question.CorrectAnswerIndex == answer.SelectedIndex {
			correctCount++
		}
		validated = append(validated, models.AttemptAnswer{
			Question:      answer.QuestionID,
			SelectedIndex: answer.SelectedIndex,
		})
	}

	score := 0
	if totalQuestions > 0 {
		score = int(math.Round(float64(correctCount) / float64(totalQuestions) * 100))
	}

	attempt := &models.Attempt{
		ID:             primitive.NewObjectID(),
		User:           userID,
		Quiz:           quizID,
		Answers:        validated,
		Score:          score,
		TotalQuestions: totalQuestions,
		CorrectCount:   correctCount,
		Created_at:     time.Now().UTC(),
	}
	if err := s.attempts.Insert(ctx, attempt); err != nil {
		return nil, err
	}

	return &models.AttemptSummary{
		AttemptID:      attempt.ID,
		Score:          score,
		CorrectCount:   correctCount,
		TotalQuestions: totalQuestions,
	}, nil
}

// GetAttemptByID loads one attempt with quiz summary and per-answer question
// detail resolved. Only the owner or an admin may read it; a missing attempt is
// reported as not-found and an unauthorized read as forbidden, never one
// disguised as the other.
func (s *AttemptService) GetAttemptByID(ctx context.Context, attemptID, requesterID primitive.ObjectID, requesterIsAdmin bool) (*models.PopulatedAttempt, error) {
	attempt, err := s.attempts.FindByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if !requesterIsAdmin && attempt.User != requesterID {
		return nil, models.ErrForbidden
	}

	populated, err := s.populate(ctx, attempt, nil)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(attempt.Answers))
	for _, a := range attempt.Answers {
		ids = append(ids, a.Question)
	}
	questions, err := s.questions.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	details := make([]models.AnswerDetail, 0, len(attempt.Answers))
	for _, a := range attempt.Answers {
		// Questions deleted after the attempt are left out of the detail view;
		// the raw answer list still carries the reference.
		if q, ok := byID[a.Question]; ok {
			details = append(details, models.AnswerDetail{Question: q, SelectedIndex: a.SelectedIndex})
		}
	}
	populated.AnswerDetails = details
	return populated, nil
}

// GetUserAttempts returns all attempts owned by the user, newest first, each
// with its quiz summary resolved.
func (s *AttemptService) GetUserAttempts(ctx context.Context, userID primitive.ObjectID) ([]models.PopulatedAttempt, error) {
	attempts, err := s.attempts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make(map[primitive.ObjectID]models.QuizSummary)
	populated := make([]models.PopulatedAttempt, 0, len(attempts))
	for i := range attempts {
		p, err := s.populate(ctx, &attempts[i], summaries)
		if err != nil {
			return nil, err
		}
		populated = append(populated, *p)
	}
	return populated, nil
}

func (s *AttemptService) populate(ctx context.Context, attempt *models.Attempt, cache map[primitive.ObjectID]models.QuizSummary) (*models.PopulatedAttempt, error) {
	summary, ok := cache[attempt.Quiz]
	if !ok {
		summary = models.QuizSummary{ID: attempt.Quiz}
		quiz, err := s.quizzes.FindByID(ctx, attempt.Quiz)
		switch {
		case err == nil:
			summary.Title = quiz.Title
			summary.Description = quiz.Description
		case errors.Is(err, models.ErrQuizNotFound):
			// Attempts outlive their quiz; keep the bare reference.
		default:
			return nil, err
		}
		if cache != nil {
			cache[attempt.Quiz] = summary
		}
	}

	return &models.PopulatedAttempt{
		ID:             attempt.ID,
		User:           attempt.User,
		Quiz:           summary,
		Answers:        attempt.Answers,
		Score:          attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		CorrectCount:   attempt.CorrectCount,
		Created_at:     attempt.Created_at,
	}, nil
}
