package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quizify/internal/models"

	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionService serves standalone question reads and author-only mutations.
// Creation goes through QuizService so a question is always born attached.
type QuestionService struct {
	questions QuestionStore
	quizzes   QuizStore
	validate  *validator.Validate
}

func NewQuestionService(questions QuestionStore, quizzes QuizStore) *QuestionService {
	return &QuestionService{
		questions: questions,
		quizzes:   quizzes,
		validate:  validator.New(),
	}
}

func (s *QuestionService) GetAllQuestions(ctx context.Context) ([]models.Question, error) {
	return s.questions.FindAll(ctx)
}

func (s *QuestionService) GetQuestionByID(ctx context.Context, questionID primitive.ObjectID) (*models.Question, error) {
	return s.questions.FindByID(ctx, questionID)
}

// UpdateQuestion applies a partial update, author-only. The correct-answer
// index is checked against the resulting options, so shrinking options without
// adjusting the index is rejected.
func (s *QuestionService) UpdateQuestion(ctx context.Context, questionID, requesterID primitive.ObjectID, update models.QuestionUpdate) (*models.Question, error) {
	question, err := s.questions.FindByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question.AuthorID != requesterID {
		return nil, models.ErrForbidden
	}

	options := question.Options
	if update.Options != nil {
		if len(update.Options) < 2 {
			return nil, fmt.Errorf("%w: options must have at least 2 entries", models.ErrInvalidInput)
		}
		options = update.Options
	}
	index := question.CorrectAnswerIndex
	if update.CorrectAnswerIndex != nil {
		index = *update.CorrectAnswerIndex
	}
	if index < 0 || index >= len(options) {
		return nil, fmt.Errorf("%w: correctAnswerIndex must be a valid index of options", models.ErrInvalidInput)
	}

	if update.Text != nil {
		text := strings.TrimSpace(*update.Text)
		if err := s.validate.Var(text, "required,min=5,max=500"); err != nil {
			return nil, fmt.Errorf("%w: text must be 5-500 characters", models.ErrInvalidInput)
		}
		question.Text = text
	}
	if update.Keywords != nil {
		keywords := make([]string, 0, len(update.Keywords))
		for _, k := range update.Keywords {
			keywords = append(keywords, strings.ToLower(strings.TrimSpace(k)))
		}
		question.Keywords = keywords
	}
	question.Options = options
	question.CorrectAnswerIndex = index
	question.Updated_at = time.Now().UTC()

	if err := s.questions.Update(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// DeleteQuestion removes the question first, then pulls its id out of every
// quiz that lists it. The question is the deletion root here, the reverse of
// the quiz-cascade ordering.
func (s *QuestionService) DeleteQuestion(ctx context.Context, questionID, requesterID primitive.ObjectID) (*models.Question, error) {
	question, err := s.questions.FindByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question.AuthorID != requesterID {
		return nil, models.ErrForbidden
	}

	if err := s.questions.Delete(ctx, questionID); err != nil {
		return nil, err
	}
	if err := s.quizzes.PullQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	return question, nil
}
