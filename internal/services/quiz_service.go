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

// QuizService owns every mutation of the Quiz<->Question aggregate. It is the
// only component allowed to touch the cross-reference fields (Quiz.Questions,
// Question.QuizID), which keeps the bidirectional invariant in one place.
type QuizService struct {
	quizzes   QuizStore
	questions QuestionStore
	validate  *validator.Validate
}

func NewQuizService(quizzes QuizStore, questions QuestionStore) *QuizService {
	return &QuizService{
		quizzes:   quizzes,
		questions: questions,
		validate:  validator.New(),
	}
}

func (s *QuizService) GetAllQuizzes(ctx context.Context) ([]models.PopulatedQuiz, error) {
	quizzes, err := s.quizzes.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	populated := make([]models.PopulatedQuiz, 0, len(quizzes))
	for i := range quizzes {
		p, err := s.populate(ctx, &quizzes[i])
		if err != nil {
			return nil, err
		}
		populated = append(populated, *p)
	}
	return populated, nil
}

// CreateQuiz creates a quiz with an empty question list. No question side effects.
func (s *QuizService) CreateQuiz(ctx context.Context, createdBy primitive.ObjectID, input models.QuizInput) (*models.Quiz, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	now := time.Now().UTC()
	quiz := &models.Quiz{
		ID:          primitive.NewObjectID(),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		CreatedBy:   createdBy,
		Questions:   make([]primitive.ObjectID, 0),
		Created_at:  now,
		Updated_at:  now,
	}
	if err := s.quizzes.Insert(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) GetQuizByID(ctx context.Context, quizID primitive.ObjectID) (*models.PopulatedQuiz, error) {
	quiz, err := s.quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, quiz)
}

// UpdateQuiz patches title/description. CreatedBy and the question list are
// not reachable through this path.
func (s *QuizService) UpdateQuiz(ctx context.Context, quizID primitive.ObjectID, update models.QuizUpdate) (*models.Quiz, error) {
	if update.Title != nil {
		if err := s.validate.Var(*update.Title, "required,min=3,max=200"); err != nil {
			return nil, fmt.Errorf("%w: title must be 3-200 characters", models.ErrInvalidInput)
		}
	}
	if update.Description != nil {
		if err := s.validate.Var(*update.Description, "max=1000"); err != nil {
			return nil, fmt.Errorf("%w: description must be at most 1000 characters", models.ErrInvalidInput)
		}
	}
	return s.quizzes.UpdateMeta(ctx, quizID, update.Title, update.Description)
}

// DeleteQuiz cascades: every referenced question is deleted first, then the
// quiz itself. A crash between the two steps never leaves a live quiz pointing
// at deleted questions.
func (s *QuizService) DeleteQuiz(ctx context.Context, quizID primitive.ObjectID) (*models.Quiz, error) {
	quiz, err := s.quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	if len(quiz.Questions) > 0 {
		if _, err := s.questions.DeleteByIDs(ctx, quiz.Questions); err != nil {
			return nil, err
		}
	}
	if err := s.quizzes.Delete(ctx, quizID); err != nil {
		return nil, err
	}
	return quiz, nil
}

// AddQuestionToQuiz creates the question first and links it to the quiz after.
// A failure between the two steps can orphan a question, which is reclaimable;
// the quiz never references a question that was not durably stored.
func (s *QuizService) AddQuestionToQuiz(ctx context.Context, quizID, authorID primitive.ObjectID, input models.QuestionInput) (*models.Question, error) {
	if _, err := s.quizzes.FindByID(ctx, quizID); err != nil {
		return nil, err
	}

	question, err := s.buildQuestion(input, quizID, authorID)
	if err != nil {
		return nil, err
	}
	if err := s.questions.Insert(ctx, &question); err != nil {
		return nil, err
	}
	if err := s.quizzes.PushQuestions(ctx, quizID, []primitive.ObjectID{question.ID}); err != nil {
		return nil, err
	}
	return &question, nil
}

// AddManyQuestionsToQuiz validates the whole batch before any write, then bulk
// inserts and appends the ids in input order with a single update. A store
// failure mid-insert is not rolled back; callers must treat a failed bulk add
// as possibly having side effects.
func (s *QuizService) AddManyQuestionsToQuiz(ctx context.Context, quizID, authorID primitive.ObjectID, inputs []models.QuestionInput) (int, error) {
	if _, err := s.quizzes.FindByID(ctx, quizID); err != nil {
		return 0, err
	}
	if len(inputs) == 0 {
		return 0, fmt.Errorf("%w: request body must be a non-empty array of questions", models.ErrInvalidInput)
	}

	questions := make([]models.Question, 0, len(inputs))
	ids := make([]primitive.ObjectID, 0, len(inputs))
	for i, input := range inputs {
		question, err := s.buildQuestion(input, quizID, authorID)
		if err != nil {
			return 0, fmt.Errorf("question %d: %w", i, err)
		}
		questions = append(questions, question)
		ids = append(ids, question.ID)
	}

	if err := s.questions.InsertMany(ctx, questions); err != nil {
		return 0, err
	}
	if err := s.quizzes.PushQuestions(ctx, quizID, ids); err != nil {
		return 0, err
	}
	return len(questions), nil
}

// FilterQuestionsByKeyword returns the quiz with its question list replaced by
// the subset tagged with the keyword. Read-only.
func (s *QuizService) FilterQuestionsByKeyword(ctx context.Context, quizID primitive.ObjectID, keyword string) (*models.PopulatedQuiz, error) {
	quiz, err := s.quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	matches, err := s.questions.FindByIDsWithKeyword(ctx, quiz.Questions, strings.ToLower(strings.TrimSpace(keyword)))
	if err != nil {
		return nil, err
	}
	return populatedFrom(quiz, orderByQuiz(quiz.Questions, matches)), nil
}

// GetQuizForTaking returns the redacted projection served to quiz takers. The
// answer key never appears in this view.
func (s *QuizService) GetQuizForTaking(ctx context.Context, quizID primitive.ObjectID) (*models.TakeQuiz, error) {
	populated, err := s.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	take := &models.TakeQuiz{
		ID:          populated.ID,
		Title:       populated.Title,
		Description: populated.Description,
		Questions:   make([]models.TakeQuestion, 0, len(populated.Questions)),
	}
	for _, q := range populated.Questions {
		take.Questions = append(take.Questions, models.TakeQuestion{
			ID:       q.ID,
			Text:     q.Text,
			Options:  q.Options,
			Keywords: q.Keywords,
		})
	}
	return take, nil
}

func (s *QuizService) buildQuestion(input models.QuestionInput, quizID, authorID primitive.ObjectID) (models.Question, error) {
	if err := s.validate.Struct(input); err != nil {
		return models.Question{}, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	if input.CorrectAnswerIndex < 0 || input.CorrectAnswerIndex >= len(input.Options) {
		return models.Question{}, fmt.Errorf("%w: correctAnswerIndex must be a valid index of options", models.ErrInvalidInput)
	}

	keywords := make([]string, 0, len(input.Keywords))
	for _, k := range input.Keywords {
		keywords = append(keywords, strings.ToLower(strings.TrimSpace(k)))
	}

	now := time.Now().UTC()
	return models.Question{
		ID:                 primitive.NewObjectID(),
		Text:               strings.TrimSpace(input.Text),
		Options:            input.Options,
		CorrectAnswerIndex: input.CorrectAnswerIndex,
		Keywords:           keywords,
		QuizID:             quizID,
		AuthorID:           authorID,
		Created_at:         now,
		Updated_at:         now,
	}, nil
}

func (s *QuizService) populate(ctx context.Context, quiz *models.Quiz) (*models.PopulatedQuiz, error) {
	questions, err := s.questions.FindByIDs(ctx, quiz.Questions)
	if err != nil {
		return nil, err
	}
	return populatedFrom(quiz, orderByQuiz(quiz.Questions, questions)), nil
}

// orderByQuiz reorders fetched questions to the quiz's insertion order. Ids
// with no surviving document are skipped.
func orderByQuiz(ids []primitive.ObjectID, questions []models.Question) []models.Question {
	byID := make(map[primitive.ObjectID]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	ordered := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered
}

func populatedFrom(quiz *models.Quiz, questions []models.Question) *models.PopulatedQuiz {
	return &models.PopulatedQuiz{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		CreatedBy:   quiz.CreatedBy,
		Questions:   questions,
		Created_at:  quiz.Created_at,
		Updated_at:  quiz.Updated_at,
	}
}
