package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"quizify/internal/models"
	"quizify/internal/store/memstore"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type attemptFixture struct {
	attempts  *AttemptService
	quizzes   *QuizService
	questions *memstore.QuestionStore
	quiz      *models.Quiz
	ids       []primitive.ObjectID
}

// newAttemptFixture builds a quiz whose i-th question has correct answer index i.
func newAttemptFixture(t *testing.T, questionCount int) *attemptFixture {
	t.Helper()
	quizStore := memstore.NewQuizStore()
	questionStore := memstore.NewQuestionStore()
	attemptStore := memstore.NewAttemptStore()

	quizService := NewQuizService(quizStore, questionStore)
	quiz := mustCreateQuiz(t, quizService)

	texts := []string{
		"What is the capital of France?",
		"What is the capital of England?",
		"What is the capital of Germany?",
		"What is the capital of Spain?",
		"Which city hosts the Eiffel Tower?",
	}
	ids := make([]primitive.ObjectID, 0, questionCount)
	for i := 0; i < questionCount; i++ {
		q, err := quizService.AddQuestionToQuiz(context.Background(), quiz.ID, quiz.CreatedBy, questionInput(texts[i], i%4))
		if err != nil {
			t.Fatalf("AddQuestionToQuiz: %v", err)
		}
		ids = append(ids, q.ID)
	}

	return &attemptFixture{
		attempts:  NewAttemptService(attemptStore, quizStore, questionStore),
		quizzes:   quizService,
		questions: questionStore,
		quiz:      quiz,
		ids:       ids,
	}
}

func TestCreateAttemptScoring(t *testing.T) {
	f := newAttemptFixture(t, 4)
	userID := primitive.NewObjectID()

	// Two correct, one wrong, one unanswered: 2/4 = 50.
	summary, err := f.attempts.CreateAttempt(context.Background(), userID, f.quiz.ID, []models.AnswerSubmission{
		{QuestionID: f.ids[0], SelectedIndex: 0},
		{QuestionID: f.ids[1], SelectedIndex: 1},
		{QuestionID: f.ids[2], SelectedIndex: 9},
	})
	if err != nil {
		t.Fatalf("CreateAttempt: %v", err)
	}
	if summary.CorrectCount != 2 {
		t.Fatalf("correctCount = %d, want 2", summary.CorrectCount)
	}
	if summary.TotalQuestions != 4 {
		t.Fatalf("totalQuestions = %d, want 4", summary.TotalQuestions)
	}
	if summary.Score != 50 {
		t.Fatalf("score = %d, want 50", summary.Score)
	}
}

func TestCreateAttemptScoreRounds(t *testing.T) {
	f := newAttemptFixture(t, 3)
	userID := primitive.NewObjectID()

	// 1/3 rounds to 33, 2/3 rounds to 67.
	summary, err := f.attempts.CreateAttempt(context.Background(), userID, f.quiz.ID, []models.AnswerSubmission{
		{QuestionID: f.ids[0], SelectedIndex: 0},
	})
	if err != nil {
		t.Fatalf("CreateAttempt: %v", err)
	}
	if summary.Score != 33 {
		t.Fatalf("score = %d, want 33", summary.Score)
	}

	summary, err = f.attempts.CreateAttempt(context.Background(), userID, f.quiz.ID, []models.AnswerSubmission{
		{QuestionID: f.ids[0], SelectedIndex: 0},
		{QuestionID: f.ids[1], SelectedIndex: 1},
	})
	if err != nil {
		t.Fatalf("CreateAttempt: %v", err)
	}
	if summary.Score != 67 {
		t.Fatalf("score = %d, want 67", summary.Score)
	}
}

func TestCreateAttemptEmptyQuiz(t *testing.T) {
	f := newAttemptFixture(t, 0)

	summary, err := f.attempts.CreateAttempt(context.Background(), primitive.NewObjectID(), f.quiz.ID, nil)
	if err != nil {
		t.Fatalf("CreateAttempt: %v", err)
	}
	if summary.Score != 0 || summary.CorrectCount != 0 || summary.TotalQuestions != 0 {
		t.Fatalf("empty quiz attempt = %+v, want all zeros", summary)
	}
}

func TestCreateAttemptForeignQuestionFails(t *testing.T) {
	f := newAttemptFixture(t, 2)

	_, err := f.attempts.CreateAttempt(context.Background(), primitive.NewObjectID(), f.quiz.ID, []models.AnswerSubmission{
		{QuestionID: f.ids[0], SelectedIndex: 0},
		{QuestionID: primitive.NewObjectID(), SelectedIndex: 1},
	})
	if !errors.Is(err, models.ErrQuestionNotInQuiz) {
		t.Fatalf("err = %v, want ErrQuestionNotInQuiz", err)
	}
}

func TestCreateAttemptQuizNotFound(t *testing.T) {
	f := newAttemptFixture(t, 1)

	_, err := f.attempts.CreateAttempt(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), nil)
	if !errors.Is(err, models.ErrQuizNotFound) {
		t.Fatalf("err = %v, want ErrQuizNotFound", err)
	}
}

func TestAttemptScoreIsImmutable(t *testing.T) {
	f := newAttemptFixture(t, 2)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	summary, err := f.attempts.CreateAttempt(ctx, userID, f.quiz.ID, []models.AnswerSubmission{
		{QuestionID: f.ids[0], SelectedIndex: 0},
		{QuestionID: f.ids[1], SelectedIndex: 1},
	})
	if err != nil {
		t.Fatalf("CreateAttempt: %v", err)
	}
	if summary.Score != 100 {
		t.Fatalf("score = %d, want 100", summary.Score)
	}

	// Flip the answer key after the fact; the stored attempt must not move.
	question, _ := f.questions.FindByID(ctx, f.ids[0])
	question.CorrectAnswerIndex = 3
	if err := f.questions.Update(ctx, question); err != nil {
		t.Fatalf("Update: %v", err)
	}

	attempt, err := f.attempts.GetAttemptByID(ctx, summary.AttemptID, userID, false)
	if err != nil {
		t.Fatalf("GetAttemptByID: %v", err)
	}
	if attempt.Score != 100 || attempt.CorrectCount != 2 {
		t.Fatalf("attempt rescored after question edit: score=%d correct=%d", attempt.Score, attempt.CorrectCount)
	}
}

func TestGetAttemptByIDAuthorization(t *testing.T) {
	f := newAttemptFixture(t, 1)
	ctx := context.Background()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	admin := primitive.NewObjectID()

	summary, err := f.attempts.CreateAttempt(ctx, owner, f.quiz.ID, []models.AnswerSubmission{
		{QuestionID: f.ids[0], SelectedIndex: 0},
	})
	if err != nil {
		t.Fatalf("CreateAttempt: %v", err)
	}

	if _, err := f.attempts.GetAttemptByID(ctx, summary.AttemptID, owner, false); err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if _, err := f.attempts.GetAttemptByID(ctx, summary.AttemptID, admin, true); err != nil {
		t.Fatalf("admin read: %v", err)
	}
	if _, err := f.attempts.GetAttemptByID(ctx, summary.AttemptID, stranger, false); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("stranger read err = %v, want ErrForbidden", err)
	}

	// A missing attempt is not-found for everyone, never forbidden.
	if _, err := f.attempts.GetAttemptByID(ctx, primitive.NewObjectID(), stranger, false); !errors.Is(err, models.ErrAttemptNotFound) {
		t.Fatalf("missing attempt err = %v, want ErrAttemptNotFound", err)
	}
}

func TestGetAttemptByIDResolvesAnswerDetails(t *testing.T) {
	f := newAttemptFixture(t, 2)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	summary, err := f.attempts.CreateAttempt(ctx, userID, f.quiz.ID, []models.AnswerSubmission{
		{QuestionID: f.ids[0], SelectedIndex: 2},
		{QuestionID: f.ids[1], SelectedIndex: 1},
	})
	if err != nil {
		t.Fatalf("CreateAttempt: %v", err)
	}

	attempt, err := f.attempts.GetAttemptByID(ctx, summary.AttemptID, userID, false)
	if err != nil {
		t.Fatalf("GetAttemptByID: %v", err)
	}
	if attempt.Quiz.Title != f.quiz.Title {
		t.Fatalf("quiz summary title = %q, want %q", attempt.Quiz.Title, f.quiz.Title)
	}
	if len(attempt.AnswerDetails) != 2 {
		t.Fatalf("answer details = %d, want 2", len(attempt.AnswerDetails))
	}
	if attempt.AnswerDetails[0].Question.ID != f.ids[0] || attempt.AnswerDetails[0].SelectedIndex != 2 {
		t.Fatalf("first detail = %+v", attempt.AnswerDetails[0])
	}
}

func TestAttemptOutlivesQuiz(t *testing.T) {
	f := newAttemptFixture(t, 1)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	summary, err := f.attempts.CreateAttempt(ctx, userID, f.quiz.ID, []models.AnswerSubmission{
		{QuestionID: f.ids[0], SelectedIndex: 0},
	})
	if err != nil {
		t.Fatalf("CreateAttempt: %v", err)
	}

	if _, err := f.quizzes.DeleteQuiz(ctx, f.quiz.ID); err != nil {
		t.Fatalf("DeleteQuiz: %v", err)
	}

	attempt, err := f.attempts.GetAttemptByID(ctx, summary.AttemptID, userID, false)
	if err != nil {
		t.Fatalf("GetAttemptByID after quiz delete: %v", err)
	}
	if attempt.Quiz.ID != f.quiz.ID {
		t.Fatalf("quiz reference lost: %+v", attempt.Quiz)
	}
	if attempt.Quiz.Title != "" {
		t.Fatalf("deleted quiz still has a title: %q", attempt.Quiz.Title)
	}
	// The deleted question drops out of the detail view only.
	if len(attempt.AnswerDetails) != 0 {
		t.Fatalf("details resolved for deleted questions: %+v", attempt.AnswerDetails)
	}
	if len(attempt.Answers) != 1 {
		t.Fatalf("raw answers lost: %+v", attempt.Answers)
	}
}

func TestGetUserAttemptsNewestFirst(t *testing.T) {
	quizStore := memstore.NewQuizStore()
	questionStore := memstore.NewQuestionStore()
	attemptStore := memstore.NewAttemptStore()
	service := NewAttemptService(attemptStore, quizStore, questionStore)

	userID := primitive.NewObjectID()
	quizID := primitive.NewObjectID()
	base := time.Now().UTC()
	var ids []primitive.ObjectID
	for i := 0; i < 3; i++ {
		attempt := &models.Attempt{
			ID:         primitive.NewObjectID(),
			User:       userID,
			Quiz:       quizID,
			Created_at: base.Add(time.Duration(i) * time.Minute),
		}
		attemptStore.Insert(context.Background(), attempt)
		ids = append(ids, attempt.ID)
	}
	// Someone else's attempt must not show up.
	attemptStore.Insert(context.Background(), &models.Attempt{
		ID:         primitive.NewObjectID(),
		User:       primitive.NewObjectID(),
		Quiz:       quizID,
		Created_at: base.Add(time.Hour),
	})

	attempts, err := service.GetUserAttempts(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetUserAttempts: %v", err)
	}
	if len(attempts) != 3 {
		t.Fatalf("got %d attempts, want 3", len(attempts))
	}
	for i, want := range []primitive.ObjectID{ids[2], ids[1], ids[0]} {
		if attempts[i].ID != want {
			t.Fatalf("attempt %d = %s, want %s", i, attempts[i].ID.Hex(), want.Hex())
		}
	}
}
