package services

import (
	"context"

	"quizify/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store interfaces are defined here, on the consumer side. The mongodb package
// implements them for production; memstore implements them for tests.

type QuizStore interface {
	Insert(ctx context.Context, quiz *models.Quiz) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Quiz, error)
	FindAll(ctx context.Context) ([]models.Quiz, error)
	// UpdateMeta patches title/description (nil means keep) and returns the updated quiz.
	UpdateMeta(ctx context.Context, id primitive.ObjectID, title, description *string) (*models.Quiz, error)
	// PushQuestions appends question ids to the quiz's question list as a single
	// atomic update, avoiding the read-modify-write lost-update race.
	PushQuestions(ctx context.Context, id primitive.ObjectID, questionIDs []primitive.ObjectID) error
	// PullQuestion removes the question id from every quiz referencing it.
	PullQuestion(ctx context.Context, questionID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type QuestionStore interface {
	Insert(ctx context.Context, question *models.Question) error
	InsertMany(ctx context.Context, questions []models.Question) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Question, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Question, error)
	// FindByIDsWithKeyword matches questions whose keyword set contains the
	// exact (already lowercased) keyword.
	FindByIDsWithKeyword(ctx context.Context, ids []primitive.ObjectID, keyword string) ([]models.Question, error)
	FindAll(ctx context.Context) ([]models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}

type AttemptStore interface {
	Insert(ctx context.Context, attempt *models.Attempt) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Attempt, error)
	// FindByUser returns the user's attempts newest-first.
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Attempt, error)
}

type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	CountByUsername(ctx context.Context, username string) (int64, error)
	CountByEmail(ctx context.Context, email string) (int64, error)
	Find(ctx context.Context, skip, limit int64) ([]models.User, int64, error)
	UpdateAvatar(ctx context.Context, id primitive.ObjectID, avatarURL, avatarID string) error
}

type SessionStore interface {
	Insert(ctx context.Context, session *models.Session) error
	FindByToken(ctx context.Context, refreshToken string) (*models.Session, error)
	DeleteByToken(ctx context.Context, refreshToken string) error
}
