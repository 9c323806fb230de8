package mongodb

import (
	"context"

	"quizify/database"
	"quizify/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SessionStore struct {
	coll *mongo.Collection
}

func NewSessionStore(client *mongo.Client) *SessionStore {
	return &SessionStore{coll: database.OpenCollection(client, "session")}
}

// EnsureIndexes creates the TTL index that reclaims expired sessions and the
// uniqueness index on the refresh token. Call once at startup.
func (s *SessionStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expiredAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
		{
			Keys:    bson.D{{Key: "refreshToken", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

func (s *SessionStore) Insert(ctx context.Context, session *models.Session) error {
	_, err := s.coll.InsertOne(ctx, session)
	return err
}

func (s *SessionStore) FindByToken(ctx context.Context, refreshToken string) (*models.Session, error) {
	var session models.Session
	err := s.coll.FindOne(ctx, bson.M{"refreshToken": refreshToken}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SessionStore) DeleteByToken(ctx context.Context, refreshToken string) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"refreshToken": refreshToken})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return models.ErrSessionNotFound
	}
	return nil
}
