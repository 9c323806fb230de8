package mongodb

import (
	"context"

	"quizify/database"
	"quizify/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AttemptStore struct {
	coll *mongo.Collection
}

func NewAttemptStore(client *mongo.Client) *AttemptStore {
	return &AttemptStore{coll: database.OpenCollection(client, "attempt")}
}

func (s *AttemptStore) Insert(ctx context.Context, attempt *models.Attempt) error {
	_, err := s.coll.InsertOne(ctx, attempt)
	return err
}

func (s *AttemptStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Attempt, error) {
	var attempt models.Attempt
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&attempt)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrAttemptNotFound
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (s *AttemptStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Attempt, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{"user": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	attempts := []models.Attempt{}
	if err := cur.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}
