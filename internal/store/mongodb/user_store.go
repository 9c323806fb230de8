package mongodb

import (
	"context"
	"time"

	"quizify/database"
	"quizify/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(client *mongo.Client) *UserStore {
	return &UserStore{coll: database.OpenCollection(client, "user")}
}

func (s *UserStore) Insert(ctx context.Context, user *models.User) error {
	_, err := s.coll.InsertOne(ctx, user)
	return err
}

func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *UserStore) CountByUsername(ctx context.Context, username string) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{"username": username})
}

func (s *UserStore) CountByEmail(ctx context.Context, email string) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{"email": email})
}

func (s *UserStore) Find(ctx context.Context, skip, limit int64) ([]models.User, int64, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit)
	cur, err := s.coll.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, 0, err
	}

	total, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (s *UserStore) UpdateAvatar(ctx context.Context, id primitive.ObjectID, avatarURL, avatarID string) error {
	update := bson.M{"$set": bson.M{
		"avatarUrl":  avatarURL,
		"avatarId":   avatarID,
		"updated_at": time.Now().UTC(),
	}}
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
