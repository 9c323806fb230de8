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

type QuizStore struct {
	coll *mongo.Collection
}

func NewQuizStore(client *mongo.Client) *QuizStore {
	return &QuizStore{coll: database.OpenCollection(client, "quiz")}
}

func (s *QuizStore) Insert(ctx context.Context, quiz *models.Quiz) error {
	_, err := s.coll.InsertOne(ctx, quiz)
	return err
}

func (s *QuizStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&quiz)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (s *QuizStore) FindAll(ctx context.Context) ([]models.Quiz, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	quizzes := []models.Quiz{}
	if err := cur.All(ctx, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (s *QuizStore) UpdateMeta(ctx context.Context, id primitive.ObjectID, title, description *string) (*models.Quiz, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if title != nil {
		set["title"] = *title
	}
	if description != nil {
		set["description"] = *description
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var quiz models.Quiz
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&quiz)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// PushQuestions appends ids to the question list in one atomic update, so two
// concurrent appenders cannot lose each other's write.
func (s *QuizStore) PushQuestions(ctx context.Context, id primitive.ObjectID, questionIDs []primitive.ObjectID) error {
	update := bson.M{
		"$push": bson.M{"questions": bson.M{"$each": questionIDs}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrQuizNotFound
	}
	return nil
}

func (s *QuizStore) PullQuestion(ctx context.Context, questionID primitive.ObjectID) error {
	_, err := s.coll.UpdateMany(
		ctx,
		bson.M{"questions": questionID},
		bson.M{"$pull": bson.M{"questions": questionID}},
	)
	return err
}

func (s *QuizStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return models.ErrQuizNotFound
	}
	return nil
}
