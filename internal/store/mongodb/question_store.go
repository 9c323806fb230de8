package mongodb

import (
	"context"
	"time"

	"quizify/database"
	"quizify/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type QuestionStore struct {
	coll *mongo.Collection
}

func NewQuestionStore(client *mongo.Client) *QuestionStore {
	return &QuestionStore{coll: database.OpenCollection(client, "question")}
}

func (s *QuestionStore) Insert(ctx context.Context, question *models.Question) error {
	_, err := s.coll.InsertOne(ctx, question)
	return err
}

// InsertMany is an ordered bulk insert; a mid-batch failure leaves earlier
// documents in place.
func (s *QuestionStore) InsertMany(ctx context.Context, questions []models.Question) error {
	docs := make([]interface{}, 0, len(questions))
	for i := range questions {
		docs = append(docs, questions[i])
	}
	_, err := s.coll.InsertMany(ctx, docs)
	return err
}

func (s *QuestionStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Question, error) {
	var question models.Question
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *QuestionStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Question, error) {
	if len(ids) == 0 {
		return []models.Question{}, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (s *QuestionStore) FindByIDsWithKeyword(ctx context.Context, ids []primitive.ObjectID, keyword string) ([]models.Question, error) {
	if len(ids) == 0 {
		return []models.Question{}, nil
	}
	// Equality on an array field matches any element, so this is the exact-tag filter.
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}, "keywords": keyword})
}

func (s *QuestionStore) FindAll(ctx context.Context) ([]models.Question, error) {
	return s.find(ctx, bson.M{})
}

func (s *QuestionStore) Update(ctx context.Context, question *models.Question) error {
	update := bson.M{"$set": bson.M{
		"text":               question.Text,
		"options":            question.Options,
		"correctAnswerIndex": question.CorrectAnswerIndex,
		"keywords":           question.Keywords,
		"updated_at":         time.Now().UTC(),
	}}
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": question.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrQuestionNotFound
	}
	return nil
}

func (s *QuestionStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return models.ErrQuestionNotFound
	}
	return nil
}

func (s *QuestionStore) DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := s.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (s *QuestionStore) find(ctx context.Context, filter bson.M) ([]models.Question, error) {
	cur, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	questions := []models.Question{}
	if err := cur.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}
