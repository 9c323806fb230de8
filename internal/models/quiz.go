package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Quiz struct {
	ID          primitive.ObjectID   `bson:"_id" json:"_id"`
	Title       string               `bson:"title" json:"title" validate:"required,min=3,max=200"`
	Description string               `bson:"description" json:"description" validate:"max=1000"`
	CreatedBy   primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	Questions   []primitive.ObjectID `bson:"questions" json:"questions"`
	Created_at  time.Time            `bson:"created_at" json:"created_at"`
	Updated_at  time.Time            `bson:"updated_at" json:"updated_at"`
}

// QuizInput is the payload for creating a quiz. CreatedBy comes from the
// authenticated caller, never from the body.
type QuizInput struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"max=1000"`
}

// QuizUpdate is a partial update of title/description only.
type QuizUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// PopulatedQuiz is a Quiz with its question list resolved to full documents.
// This is the authoring view; it includes answer keys.
type PopulatedQuiz struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	CreatedBy   primitive.ObjectID `json:"createdBy"`
	Questions   []Question         `json:"questions"`
	Created_at  time.Time          `json:"created_at"`
	Updated_at  time.Time          `json:"updated_at"`
}

// TakeQuiz is the redacted projection served to quiz takers.
type TakeQuiz struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Questions   []TakeQuestion     `json:"questions"`
}
