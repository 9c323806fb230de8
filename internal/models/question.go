package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Question struct {
	ID                 primitive.ObjectID `bson:"_id" json:"_id"`
	Text               string             `bson:"text" json:"text" validate:"required,min=5,max=500"`
	Options            []string           `bson:"options" json:"options" validate:"required,min=2"`
	CorrectAnswerIndex int                `bson:"correctAnswerIndex" json:"correctAnswerIndex" validate:"gte=0"`
	Keywords           []string           `bson:"keywords" json:"keywords"`
	QuizID             primitive.ObjectID `bson:"quizId" json:"quizId"`
	AuthorID           primitive.ObjectID `bson:"authorId" json:"authorId"`
	Created_at         time.Time          `bson:"created_at" json:"created_at"`
	Updated_at         time.Time          `bson:"updated_at" json:"updated_at"`
}

// QuestionInput is the payload for creating a question inside a quiz.
type QuestionInput struct {
	Text               string   `json:"text" validate:"required,min=5,max=500"`
	Options            []string `json:"options" validate:"required,min=2"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex" validate:"gte=0"`
	Keywords           []string `json:"keywords"`
}

// QuestionUpdate is a partial update; nil fields are left untouched.
type QuestionUpdate struct {
	Text               *string  `json:"text"`
	Options            []string `json:"options"`
	CorrectAnswerIndex *int     `json:"correctAnswerIndex"`
	Keywords           []string `json:"keywords"`
}

// TakeQuestion is the quiz-taking projection of a Question. It deliberately has
// no correctAnswerIndex field, so the answer key can never be serialized from it.
type TakeQuestion struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Text     string             `json:"text"`
	Options  []string           `json:"options"`
	Keywords []string           `json:"keywords"`
}
