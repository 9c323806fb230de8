package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttemptAnswer is one submitted answer as stored inside an attempt.
type AttemptAnswer struct {
	Question      primitive.ObjectID `bson:"question" json:"question"`
	SelectedIndex int                `bson:"selectedIndex" json:"selectedIndex"`
}

// Attempt is an immutable scored record of one submission. It is never updated
// or deleted after creation.
type Attempt struct {
	ID             primitive.ObjectID `bson:"_id" json:"_id"`
	User           primitive.ObjectID `bson:"user" json:"user"`
	Quiz           primitive.ObjectID `bson:"quiz" json:"quiz"`
	Answers        []AttemptAnswer    `bson:"answers" json:"answers"`
	Score          int                `bson:"score" json:"score"`
	TotalQuestions int                `bson:"totalQuestions" json:"totalQuestions"`
	CorrectCount   int                `bson:"correctCount" json:"correctCount"`
	Created_at     time.Time          `bson:"created_at" json:"created_at"`
}

// AnswerSubmission is one answer as it arrives from the client.
type AnswerSubmission struct {
	QuestionID    primitive.ObjectID `json:"questionId"`
	SelectedIndex int                `json:"selectedIndex"`
}

// AttemptSummary is the result returned right after scoring a submission.
type AttemptSummary struct {
	AttemptID      primitive.ObjectID `json:"attemptId"`
	Score          int                `json:"score"`
	CorrectCount   int                `json:"correctCount"`
	TotalQuestions int                `json:"totalQuestions"`
}

// QuizSummary is the shallow quiz reference resolved onto attempt reads.
type QuizSummary struct {
	ID          primitive.ObjectID `json:"_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
}

// AnswerDetail is an attempt answer with its question resolved.
type AnswerDetail struct {
	Question      Question `json:"question"`
	SelectedIndex int      `json:"selectedIndex"`
}

// PopulatedAttempt is an attempt with its quiz summary resolved. Answer detail
// is filled only on single-attempt reads.
type PopulatedAttempt struct {
	ID             primitive.ObjectID `json:"_id"`
	User           primitive.ObjectID `json:"user"`
	Quiz           QuizSummary        `json:"quiz"`
	Answers        []AttemptAnswer    `json:"answers,omitempty"`
	AnswerDetails  []AnswerDetail     `json:"answerDetails,omitempty"`
	Score          int                `json:"score"`
	TotalQuestions int                `json:"totalQuestions"`
	CorrectCount   int                `json:"correctCount"`
	Created_at     time.Time          `json:"created_at"`
}
