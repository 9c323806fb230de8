package models

import "errors"

var (
	// ErrQuizNotFound indicates the quiz id did not resolve to a stored quiz.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates the question id did not resolve to a stored question.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrQuestionNotInQuiz is returned when a submitted answer references a question
	// outside the attempted quiz.
	ErrQuestionNotInQuiz = errors.New("question does not belong to quiz")
	// ErrAttemptNotFound indicates the attempt id did not resolve.
	ErrAttemptNotFound = errors.New("attempt not found")
	// ErrUserNotFound indicates the user lookup missed.
	ErrUserNotFound = errors.New("user not found")
	// ErrSessionNotFound indicates the refresh token has no live session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrForbidden is returned when the caller is authenticated but not allowed.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials covers both unknown-username and wrong-password so
	// sign-in failures do not reveal which one it was.
	ErrInvalidCredentials = errors.New("wrong username or password")
	// ErrInvalidInput marks malformed or out-of-range request data.
	ErrInvalidInput = errors.New("invalid input")
	// ErrAlreadyExists is returned on uniqueness violations (username, email).
	ErrAlreadyExists = errors.New("already exists")
)
