// Package memstore provides in-memory store implementations with the same
// semantics as the mongodb package. They back the service tests and can serve
// as a demo store.
package memstore

import (
	"context"
	"sort"
	"sync"

	"quizify/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QuizStore struct {
	mu      sync.RWMutex
	quizzes map[primitive.ObjectID]models.Quiz
}

func NewQuizStore() *QuizStore {
	return &QuizStore{quizzes: make(map[primitive.ObjectID]models.Quiz)}
}

func (s *QuizStore) Insert(_ context.Context, quiz *models.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[quiz.ID] = cloneQuiz(*quiz)
	return nil
}

func (s *QuizStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quiz, ok := s.quizzes[id]
	if !ok {
		return nil, models.ErrQuizNotFound
	}
	quiz = cloneQuiz(quiz)
	return &quiz, nil
}

func (s *QuizStore) FindAll(_ context.Context) ([]models.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quizzes := make([]models.Quiz, 0, len(s.quizzes))
	for _, quiz := range s.quizzes {
		quizzes = append(quizzes, cloneQuiz(quiz))
	}
	sort.Slice(quizzes, func(i, j int) bool {
		return quizzes[i].Created_at.Before(quizzes[j].Created_at)
	})
	return quizzes, nil
}

func (s *QuizStore) UpdateMeta(_ context.Context, id primitive.ObjectID, title, description *string) (*models.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	quiz, ok := s.quizzes[id]
	if !ok {
		return nil, models.ErrQuizNotFound
	}
	if title != nil {
		quiz.Title = *title
	}
	if description != nil {
		quiz.Description = *description
	}
	s.quizzes[id] = quiz
	quiz = cloneQuiz(quiz)
	return &quiz, nil
}

func (s *QuizStore) PushQuestions(_ context.Context, id primitive.ObjectID, questionIDs []primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	quiz, ok := s.quizzes[id]
	if !ok {
		return models.ErrQuizNotFound
	}
	quiz.Questions = append(quiz.Questions, questionIDs...)
	s.quizzes[id] = quiz
	return nil
}

func (s *QuizStore) PullQuestion(_ context.Context, questionID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, quiz := range s.quizzes {
		kept := quiz.Questions[:0:0]
		for _, qid := range quiz.Questions {
			if qid != questionID {
				kept = append(kept, qid)
			}
		}
		quiz.Questions = kept
		s.quizzes[id] = quiz
	}
	return nil
}

func (s *QuizStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quizzes[id]; !ok {
		return models.ErrQuizNotFound
	}
	delete(s.quizzes, id)
	return nil
}

func cloneQuiz(quiz models.Quiz) models.Quiz {
	quiz.Questions = append([]primitive.ObjectID(nil), quiz.Questions...)
	return quiz
}

type QuestionStore struct {
	mu        sync.RWMutex
	questions map[primitive.ObjectID]models.Question
	order     []primitive.ObjectID
}

func NewQuestionStore() *QuestionStore {
	return &QuestionStore{questions: make(map[primitive.ObjectID]models.Question)}
}

func (s *QuestionStore) Insert(_ context.Context, question *models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[question.ID] = *question
	s.order = append(s.order, question.ID)
	return nil
}

func (s *QuestionStore) InsertMany(_ context.Context, questions []models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, question := range questions {
		s.questions[question.ID] = question
		s.order = append(s.order, question.ID)
	}
	return nil
}

func (s *QuestionStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	question, ok := s.questions[id]
	if !ok {
		return nil, models.ErrQuestionNotFound
	}
	return &question, nil
}

func (s *QuestionStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	found := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		if question, ok := s.questions[id]; ok {
			found = append(found, question)
		}
	}
	return found, nil
}

func (s *QuestionStore) FindByIDsWithKeyword(_ context.Context, ids []primitive.ObjectID, keyword string) ([]models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	found := []models.Question{}
	for _, id := range ids {
		question, ok := s.questions[id]
		if !ok {
			continue
		}
		for _, k := range question.Keywords {
			if k == keyword {
				found = append(found, question)
				break
			}
		}
	}
	return found, nil
}

func (s *QuestionStore) FindAll(_ context.Context) ([]models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	questions := make([]models.Question, 0, len(s.order))
	for _, id := range s.order {
		if question, ok := s.questions[id]; ok {
			questions = append(questions, question)
		}
	}
	return questions, nil
}

func (s *QuestionStore) Update(_ context.Context, question *models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[question.ID]; !ok {
		return models.ErrQuestionNotFound
	}
	s.questions[question.ID] = *question
	return nil
}

func (s *QuestionStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		return models.ErrQuestionNotFound
	}
	delete(s.questions, id)
	return nil
}

func (s *QuestionStore) DeleteByIDs(_ context.Context, ids []primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := int64(0)
	for _, id := range ids {
		if _, ok := s.questions[id]; ok {
			delete(s.questions, id)
			deleted++
		}
	}
	return deleted, nil
}

type AttemptStore struct {
	mu       sync.RWMutex
	attempts map[primitive.ObjectID]models.Attempt
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{attempts: make(map[primitive.ObjectID]models.Attempt)}
}

func (s *AttemptStore) Insert(_ context.Context, attempt *models.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[attempt.ID] = *attempt
	return nil
}

func (s *AttemptStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attempt, ok := s.attempts[id]
	if !ok {
		return nil, models.ErrAttemptNotFound
	}
	return &attempt, nil
}

func (s *AttemptStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attempts := []models.Attempt{}
	for _, attempt := range s.attempts {
		if attempt.User == userID {
			attempts = append(attempts, attempt)
		}
	}
	sort.Slice(attempts, func(i, j int) bool {
		return attempts[i].Created_at.After(attempts[j].Created_at)
	})
	return attempts, nil
}
