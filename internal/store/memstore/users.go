package memstore

import (
	"context"
	"sort"
	"sync"

	"quizify/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStore struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (s *UserStore) Insert(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return &user, nil
}

func (s *UserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Username != nil && *user.Username == username {
			user := user
			return &user, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (s *UserStore) CountByUsername(_ context.Context, username string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := int64(0)
	for _, user := range s.users {
		if user.Username != nil && *user.Username == username {
			count++
		}
	}
	return count, nil
}

func (s *UserStore) CountByEmail(_ context.Context, email string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := int64(0)
	for _, user := range s.users {
		if user.Email != nil && *user.Email == email {
			count++
		}
	}
	return count, nil
}

func (s *UserStore) Find(_ context.Context, skip, limit int64) ([]models.User, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		all = append(all, user)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Created_at.Before(all[j].Created_at)
	})

	total := int64(len(all))
	if skip >= total {
		return []models.User{}, total, nil
	}
	all = all[skip:]
	if limit > 0 && int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

func (s *UserStore) UpdateAvatar(_ context.Context, id primitive.ObjectID, avatarURL, avatarID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.ErrUserNotFound
	}
	user.AvatarURL = avatarURL
	user.AvatarID = avatarID
	s.users[id] = user
	return nil
}

type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]models.Session)}
}

func (s *SessionStore) Insert(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.RefreshToken] = *session
	return nil
}

func (s *SessionStore) FindByToken(_ context.Context, refreshToken string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[refreshToken]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	return &session, nil
}

func (s *SessionStore) DeleteByToken(_ context.Context, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[refreshToken]; !ok {
		return models.ErrSessionNotFound
	}
	delete(s.sessions, refreshToken)
	return nil
}
