package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quizify/internal/models"
	"quizify/internal/utility"

	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// RefreshTokenTTL bounds how long a refresh token stays valid. The sessions
// collection carries a TTL index on expiredAt, so expired rows are reclaimed
// by the store itself.
const RefreshTokenTTL = 14 * 24 * time.Hour

type AuthService struct {
	users    UserStore
	sessions SessionStore
	validate *validator.Validate
}

func NewAuthService(users UserStore, sessions SessionStore) *AuthService {
	return &AuthService{users: users, sessions: sessions, validate: validator.New()}
}

func (s *AuthService) SignUp(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.validate.Var(username, "required,min=3,max=20"); err != nil {
		return nil, fmt.Errorf("%w: username must be 3-20 characters", models.ErrInvalidInput)
	}
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: email is not valid", models.ErrInvalidInput)
	}
	if len(password) < 6 || len(password) > 72 {
		return nil, fmt.Errorf("%w: password must be 6-72 characters", models.ErrInvalidInput)
	}

	if count, err := s.users.CountByUsername(ctx, username); err != nil {
		return nil, err
	} else if count > 0 {
		return nil, fmt.Errorf("username: %w", models.ErrAlreadyExists)
	}
	if count, err := s.users.CountByEmail(ctx, email); err != nil {
		return nil, err
	} else if count > 0 {
		return nil, fmt.Errorf("email: %w", models.ErrAlreadyExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return nil, err
	}
	hashed := string(hash)

	now := time.Now().UTC()
	user := &models.User{
		ID:             primitive.NewObjectID(),
		Username:       &username,
		Email:          &email,
		HashedPassword: &hashed,
		IsAdmin:        false,
		Created_at:     now,
		Updated_at:     now,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SignIn checks credentials, mints a short-lived access token and opens a
// refresh session backed by a random token.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*models.User, string, string, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, models.ErrUserNotFound) {
		return nil, "", "", models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(password)); err != nil {
		return nil, "", "", models.ErrInvalidCredentials
	}

	accessToken, err := utility.GenerateAccessToken(user)
	if err != nil {
		return nil, "", "", err
	}

	refreshToken := utility.NewRefreshToken()
	session := &models.Session{
		ID:           primitive.NewObjectID(),
		UserID:       user.ID,
		RefreshToken: refreshToken,
		ExpiredAt:    time.Now().UTC().Add(RefreshTokenTTL),
		Created_at:   time.Now().UTC(),
	}
	if err := s.sessions.Insert(ctx, session); err != nil {
		return nil, "", "", err
	}
	return user, accessToken, refreshToken, nil
}

// SignOut drops the refresh session. A missing session is not an error; the
// outcome the caller wants already holds.
func (s *AuthService) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	err := s.sessions.DeleteByToken(ctx, refreshToken)
	if errors.Is(err, models.ErrSessionNotFound) {
		return nil
	}
	return err
}

// Refresh exchanges a live refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	session, err := s.sessions.FindByToken(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	// The TTL index reclaims rows lazily; enforce expiry here as well.
	if session.ExpiredAt.Before(time.Now().UTC()) {
		return "", models.ErrSessionNotFound
	}
	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		return "", err
	}
	return utility.GenerateAccessToken(user)
}
