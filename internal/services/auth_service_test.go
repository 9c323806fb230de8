package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"quizify/internal/models"
	"quizify/internal/store/memstore"
	"quizify/internal/utility"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newAuthTestService(t *testing.T) (*AuthService, *memstore.SessionStore) {
	t.Helper()
	t.Setenv("SECRET_KEY", "test-secret")
	sessions := memstore.NewSessionStore()
	return NewAuthService(memstore.NewUserStore(), sessions), sessions
}

func TestSignUpSignInRoundTrip(t *testing.T) {
	s, _ := newAuthTestService(t)
	ctx := context.Background()

	user, err := s.SignUp(ctx, "  Alice  ", "Alice@Example.com", "hunter22")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if *user.Username != "alice" || *user.Email != "alice@example.com" {
		t.Fatalf("identifiers not normalized: %q %q", *user.Username, *user.Email)
	}
	if user.IsAdmin {
		t.Fatalf("new user is admin")
	}

	signedIn, accessToken, refreshToken, err := s.SignIn(ctx, "ALICE", "hunter22")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if signedIn.ID != user.ID {
		t.Fatalf("signed in as %s, want %s", signedIn.ID.Hex(), user.ID.Hex())
	}
	if refreshToken == "" {
		t.Fatalf("no refresh token issued")
	}

	claims, errMsg := utility.ValidateToken(accessToken)
	if errMsg != "" {
		t.Fatalf("ValidateToken: %s", errMsg)
	}
	if claims.Uid != user.ID.Hex() || claims.Username != "alice" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestSignUpRejectsDuplicates(t *testing.T) {
	s, _ := newAuthTestService(t)
	ctx := context.Background()

	if _, err := s.SignUp(ctx, "alice", "alice@example.com", "hunter22"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if _, err := s.SignUp(ctx, "alice", "other@example.com", "hunter22"); !errors.Is(err, models.ErrAlreadyExists) {
		t.Fatalf("duplicate username err = %v, want ErrAlreadyExists", err)
	}
	if _, err := s.SignUp(ctx, "bob", "alice@example.com", "hunter22"); !errors.Is(err, models.ErrAlreadyExists) {
		t.Fatalf("duplicate email err = %v, want ErrAlreadyExists", err)
	}
}

func TestSignUpValidation(t *testing.T) {
	s, _ := newAuthTestService(t)
	ctx := context.Background()

	cases := []struct {
		name               string
		username, email    string
		password           string
	}{
		{"short username", "ab", "a@example.com", "hunter22"},
		{"bad email", "alice", "not-an-email", "hunter22"},
		{"short password", "alice", "a@example.com", "12345"},
	}
	for _, tc := range cases {
		if _, err := s.SignUp(ctx, tc.username, tc.email, tc.password); !errors.Is(err, models.ErrInvalidInput) {
			t.Errorf("%s: err = %v, want ErrInvalidInput", tc.name, err)
		}
	}
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	s, _ := newAuthTestService(t)
	ctx := context.Background()

	if _, err := s.SignUp(ctx, "alice", "alice@example.com", "hunter22"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	if _, _, _, err := s.SignIn(ctx, "alice", "wrong-password"); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	// Unknown users get the same answer as a bad password.
	if _, _, _, err := s.SignIn(ctx, "nobody", "hunter22"); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("unknown user err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshAndSignOut(t *testing.T) {
	s, _ := newAuthTestService(t)
	ctx := context.Background()

	if _, err := s.SignUp(ctx, "alice", "alice@example.com", "hunter22"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	_, _, refreshToken, err := s.SignIn(ctx, "alice", "hunter22")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	accessToken, err := s.Refresh(ctx, refreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if _, errMsg := utility.ValidateToken(accessToken); errMsg != "" {
		t.Fatalf("refreshed token invalid: %s", errMsg)
	}

	if err := s.SignOut(ctx, refreshToken); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if _, err := s.Refresh(ctx, refreshToken); !errors.Is(err, models.ErrSessionNotFound) {
		t.Fatalf("refresh after signout err = %v, want ErrSessionNotFound", err)
	}

	// Signing out again, or with no token at all, is a no-op.
	if err := s.SignOut(ctx, refreshToken); err != nil {
		t.Fatalf("repeat SignOut: %v", err)
	}
	if err := s.SignOut(ctx, ""); err != nil {
		t.Fatalf("empty SignOut: %v", err)
	}
}

func TestRefreshRejectsExpiredSession(t *testing.T) {
	s, sessions := newAuthTestService(t)
	ctx := context.Background()

	session := &models.Session{
		ID:           primitive.NewObjectID(),
		UserID:       primitive.NewObjectID(),
		RefreshToken: "stale-token",
		ExpiredAt:    time.Now().UTC().Add(-time.Minute),
		Created_at:   time.Now().UTC().Add(-RefreshTokenTTL),
	}
	if err := sessions.Insert(ctx, session); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if _, err := s.Refresh(ctx, "stale-token"); !errors.Is(err, models.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}
