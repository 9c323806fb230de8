package utility

import (
	"testing"

	"quizify/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	username := "alice"
	user := &models.User{
		ID:       primitive.NewObjectID(),
		Username: &username,
		IsAdmin:  true,
	}

	token, err := GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, errMsg := ValidateToken(token)
	if errMsg != "" {
		t.Fatalf("ValidateToken: %s", errMsg)
	}
	if claims.Uid != user.ID.Hex() {
		t.Fatalf("uid = %q, want %q", claims.Uid, user.ID.Hex())
	}
	if claims.Username != "alice" || !claims.IsAdmin {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "first-secret")

	username := "alice"
	token, err := GenerateAccessToken(&models.User{ID: primitive.NewObjectID(), Username: &username})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	t.Setenv("SECRET_KEY", "second-secret")
	if _, errMsg := ValidateToken(token); errMsg == "" {
		t.Fatalf("token signed with a different key was accepted")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	if _, errMsg := ValidateToken("not-a-token"); errMsg == "" {
		t.Fatalf("garbage token was accepted")
	}
}

func TestNewRefreshTokenUnique(t *testing.T) {
	a := NewRefreshToken()
	b := NewRefreshToken()
	if len(a) != 128 {
		t.Fatalf("token length = %d, want 128 hex chars", len(a))
	}
	if a == b {
		t.Fatalf("two refresh tokens collided")
	}
}
