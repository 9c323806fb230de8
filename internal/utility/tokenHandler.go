package utility

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"time"

	"quizify/internal/models"

	jwt "github.com/dgrijalva/jwt-go"
)

// SignedDetails is the claim set carried by access tokens.
type SignedDetails struct {
	Uid      string `json:"uid"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.StandardClaims
}

const accessTokenTTL = 30 * time.Minute

func secretKey() []byte {
	return []byte(os.Getenv("SECRET_KEY"))
}

// GenerateAccessToken mints a short-lived JWT for the user.
func GenerateAccessToken(user *models.User) (string, error) {
	claims := &SignedDetails{
		Uid:      user.ID.Hex(),
		Username: *user.Username,
		IsAdmin:  user.IsAdmin,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(accessTokenTTL).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey())
}

// ValidateToken parses and verifies an access token. The second return value
// is a human-readable message, empty on success.
func ValidateToken(signedToken string) (*SignedDetails, string) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&SignedDetails{},
		func(token *jwt.Token) (interface{}, error) {
			return secretKey(), nil
		},
	)
	if err != nil {
		return nil, err.Error()
	}

	claims, ok := token.Claims.(*SignedDetails)
	if !ok {
		return nil, "the token is invalid"
	}
	if claims.ExpiresAt < time.Now().Unix() {
		return nil, "token is expired"
	}
	return claims, ""
}

// NewRefreshToken returns 64 random bytes as hex. Refresh tokens are opaque;
// all state lives in the session store.
func NewRefreshToken() string {
	b := make([]byte, 64)
	if _, err := rand.Read(b); err != nil {
		log.Panic(err)
	}
	return hex.EncodeToString(b)
}
