package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session holds one refresh token. Expiry is enforced by a TTL index on
// expiredAt, so stale rows disappear without any application-side sweep.
type Session struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	UserID       primitive.ObjectID `bson:"userID" json:"userID"`
	RefreshToken string             `bson:"refreshToken" json:"-"`
	ExpiredAt    time.Time          `bson:"expiredAt" json:"expiredAt"`
	Created_at   time.Time          `bson:"created_at" json:"created_at"`
}
