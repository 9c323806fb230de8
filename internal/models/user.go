package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

// ContextUser is the request-context key under which the authenticated user is stored.
const ContextUser contextKey = "user"

type User struct {
	ID             primitive.ObjectID `bson:"_id" json:"_id"`
	Username       *string            `bson:"username" json:"username" validate:"required,min=3,max=20"`
	Email          *string            `bson:"email" json:"email" validate:"email,required"`
	HashedPassword *string            `bson:"hashedPassword" json:"-"`
	IsAdmin        bool               `bson:"isAdmin" json:"isAdmin"`
	AvatarURL      string             `bson:"avatarUrl" json:"avatarUrl"`
	AvatarID       string             `bson:"avatarId" json:"avatarId"`
	Created_at     time.Time          `bson:"created_at" json:"created_at"`
	Updated_at     time.Time          `bson:"updated_at" json:"updated_at"`
}
