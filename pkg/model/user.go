package model

import (
	"time"

	"github.com/google/uuid"
)

type UserID string

// NewUserID generates a new unique UserID
func NewUserID() UserID {
	return UserID(uuid.New().String())
}

// User is the owner of conversations. Authentication is out of scope; only
// existence of the user record matters here.
type User struct {
	ID        UserID
	Email     string
	FirstName string
	LastName  string
	CreatedAt time.Time
}
