package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin  = "ADMIN"
	RoleCPA    = "CPA"
	RoleClient = "CLIENT"
)

// ValidRole reports whether r is one of the three defined roles.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleCPA || r == RoleClient
}

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrLastAdmin is returned when an operation would demote or delete the only
// remaining ADMIN user. The repository enforces the guard inside a single
// transaction so two concurrent demotions cannot both pass the count check.
var ErrLastAdmin = errors.New("cannot remove the last admin")

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Credential is the provider-scoped login record paired with a User.
// For the "credentials" provider the stored password mirrors the user's
// password hash; both are updated in the same transaction.
type Credential struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	UserID     string    `json:"user_id" bson:"user_id"`
	ProviderID string    `json:"provider_id" bson:"provider_id"`
	Password   string    `json:"-" bson:"password"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
