package domain

import (
	"fmt"
	"time"
)

// UserID uniquely identifies a user within the system. It is assigned by the
// storage on creation and never reused after deletion.
type UserID int64

// User field names. They double as column names and as the field identifiers
// reported by UserAlreadyExistsError.
const (
	UserFieldUsername = "username"
	UserFieldEmail    = "email"
)

// User represents a registered user.
type User struct {
	// ID is the surrogate key assigned by the storage.
	ID UserID
	// Username is unique across all users, 3 to 32 characters long.
	Username string
	// Email is unique across all users, 6 to 64 characters long.
	Email string
	// RegistrationDate is set once at creation and never changes afterwards.
	RegistrationDate time.Time
}

// UserCandidate holds the data required to register a new user.
type UserCandidate struct {
	Username string
	Email    string
}

// UserUpdate describes a partial update of a user. Nil fields keep their
// current value.
type UserUpdate struct {
	Username *string
	Email    *string
}

// IsEmpty reports whether the update does not change anything.
func (u UserUpdate) IsEmpty() bool {
	return u.Username == nil && u.Email == nil
}

// UserNotFoundError is the cause attached to not-found faults for users.
type UserNotFoundError struct {
	ID UserID
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("User with id '%d' not found", e.ID)
}

// UserAlreadyExistsError is the cause attached to conflict faults raised when
// a unique field value is already taken by another user.
type UserAlreadyExistsError struct {
	Field string
	Value string
}

func (e *UserAlreadyExistsError) Error() string {
	return fmt.Sprintf("User with %s '%s' already exists", e.Field, e.Value)
}
