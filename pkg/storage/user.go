package storage

import (
	"context"
	"time"
	"usersvc/pkg/domain"
)

// UserOrder selects the ordering applied when listing users.
type UserOrder int

const (
	// UserOrderInsertion keeps the natural insertion order (ascending id).
	UserOrderInsertion UserOrder = iota
	// UserOrderUsernameLengthDesc orders by username character length,
	// longest first. Ties keep insertion order.
	UserOrderUsernameLengthDesc
)

// UserFilter narrows the set of users a query operates on. Zero-valued fields
// do not filter.
type UserFilter struct {
	// RegisteredAfter keeps users whose registration date is strictly after it.
	RegisteredAfter time.Time
	// EmailSuffix keeps users whose email ends with it, compared
	// case-insensitively as a plain string suffix.
	EmailSuffix string
}

// UserQuery describes a listing of users.
type UserQuery struct {
	Filter UserFilter
	Order  UserOrder
	// Offset is the number of rows to skip.
	Offset uint
	// Limit is the maximum number of rows to return. Zero means unbounded.
	Limit uint
}

// UserStorage defines the primitive operations on the users table. Lookups
// return a nil user and a nil error when no row matches; deciding whether
// that is a fault is left to the caller.
type UserStorage interface {
	// Users returns the users matching the query.
	Users(ctx context.Context, query UserQuery) ([]domain.User, error)
	// CountUsers returns the number of users matching the filter.
	CountUsers(ctx context.Context, filter UserFilter) (int64, error)
	// UserByID fetches a single user by id. Returns nil when not found.
	UserByID(ctx context.Context, ID domain.UserID) (*domain.User, error)
	// UserByField fetches the user whose unique field equals value exactly.
	// Only domain.UserFieldUsername and domain.UserFieldEmail are accepted.
	// Returns nil when not found.
	UserByField(ctx context.Context, field string, value string) (*domain.User, error)
	// InsertUser stores a new user and returns the row as it exists in the
	// database, including the generated id and registration date.
	InsertUser(ctx context.Context, candidate domain.UserCandidate) (*domain.User, error)
	// UpdateUser applies the non-nil fields of the update to the user and
	// returns the updated row. Returns nil when not found.
	UpdateUser(ctx context.Context, ID domain.UserID, update domain.UserUpdate) (*domain.User, error)
	// DeleteUser removes the user and returns the deleted row. Returns nil
	// when not found.
	DeleteUser(ctx context.Context, ID domain.UserID) (*domain.User, error)
}
