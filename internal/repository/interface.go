package repository

import (
	"context"
	"usersvc/pkg/domain"
)

// Repository translates user operations into storage queries. It owns
// uniqueness checks, pagination, filtering and ordering policy and the
// aggregate counts the statistics are built from.
//
//go:generate mockgen -package mockrepository -source=interface.go -destination=mock/mockrepository.go *
type Repository interface {
	// List returns users in insertion order, skipping offset rows and returning
	// at most limit rows. A limit of 0 returns every remaining row.
	List(ctx context.Context, offset, limit int) ([]domain.User, error)
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	Create(ctx context.Context, candidate domain.UserCandidate) (*domain.User, error)
	Update(ctx context.Context, id domain.UserID, update domain.UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id domain.UserID) error

	// RegisteredWithin returns users registered strictly after now minus days.
	RegisteredWithin(ctx context.Context, days int) ([]domain.User, error)
	// CountRegisteredWithin counts users registered strictly after now minus days.
	CountRegisteredWithin(ctx context.Context, days int) (int64, error)
	// TopByUsernameLength returns up to limit users, longest username first.
	TopByUsernameLength(ctx context.Context, limit int) ([]domain.User, error)
	// CountMatchingEmailSuffix counts users whose email ends with suffix,
	// ignoring case.
	CountMatchingEmailSuffix(ctx context.Context, suffix string) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}
