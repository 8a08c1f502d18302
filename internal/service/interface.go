package service

import (
	"context"
	"usersvc/pkg/domain"
)

// Service computes read-only statistics over the registered users.
//
//go:generate mockgen -package mockservice -source=interface.go -destination=mock/mockservice.go *
type Service interface {
	// CountRegisteredLastWeek counts users registered during the last 7 days.
	CountRegisteredLastWeek(ctx context.Context) (int64, error)
	// TopFiveLongestUsernames returns up to 5 users, longest username first.
	TopFiveLongestUsernames(ctx context.Context) ([]domain.User, error)
	// ProportionWithDomain returns the share of users whose email ends with
	// emailDomain, rounded to 2 decimal places.
	ProportionWithDomain(ctx context.Context, emailDomain string) (float64, error)
}
