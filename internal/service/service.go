package service

import (
	"context"
	"fmt"
	"strconv"
	"usersvc/internal/repository"
	"usersvc/pkg/domain"
	"usersvc/pkg/serrors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "usersvc/internal/service"

	lastWeekDays     = 7
	longestUsernames = 5
)

// service is the concrete implementation of the Service interface.
type service struct {
	users  repository.Repository
	tracer trace.Tracer
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s service) CountRegisteredLastWeek(ctx context.Context) (count int64, err error) {
	ctx, span := s.tracer.Start(ctx, "CountRegisteredLastWeek")
	defer func() { endSpan(span, err) }()

	count, err = s.users.CountRegisteredWithin(ctx, lastWeekDays)
	if err != nil {
		return 0, fmt.Errorf("could not count users registered last week: %w", err)
	}
	span.SetAttributes(attribute.Int64("users.count", count))

	return count, nil
}

func (s service) TopFiveLongestUsernames(ctx context.Context) (users []domain.User, err error) {
	ctx, span := s.tracer.Start(ctx, "TopFiveLongestUsernames")
	defer func() { endSpan(span, err) }()

	users, err = s.users.TopByUsernameLength(ctx, longestUsernames)
	if err != nil {
		return nil, fmt.Errorf("could not get users with longest usernames: %w", err)
	}

	return users, nil
}

// ProportionWithDomain returns 0 when there are no users at all.
func (s service) ProportionWithDomain(ctx context.Context, emailDomain string) (proportion float64, err error) {
	ctx, span := s.tracer.Start(ctx, "ProportionWithDomain",
		trace.WithAttributes(attribute.String("users.email_domain", emailDomain)))
	defer func() { endSpan(span, err) }()

	if !ValidDomain(emailDomain) {
		return 0, serrors.With(serrors.ErrInvalidArgument, "Invalid domain: '%s'", emailDomain)
	}

	total, err := s.users.CountAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count users: %w", err)
	}
	if total == 0 {
		return 0, nil
	}

	matching, err := s.users.CountMatchingEmailSuffix(ctx, emailDomain)
	if err != nil {
		return 0, fmt.Errorf("could not count users with email domain: %w", err)
	}

	return round2(float64(matching) / float64(total)), nil
}

// round2 rounds the exact binary value of v to two decimals, ties to even.
func round2(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)

	return r
}

// New creates a Service computing statistics from the given repository.
func New(users repository.Repository) Service {
	return &service{
		users:  users,
		tracer: otel.Tracer(tracerName),
	}
}
