package repository

import (
	"context"
	"fmt"
	"time"
	"usersvc/pkg/domain"
	"usersvc/pkg/serrors"
	"usersvc/pkg/storage"
)

const day = 24 * time.Hour

// Options configure the repository.
type Options struct {
	// Now returns the current time. Registration windows are measured from it.
	// Defaults to time.Now.
	Now func() time.Time
}

// repository is the concrete implementation of the Repository interface.
type repository struct {
	options Options
	storage storage.Storage
}

func notFound(id domain.UserID) error {
	return serrors.Cause(serrors.ErrNotFound, &domain.UserNotFoundError{ID: id})
}

func alreadyExists(field, value string) error {
	return serrors.Cause(serrors.ErrAlreadyExists, &domain.UserAlreadyExistsError{Field: field, Value: value})
}

func (r repository) List(ctx context.Context, offset, limit int) ([]domain.User, error) {
	if offset < 0 {
		return nil, serrors.With(serrors.ErrInvalidArgument, "offset must not be negative")
	}
	if limit < 0 {
		return nil, serrors.With(serrors.ErrInvalidArgument, "limit must not be negative")
	}

	users, err := r.storage.Users(ctx, storage.UserQuery{
		Order:  storage.UserOrderInsertion,
		Offset: uint(offset),
		Limit:  uint(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("could not list users: %w", err)
	}

	return users, nil
}

func (r repository) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	user, err := r.storage.UserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return nil, notFound(id)
	}

	return user, nil
}

// ensureUnique fails with an already exists fault when a user other than
// self already holds value in field. A zero self matches no user.
func ensureUnique(ctx context.Context, tx storage.AllStorage, field, value string, self domain.UserID) error {
	existing, err := tx.UserByField(ctx, field, value)
	if err != nil {
		return fmt.Errorf("could not check %s uniqueness: %w", field, err)
	}
	if existing != nil && existing.ID != self {
		return alreadyExists(field, value)
	}

	return nil
}

// Create registers a new user. Username is checked before email, so a
// candidate clashing on both reports the username.
func (r repository) Create(ctx context.Context, candidate domain.UserCandidate) (*domain.User, error) {
	var user *domain.User
	if err := r.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		if err := ensureUnique(ctx, tx, domain.UserFieldUsername, candidate.Username, 0); err != nil {
			return err
		}
		if err := ensureUnique(ctx, tx, domain.UserFieldEmail, candidate.Email, 0); err != nil {
			return err
		}

		created, err := tx.InsertUser(ctx, candidate)
		if err != nil {
			return fmt.Errorf("could not insert user: %w", err)
		}
		user = created

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	return user, nil
}

// Update overwrites the fields present in update. A value already held by a
// different user is rejected; keeping the user's own value is not a conflict.
func (r repository) Update(ctx context.Context, id domain.UserID, update domain.UserUpdate) (*domain.User, error) {
	var user *domain.User
	if err := r.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		current, err := tx.UserByID(ctx, id)
		if err != nil {
			return fmt.Errorf("could not get user: %w", err)
		}
		if current == nil {
			return notFound(id)
		}

		if update.Username != nil && *update.Username != current.Username {
			if err := ensureUnique(ctx, tx, domain.UserFieldUsername, *update.Username, id); err != nil {
				return err
			}
		}
		if update.Email != nil && *update.Email != current.Email {
			if err := ensureUnique(ctx, tx, domain.UserFieldEmail, *update.Email, id); err != nil {
				return err
			}
		}

		if update.IsEmpty() {
			user = current

			return nil
		}

		updated, err := tx.UpdateUser(ctx, id, update)
		if err != nil {
			return fmt.Errorf("could not store user changes: %w", err)
		}
		if updated == nil {
			return notFound(id)
		}
		user = updated

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not update user: %w", err)
	}

	return user, nil
}

func (r repository) Delete(ctx context.Context, id domain.UserID) error {
	if err := r.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		current, err := tx.UserByID(ctx, id)
		if err != nil {
			return fmt.Errorf("could not get user: %w", err)
		}
		if current == nil {
			return notFound(id)
		}

		deleted, err := tx.DeleteUser(ctx, id)
		if err != nil {
			return fmt.Errorf("could not remove user: %w", err)
		}
		if deleted == nil {
			return notFound(id)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("could not delete user: %w", err)
	}

	return nil
}

func (r repository) registeredFilter(days int) (storage.UserFilter, error) {
	if days < 0 {
		return storage.UserFilter{}, serrors.With(serrors.ErrInvalidArgument, "days must not be negative")
	}

	return storage.UserFilter{RegisteredAfter: r.options.Now().Add(-time.Duration(days) * day)}, nil
}

func (r repository) RegisteredWithin(ctx context.Context, days int) ([]domain.User, error) {
	filter, err := r.registeredFilter(days)
	if err != nil {
		return nil, err
	}

	users, err := r.storage.Users(ctx, storage.UserQuery{Filter: filter})
	if err != nil {
		return nil, fmt.Errorf("could not list recently registered users: %w", err)
	}

	return users, nil
}

func (r repository) CountRegisteredWithin(ctx context.Context, days int) (int64, error) {
	filter, err := r.registeredFilter(days)
	if err != nil {
		return 0, err
	}

	count, err := r.storage.CountUsers(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("could not count recently registered users: %w", err)
	}

	return count, nil
}

func (r repository) TopByUsernameLength(ctx context.Context, limit int) ([]domain.User, error) {
	if limit <= 0 {
		return nil, serrors.With(serrors.ErrInvalidArgument, "limit must be positive, got %d", limit)
	}

	users, err := r.storage.Users(ctx, storage.UserQuery{
		Order: storage.UserOrderUsernameLengthDesc,
		Limit: uint(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("could not list users by username length: %w", err)
	}

	return users, nil
}

func (r repository) CountMatchingEmailSuffix(ctx context.Context, suffix string) (int64, error) {
	count, err := r.storage.CountUsers(ctx, storage.UserFilter{EmailSuffix: suffix})
	if err != nil {
		return 0, fmt.Errorf("could not count users by email suffix: %w", err)
	}

	return count, nil
}

func (r repository) CountAll(ctx context.Context) (int64, error) {
	count, err := r.storage.CountUsers(ctx, storage.UserFilter{})
	if err != nil {
		return 0, fmt.Errorf("could not count users: %w", err)
	}

	return count, nil
}

// New creates a Repository backed by the provided storage.
func New(storage storage.Storage, options Options) Repository {
	if options.Now == nil {
		options.Now = time.Now
	}

	return &repository{
		options: options,
		storage: storage,
	}
}
