package v1handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"usersvc/internal/api/handler/v1handler"
	"usersvc/pkg/domain"
	"usersvc/pkg/logger"
	"usersvc/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Initialize logger to avoid nil pointer deref during tests
	_ = logger.Setup(logger.DevelopmentEnvironment, "")
	m.Run()
}

func TestNewError_InternalOnPlainError(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})

	res := h.NewError(context.Background(), errors.New("connection refused"))
	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
	require.Equal(t, "internal error", res.Message)
	require.Empty(t, res.Details)
}

func TestNewError_NotFoundUsesCauseMessage(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})

	err := fmt.Errorf("could not delete user: %w",
		serrors.Cause(serrors.ErrNotFound, &domain.UserNotFoundError{ID: 7}))
	res := h.NewError(context.Background(), err)
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	require.Equal(t, "User with id '7' not found", res.Message)
}

func TestNewError_AlreadyExistsIsConflict(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})

	err := serrors.Cause(serrors.ErrAlreadyExists, &domain.UserAlreadyExistsError{Field: "email", Value: "a@b.cd"})
	res := h.NewError(context.Background(), err)
	require.Equal(t, http.StatusConflict, res.StatusCode)
	require.Equal(t, "User with email 'a@b.cd' already exists", res.Message)
}

func TestNewError_InvalidArgumentUsesMessage(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})

	res := h.NewError(context.Background(), serrors.With(serrors.ErrInvalidArgument, "Invalid domain: 'mail'"))
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.Equal(t, "Invalid domain: 'mail'", res.Message)
}

func TestNewError_KindSentinelDirect(t *testing.T) {
	h := v1handler.New(v1handler.Deps{})

	res := h.NewError(context.Background(), serrors.ErrNotFound)
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	require.Equal(t, serrors.ErrNotFound.Error(), res.Message)

	res = h.NewError(context.Background(), serrors.KindOnly(serrors.ErrInternal))
	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
	require.Equal(t, "internal error", res.Message)
}
