package service_test

import (
	"context"
	"errors"
	"testing"
	"usersvc/internal/service"
	"usersvc/pkg/domain"
	"usersvc/pkg/serrors"

	mockrepository "usersvc/internal/repository/mock"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*mockrepository.MockRepository, service.Service) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mockrepository.NewMockRepository(ctrl)

	return repo, service.New(repo)
}

func TestService_CountRegisteredLastWeek(t *testing.T) {
	repo, s := newTestService(t)

	repo.EXPECT().CountRegisteredWithin(gomock.Any(), 7).Return(int64(9), nil)
	count, err := s.CountRegisteredLastWeek(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 9, count)

	boom := errors.New("boom")
	repo.EXPECT().CountRegisteredWithin(gomock.Any(), 7).Return(int64(0), boom)
	_, err = s.CountRegisteredLastWeek(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestService_TopFiveLongestUsernames(t *testing.T) {
	repo, s := newTestService(t)

	top := []domain.User{
		{ID: 4, Username: "sergey_ivanov"},
		{ID: 7, Username: "daniel_defau"},
		{ID: 3, Username: "petrov_igor"},
	}
	repo.EXPECT().TopByUsernameLength(gomock.Any(), 5).Return(top, nil)
	res, err := s.TopFiveLongestUsernames(context.Background())
	require.NoError(t, err)
	require.Equal(t, top, res)

	repo.EXPECT().TopByUsernameLength(gomock.Any(), 5).Return(nil, errors.New("boom"))
	_, err = s.TopFiveLongestUsernames(context.Background())
	require.Error(t, err)
}

func TestService_ProportionWithDomain(t *testing.T) {
	tests := []struct {
		name     string
		matching int64
		total    int64
		want     float64
	}{
		{name: "two of nine", matching: 2, total: 9, want: 0.22},
		{name: "two of three rounds up", matching: 2, total: 3, want: 0.67},
		{name: "one of eight ties to even", matching: 1, total: 8, want: 0.12},
		{name: "five of eight ties to even", matching: 5, total: 8, want: 0.62},
		{name: "three of eight ties to even", matching: 3, total: 8, want: 0.38},
		{name: "all", matching: 4, total: 4, want: 1},
		{name: "none", matching: 0, total: 9, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, s := newTestService(t)

			repo.EXPECT().CountAll(gomock.Any()).Return(tt.total, nil)
			repo.EXPECT().CountMatchingEmailSuffix(gomock.Any(), "gmail.com").Return(tt.matching, nil)

			res, err := s.ProportionWithDomain(context.Background(), "gmail.com")
			require.NoError(t, err)
			require.InDelta(t, tt.want, res, 1e-9)
		})
	}
}

func TestService_ProportionWithDomain_EmptyTable(t *testing.T) {
	repo, s := newTestService(t)

	repo.EXPECT().CountAll(gomock.Any()).Return(int64(0), nil)
	res, err := s.ProportionWithDomain(context.Background(), "gmail.com")
	require.NoError(t, err)
	require.Zero(t, res)
}

func TestService_ProportionWithDomain_InvalidDomain(t *testing.T) {
	_, s := newTestService(t)

	for _, d := range []string{"mail", "googlecom", "example.a", ""} {
		_, err := s.ProportionWithDomain(context.Background(), d)
		require.ErrorIs(t, err, serrors.ErrInvalidArgument, "domain %q", d)
	}
}

func TestService_ProportionWithDomain_PropagatesErrors(t *testing.T) {
	repo, s := newTestService(t)
	boom := errors.New("boom")

	repo.EXPECT().CountAll(gomock.Any()).Return(int64(0), boom)
	_, err := s.ProportionWithDomain(context.Background(), "mail.ru")
	require.ErrorIs(t, err, boom)

	repo.EXPECT().CountAll(gomock.Any()).Return(int64(9), nil)
	repo.EXPECT().CountMatchingEmailSuffix(gomock.Any(), "mail.ru").Return(int64(0), boom)
	_, err = s.ProportionWithDomain(context.Background(), "mail.ru")
	require.ErrorIs(t, err, boom)
}
