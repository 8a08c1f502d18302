package v1handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"usersvc/internal/api/handler/v1handler"
	"usersvc/pkg/domain"
	"usersvc/pkg/serrors"

	mockrepository "usersvc/internal/repository/mock"
	mockservice "usersvc/internal/service/mock"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var registeredAt = time.Date(2024, 5, 17, 9, 30, 15, 0, time.UTC) //nolint: gochecknoglobals

type testAPI struct {
	users  *mockrepository.MockRepository
	stats  *mockservice.MockService
	router *mux.Router
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	ctrl := gomock.NewController(t)
	api := &testAPI{
		users:  mockrepository.NewMockRepository(ctrl),
		stats:  mockservice.NewMockService(ctrl),
		router: mux.NewRouter(),
	}
	v1handler.New(v1handler.Deps{Users: api.users, Stats: api.stats}).Register(api.router)

	return api
}

func (a *testAPI) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var obj map[string]any
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &obj))
	}

	return rec, obj
}

func testUser(id int64, username, email string) *domain.User {
	return &domain.User{ID: domain.UserID(id), Username: username, Email: email, RegistrationDate: registeredAt}
}

func TestListUsers_DefaultPagination(t *testing.T) {
	api := newTestAPI(t)

	api.users.EXPECT().List(gomock.Any(), 0, 5).Return([]domain.User{
		*testUser(1, "johndoe", "johndoe@google.com"),
		*testUser(2, "spongebob", "spongebob@google.com"),
	}, nil)
	rec, _ := api.do(t, http.MethodGet, "/api/users/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var users []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 2)
	require.EqualValues(t, 1, users[0]["id"])
	require.Equal(t, "johndoe", users[0]["username"])
	require.Equal(t, "johndoe@google.com", users[0]["email"])
	require.Equal(t, "17/05/2024, 09:30:15", users[0]["registration_date"])

	// the trailing slash is optional
	api.users.EXPECT().List(gomock.Any(), 0, 5).Return([]domain.User{}, nil)
	rec, _ = api.do(t, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())
}

func TestListUsers_CustomPagination(t *testing.T) {
	api := newTestAPI(t)

	api.users.EXPECT().List(gomock.Any(), 3, 0).Return([]domain.User{}, nil)
	rec, _ := api.do(t, http.MethodGet, "/api/users/?offset=3&limit=0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())
}

func TestListUsers_InvalidPagination(t *testing.T) {
	tests := []struct {
		name  string
		query string
		field string
		typ   string
	}{
		{name: "limit above maximum", query: "limit=1001", field: "limit", typ: "lte"},
		{name: "negative offset", query: "offset=-1", field: "offset", typ: "gte"},
		{name: "negative limit", query: "limit=-3", field: "limit", typ: "gte"},
		{name: "not a number", query: "limit=abc", field: "limit", typ: "int_parsing"},
		{name: "unknown parameter", query: "page=2", field: "page", typ: "extra_forbidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)

			rec, body := api.do(t, http.MethodGet, "/api/users/?"+tt.query, "")
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Equal(t, "Invalid request data", body["error"])

			details, ok := body["details"].([]any)
			require.True(t, ok)
			require.Len(t, details, 1)
			detail := details[0].(map[string]any)
			require.Equal(t, tt.field, detail["field"])
			require.Equal(t, tt.typ, detail["type"])
			require.NotEmpty(t, detail["message"])
		})
	}
}

func TestListUsers_InvalidPagination_StableDetailsOrder(t *testing.T) {
	for range 20 {
		api := newTestAPI(t)

		rec, body := api.do(t, http.MethodGet, "/api/users/?zeta=1&limit=abc&alpha=2&offset=x", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)

		details, ok := body["details"].([]any)
		require.True(t, ok)

		fields := make([]any, 0, len(details))
		for _, d := range details {
			fields = append(fields, d.(map[string]any)["field"])
		}
		require.Equal(t, []any{"offset", "limit", "alpha", "zeta"}, fields)
	}
}

func TestGetUser(t *testing.T) {
	api := newTestAPI(t)

	api.users.EXPECT().GetByID(gomock.Any(), domain.UserID(4)).
		Return(testUser(4, "sergey_ivanov", "sergey_ivanov@mail.ru"), nil)
	rec, body := api.do(t, http.MethodGet, "/api/users/4/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "sergey_ivanov", body["username"])

	api.users.EXPECT().GetByID(gomock.Any(), domain.UserID(404)).
		Return(nil, serrors.Cause(serrors.ErrNotFound, &domain.UserNotFoundError{ID: 404}))
	rec, body = api.do(t, http.MethodGet, "/api/users/404", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "User with id '404' not found", body["error"])
}

func TestGetUser_NonNumericID(t *testing.T) {
	api := newTestAPI(t)

	rec, _ := api.do(t, http.MethodGet, "/api/users/abc/", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateUser(t *testing.T) {
	api := newTestAPI(t)

	api.users.EXPECT().Create(gomock.Any(), domain.UserCandidate{Username: "alice", Email: "alice@example.com"}).
		Return(testUser(10, "alice", "alice@example.com"), nil)

	rec, body := api.do(t, http.MethodPost, "/api/users/",
		`{"username":"alice","email":"alice@example.com","ignored":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.EqualValues(t, 10, body["id"])
	require.Equal(t, "17/05/2024, 09:30:15", body["registration_date"])
}

func TestCreateUser_Conflict(t *testing.T) {
	api := newTestAPI(t)

	api.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil,
		serrors.Cause(serrors.ErrAlreadyExists, &domain.UserAlreadyExistsError{Field: "username", Value: "johndoe"}))

	rec, body := api.do(t, http.MethodPost, "/api/users/", `{"username":"johndoe","email":"new@example.com"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "User with username 'johndoe' already exists", body["error"])
}

func TestCreateUser_Validation(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{name: "missing fields", body: `{}`, fields: []string{"username", "email"}},
		{name: "short username", body: `{"username":"ab","email":"ab@example.com"}`, fields: []string{"username"}},
		{
			name:   "long username",
			body:   `{"username":"` + strings.Repeat("a", 33) + `","email":"ab@example.com"}`,
			fields: []string{"username"},
		},
		{name: "bad email", body: `{"username":"alice","email":"not-an-email"}`, fields: []string{"email"}},
		{name: "short email", body: `{"username":"alice","email":"a@b.c"}`, fields: []string{"email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)

			rec, body := api.do(t, http.MethodPost, "/api/users/", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			details, ok := body["details"].([]any)
			require.True(t, ok)
			var fields []string
			for _, d := range details {
				fields = append(fields, d.(map[string]any)["field"].(string))
			}
			require.ElementsMatch(t, tt.fields, fields)
		})
	}
}

func TestCreateUser_MalformedBody(t *testing.T) {
	for _, body := range []string{`{"username": 12}`, `not json`, `[]`} {
		api := newTestAPI(t)

		rec, res := api.do(t, http.MethodPost, "/api/users/", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		require.Equal(t, "invalid request body", res["error"])
	}

	api := newTestAPI(t)
	rec, res := api.do(t, http.MethodPost, "/api/users/", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "request body is required", res["error"])
}

func TestUpdateUser(t *testing.T) {
	api := newTestAPI(t)

	api.users.EXPECT().Update(gomock.Any(), domain.UserID(5), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.UserID, update domain.UserUpdate) (*domain.User, error) {
			require.NotNil(t, update.Username)
			require.Equal(t, "batman", *update.Username)
			require.Nil(t, update.Email)

			return testUser(5, "batman", "bruce_wayne@gmail.com"), nil
		})

	rec, body := api.do(t, http.MethodPatch, "/api/users/5/", `{"username":"batman","email":null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "batman", body["username"])
	require.Equal(t, "bruce_wayne@gmail.com", body["email"])
}

func TestUpdateUser_Errors(t *testing.T) {
	api := newTestAPI(t)

	api.users.EXPECT().Update(gomock.Any(), domain.UserID(99), gomock.Any()).
		Return(nil, serrors.Cause(serrors.ErrNotFound, &domain.UserNotFoundError{ID: 99}))
	rec, _ := api.do(t, http.MethodPatch, "/api/users/99", `{"email":"ghost@example.com"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	api.users.EXPECT().Update(gomock.Any(), domain.UserID(5), gomock.Any()).
		Return(nil, serrors.Cause(serrors.ErrAlreadyExists,
			&domain.UserAlreadyExistsError{Field: "email", Value: "tony_stark@mtuci.ru"}))
	rec, _ = api.do(t, http.MethodPatch, "/api/users/5", `{"email":"tony_stark@mtuci.ru"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec, body := api.do(t, http.MethodPatch, "/api/users/5", `{"username":"x"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotEmpty(t, body["details"])
}

func TestDeleteUser(t *testing.T) {
	api := newTestAPI(t)

	api.users.EXPECT().Delete(gomock.Any(), domain.UserID(7)).Return(nil)
	rec, body := api.do(t, http.MethodDelete, "/api/users/7/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "User with id 7 deleted", body["message"])

	api.users.EXPECT().Delete(gomock.Any(), domain.UserID(7)).
		Return(serrors.Cause(serrors.ErrNotFound, &domain.UserNotFoundError{ID: 7}))
	rec, body = api.do(t, http.MethodDelete, "/api/users/7/", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "User with id '7' not found", body["error"])

	api.users.EXPECT().Delete(gomock.Any(), domain.UserID(8)).Return(errors.New("connection reset"))
	rec, body = api.do(t, http.MethodDelete, "/api/users/8/", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "internal error", body["error"])
}
