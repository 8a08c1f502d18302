// Package v1handler implements the HTTP handlers of the users API.
package v1handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"usersvc/internal/repository"
	"usersvc/internal/service"
	"usersvc/pkg/domain"
	"usersvc/pkg/logger"
	"usersvc/pkg/serrors"

	"github.com/go-faster/jx"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// PathPrefix is where the users API is mounted.
const PathPrefix = "/api/users"

// Deps are the collaborators the handlers delegate to.
type Deps struct {
	Users repository.Repository
	Stats service.Service
}

type Handler struct {
	deps     Deps
	validate *validator.Validate
}

func New(deps Deps) *Handler {
	return &Handler{
		deps:     deps,
		validate: newValidator(),
	}
}

// Register mounts the users API on r. Every route answers with and without a
// trailing slash.
func (h *Handler) Register(r *mux.Router) {
	s := r.PathPrefix(PathPrefix).Subrouter()

	handle := func(path string, fn http.HandlerFunc, method string) {
		s.HandleFunc(path, fn).Methods(method)
		s.HandleFunc(path+"/", fn).Methods(method)
	}

	handle("/stats/from_last_week", h.CountRegisteredLastWeek, http.MethodGet)
	handle("/stats/top_longest_username", h.TopLongestUsernames, http.MethodGet)
	handle("/stats/with_email_domain/{domain}", h.ProportionWithDomain, http.MethodGet)

	handle("", h.ListUsers, http.MethodGet)
	handle("", h.CreateUser, http.MethodPost)
	handle("/{id:[0-9]+}", h.GetUser, http.MethodGet)
	handle("/{id:[0-9]+}", h.UpdateUser, http.MethodPatch)
	handle("/{id:[0-9]+}", h.DeleteUser, http.MethodDelete)
}

// ErrorResponse is the rendered form of an error.
type ErrorResponse struct {
	StatusCode int
	Message    string
	Details    ValidationErrors
}

func semanticMessage(err error) string {
	var se *serrors.Error
	if !errors.As(err, &se) {
		return err.Error()
	}
	if se.Message() != "" {
		return se.Message()
	}

	return se.Error()
}

// NewError maps err onto a status code and a client facing message. Errors
// without a semantic kind are logged and hidden behind a generic message.
func (h *Handler) NewError(ctx context.Context, err error) *ErrorResponse {
	res := &ErrorResponse{}
	switch serrors.KindOf(err) {
	case serrors.ErrNotFound:
		res.StatusCode = http.StatusNotFound
	case serrors.ErrAlreadyExists:
		res.StatusCode = http.StatusConflict
	case serrors.ErrInvalidArgument:
		res.StatusCode = http.StatusBadRequest
		_ = errors.As(err, &res.Details)
	case serrors.ErrTimeout:
		res.StatusCode = http.StatusGatewayTimeout
	case serrors.ErrUnavailable:
		res.StatusCode = http.StatusServiceUnavailable
	default:
		logger.Error(ctx, "could not handle request", zap.Error(err))
		res.StatusCode = http.StatusInternalServerError
		res.Message = "internal error"

		return res
	}
	res.Message = semanticMessage(err)

	return res
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	var e jx.Encoder
	encode(&e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(e.Bytes()); err != nil {
		logger.Warn(ctx, "could not write response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := h.NewError(r.Context(), err)
	writeJSON(r.Context(), w, res.StatusCode, func(e *jx.Encoder) {
		encodeError(e, res)
	})
}

type decoder interface {
	Decode(d *jx.Decoder) error
}

// decodeBody decodes and validates a JSON request body into dst.
func (h *Handler) decodeBody(r *http.Request, dst decoder) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return serrors.Wrap(serrors.ErrInvalidArgument, err, "could not read request body")
	}
	if len(body) == 0 {
		return serrors.With(serrors.ErrInvalidArgument, "request body is required")
	}
	if err := dst.Decode(jx.DecodeBytes(body)); err != nil {
		return serrors.Wrap(serrors.ErrInvalidArgument, err, "invalid request body")
	}

	return h.validateStruct(dst)
}

func userID(r *http.Request) (domain.UserID, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, serrors.Wrap(serrors.ErrInvalidArgument, err, "invalid user id '%s'", raw)
	}

	return domain.UserID(id), nil
}
