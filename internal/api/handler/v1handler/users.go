package v1handler

import (
	"fmt"
	"net/http"

	"github.com/go-faster/jx"
)

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	p, err := h.parsePagination(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	users, err := h.deps.Users.List(r.Context(), p.Offset, p.Limit)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, func(e *jx.Encoder) {
		encodeUsers(e, users)
	})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	user, err := h.deps.Users.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, func(e *jx.Encoder) {
		encodeUser(e, *user)
	})
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := h.decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)

		return
	}

	user, err := h.deps.Users.Create(r.Context(), req.Candidate())
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusCreated, func(e *jx.Encoder) {
		encodeUser(e, *user)
	})
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	var req updateUserRequest
	if err := h.decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)

		return
	}

	user, err := h.deps.Users.Update(r.Context(), id, req.Update())
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, func(e *jx.Encoder) {
		encodeUser(e, *user)
	})
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	if err := h.deps.Users.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, func(e *jx.Encoder) {
		encodeMessage(e, fmt.Sprintf("User with id %d deleted", id))
	})
}

