package v1handler

import (
	"net/http"

	"github.com/go-faster/jx"
	"github.com/gorilla/mux"
)

func (h *Handler) CountRegisteredLastWeek(w http.ResponseWriter, r *http.Request) {
	count, err := h.deps.Stats.CountRegisteredLastWeek(r.Context())
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, func(e *jx.Encoder) {
		encodeCount(e, count)
	})
}

func (h *Handler) TopLongestUsernames(w http.ResponseWriter, r *http.Request) {
	users, err := h.deps.Stats.TopFiveLongestUsernames(r.Context())
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, func(e *jx.Encoder) {
		encodeUsers(e, users)
	})
}

func (h *Handler) ProportionWithDomain(w http.ResponseWriter, r *http.Request) {
	emailDomain := mux.Vars(r)["domain"]

	proportion, err := h.deps.Stats.ProportionWithDomain(r.Context(), emailDomain)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, func(e *jx.Encoder) {
		encodeProportion(e, emailDomain, proportion)
	})
}
