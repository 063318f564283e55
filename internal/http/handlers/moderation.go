package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jeanlaboratories/momentum/internal/actions"
)

func (h *Handlers) FlagComment(w http.ResponseWriter, r *http.Request) {
	var req actions.FlagCommentRequest
	if err := decodeStrict(r, &req); err != nil {
		writeResult(w, badRequest("Invalid request body"))
		return
	}

	req.CommentID = chi.URLParam(r, "id")
	writeResult(w, h.Actions.FlagComment(r.Context(), req))
}

func (h *Handlers) ListFlags(w http.ResponseWriter, r *http.Request) {
	req := actions.FlagsRequest{
		BrandID: chi.URLParam(r, "brand_id"),
		Status:  r.URL.Query().Get("status"),
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 0 {
			writeResult(w, badRequest("Invalid limit"))
			return
		}

		req.Limit = int32(n)
	}

	writeResult(w, h.Actions.Flags(r.Context(), req))
}

func (h *Handlers) ResolveFlag(w http.ResponseWriter, r *http.Request) {
	var req actions.ResolveFlagRequest
	if err := decodeStrict(r, &req); err != nil {
		writeResult(w, badRequest("Invalid request body"))
		return
	}

	req.FlagID = chi.URLParam(r, "id")
	writeResult(w, h.Actions.ResolveFlag(r.Context(), req))
}
