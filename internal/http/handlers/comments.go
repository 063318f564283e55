package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jeanlaboratories/momentum/internal/actions"
)

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req actions.CreateCommentRequest
	if err := decodeStrict(r, &req); err != nil {
		writeResult(w, badRequest("Invalid request body"))
		return
	}

	writeResult(w, h.Actions.CreateComment(r.Context(), req))
}

func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	var req actions.UpdateCommentRequest
	if err := decodeStrict(r, &req); err != nil {
		writeResult(w, badRequest("Invalid request body"))
		return
	}

	req.CommentID = chi.URLParam(r, "id")
	writeResult(w, h.Actions.UpdateComment(r.Context(), req))
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	req := actions.DeleteCommentRequest{CommentID: chi.URLParam(r, "id")}
	writeResult(w, h.Actions.DeleteComment(r.Context(), req))
}

func (h *Handlers) Threads(w http.ResponseWriter, r *http.Request) {
	req := actions.ThreadsRequest{
		BrandID:     r.URL.Query().Get("brand_id"),
		ContextType: r.URL.Query().Get("context_type"),
		ContextID:   r.URL.Query().Get("context_id"),
		PageToken:   r.URL.Query().Get("page_token"),
	}

	if v := r.URL.Query().Get("page_size"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 0 {
			writeResult(w, badRequest("Invalid page_size"))
			return
		}

		req.PageSize = int32(n)
	}

	writeResult(w, h.Actions.Threads(r.Context(), req))
}

func (h *Handlers) ListReplies(w http.ResponseWriter, r *http.Request) {
	req := actions.RepliesRequest{
		ParentID:   chi.URLParam(r, "id"),
		StartAfter: r.URL.Query().Get("start_after"),
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 0 {
			writeResult(w, badRequest("Invalid limit"))
			return
		}

		req.Limit = int32(n)
	}

	writeResult(w, h.Actions.Replies(r.Context(), req))
}

func (h *Handlers) CommentContext(w http.ResponseWriter, r *http.Request) {
	req := actions.ContextRequest{
		BrandID:     r.URL.Query().Get("brand_id"),
		ContextType: r.URL.Query().Get("context_type"),
		ContextID:   r.URL.Query().Get("context_id"),
	}

	writeResult(w, h.Actions.CommentContext(r.Context(), req))
}
