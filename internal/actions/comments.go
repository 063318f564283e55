package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/jeanlaboratories/momentum/internal/models"
	"github.com/jeanlaboratories/momentum/internal/service"
)

// Запросы операций. Имена json-полей повторяют контракт клиента.

// CreateCommentRequest — создание комментария или ответа.
type CreateCommentRequest struct {
	BrandID     string `json:"brandId"`
	ContextType string `json:"contextType"`
	ContextID   string `json:"contextId"`
	ParentID    string `json:"parentId,omitempty"`
	Body        string `json:"body"`
}

// UpdateCommentRequest — редактирование текста комментария.
type UpdateCommentRequest struct {
	CommentID string `json:"commentId"`
	Body      string `json:"body"`
}

// DeleteCommentRequest — мягкое удаление.
type DeleteCommentRequest struct {
	CommentID string `json:"commentId"`
}

// ThreadsRequest — постраничная выдача тредов контекста.
type ThreadsRequest struct {
	BrandID     string `json:"brandId"`
	ContextType string `json:"contextType"`
	ContextID   string `json:"contextId"`
	PageSize    int32  `json:"pageSize,omitempty"`
	PageToken   string `json:"pageToken,omitempty"`
}

// RepliesRequest — постраничная выдача ответов одной ветки.
type RepliesRequest struct {
	ParentID   string `json:"parentId"`
	Limit      int32  `json:"limit,omitempty"`
	StartAfter string `json:"startAfter,omitempty"`
}

// ContextRequest — чтение агрегата счётчиков контекста.
type ContextRequest struct {
	BrandID     string `json:"brandId"`
	ContextType string `json:"contextType"`
	ContextID   string `json:"contextId"`
}

// CreateComment создаёт комментарий от имени текущего пользователя.
func (a *Actions) CreateComment(ctx context.Context, req CreateCommentRequest) Result {
	const op = "actions/comments/CreateComment"

	user, failRes := a.actor(ctx)
	if failRes != nil {
		return *failRes
	}

	comment, err := a.svc.CreateComment(ctx, service.CreateCommentInput{
		Actor:       *user,
		BrandID:     req.BrandID,
		ContextType: models.ContextType(req.ContextType),
		ContextID:   req.ContextID,
		ParentID:    req.ParentID,
		Body:        req.Body,
	})
	if err != nil {
		return failFromError(ctx, op, err,
			"You don't have access to this brand",
			"Comment text is required")
	}

	return ok(comment)
}

// UpdateComment редактирует комментарий.
// Отказ по окну редактирования получает отдельное сообщение с лимитом.
func (a *Actions) UpdateComment(ctx context.Context, req UpdateCommentRequest) Result {
	const op = "actions/comments/UpdateComment"

	user, failRes := a.actor(ctx)
	if failRes != nil {
		return *failRes
	}

	comment, err := a.svc.UpdateComment(ctx, service.UpdateCommentInput{
		Actor:     *user,
		CommentID: req.CommentID,
		Body:      req.Body,
	})
	if err != nil {
		if errors.Is(err, service.ErrEditWindowExpired) {
			minutes := int(a.cfg.Limits.EditWindow.Minutes())
			return fail(CodeFailedPrecondition,
				fmt.Sprintf("Comment can no longer be edited (%d minute limit exceeded)", minutes))
		}

		return failFromError(ctx, op, err,
			"You can only edit your own comments",
			"Comment text is required")
	}

	return ok(comment)
}

// DeleteComment мягко удаляет комментарий.
func (a *Actions) DeleteComment(ctx context.Context, req DeleteCommentRequest) Result {
	const op = "actions/comments/DeleteComment"

	user, failRes := a.actor(ctx)
	if failRes != nil {
		return *failRes
	}

	comment, err := a.svc.DeleteComment(ctx, service.DeleteCommentInput{
		Actor:     *user,
		CommentID: req.CommentID,
	})
	if err != nil {
		return failFromError(ctx, op, err,
			"You can only delete your own comments",
			"Comment id is required")
	}

	return ok(comment)
}

// Threads возвращает страницу тредов контекста.
func (a *Actions) Threads(ctx context.Context, req ThreadsRequest) Result {
	const op = "actions/comments/Threads"

	user, failRes := a.actor(ctx)
	if failRes != nil {
		return *failRes
	}

	page, err := a.svc.Threads(ctx, service.ThreadsInput{
		Actor:       *user,
		BrandID:     req.BrandID,
		ContextType: models.ContextType(req.ContextType),
		ContextID:   req.ContextID,
		PageSize:    req.PageSize,
		PageToken:   req.PageToken,
	})
	if err != nil {
		return failFromError(ctx, op, err,
			"You don't have access to this brand",
			"Invalid context")
	}

	return ok(page)
}

// Replies возвращает страницу ответов одной ветки.
func (a *Actions) Replies(ctx context.Context, req RepliesRequest) Result {
	const op = "actions/comments/Replies"

	user, failRes := a.actor(ctx)
	if failRes != nil {
		return *failRes
	}

	page, err := a.svc.Replies(ctx, service.RepliesInput{
		Actor:      *user,
		ParentID:   req.ParentID,
		Limit:      req.Limit,
		StartAfter: req.StartAfter,
	})
	if err != nil {
		return failFromError(ctx, op, err,
			"You don't have access to this brand",
			"Parent comment id is required")
	}

	return ok(page)
}

// CommentContext возвращает агрегат счётчиков контекста.
func (a *Actions) CommentContext(ctx context.Context, req ContextRequest) Result {
	const op = "actions/comments/CommentContext"

	user, failRes := a.actor(ctx)
	if failRes != nil {
		return *failRes
	}

	agg, err := a.svc.Context(ctx, service.ContextInput{
		Actor:       *user,
		BrandID:     req.BrandID,
		ContextType: models.ContextType(req.ContextType),
		ContextID:   req.ContextID,
	})
	if err != nil {
		return failFromError(ctx, op, err,
			"You don't have access to this brand",
			"Invalid context")
	}

	return ok(agg)
}
