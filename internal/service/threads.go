package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jeanlaboratories/momentum/internal/auth"
	"github.com/jeanlaboratories/momentum/internal/models"
	"github.com/jeanlaboratories/momentum/internal/storage"
	"github.com/jeanlaboratories/momentum/pkg/log"
)

// ThreadsInput — параметры постраничной выдачи тредов контекста.
type ThreadsInput struct {
	Actor       auth.User
	BrandID     string
	ContextType models.ContextType
	ContextID   string
	PageSize    int32
	PageToken   string
}

// RepliesInput — параметры постраничной выдачи ответов одной ветки.
type RepliesInput struct {
	Actor      auth.User
	ParentID   string
	Limit      int32
	StartAfter string
}

// Threads — постраничная выдача тредов контекста: корневые комментарии
// (новые первыми) с первыми ответами каждого.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — неверный адрес контекста;
//   - ErrForbidden — нет членства в бренде;
//   - ErrInvalidCursor — битый page_token;
//   - ErrInternal — иные ошибки стораджа.
func (s *Service) Threads(ctx context.Context, in ThreadsInput) (*models.ThreadPage, error) {
	const op = "service/threads/Threads"

	lg := log.From(ctx).With(
		"op", op,
		"uid", in.Actor.UID,
		"context_type", string(in.ContextType),
		"context_id", in.ContextID,
	)

	key, err := normalizeContext(in.BrandID, in.ContextType, in.ContextID)
	if err != nil {
		lg.Warn("invalid context address")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.requireContextAccess(ctx, in.Actor.UID, key); err != nil {
		lg.Warn("context access denied")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	page, err := s.storage.ListThreads(ctx, key, models.ListParams{
		PageSize:  in.PageSize,
		PageToken: in.PageToken,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidCursor):
			lg.Warn("invalid page token")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCursor)
		default:
			lg.Error("storage error on ListThreads", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return page, nil
}

// Replies — постраничная выдача ответов одной ветки (старые первыми).
// Доступ проверяется по контексту родителя.
func (s *Service) Replies(ctx context.Context, in RepliesInput) (*models.ReplyPage, error) {
	const op = "service/threads/Replies"

	in.ParentID = strings.TrimSpace(in.ParentID)
	lg := log.From(ctx).With("op", op, "uid", in.Actor.UID, "parent_id", in.ParentID)

	if in.ParentID == "" {
		lg.Warn("invalid argument: empty parent id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	parent, err := s.storage.CommentByID(ctx, in.ParentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("parent not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on CommentByID", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if err := s.requireContextAccess(ctx, in.Actor.UID, parent.Key()); err != nil {
		lg.Warn("context access denied")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	page, err := s.storage.ListReplies(ctx, in.ParentID, in.Limit, strings.TrimSpace(in.StartAfter))
	if err != nil {
		lg.Error("storage error on ListReplies", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return page, nil
}
