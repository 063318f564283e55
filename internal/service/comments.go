package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jeanlaboratories/momentum/internal/auth"
	"github.com/jeanlaboratories/momentum/internal/models"
	"github.com/jeanlaboratories/momentum/internal/storage"
	"github.com/jeanlaboratories/momentum/pkg/log"
)

// Входные структуры сервисного слоя.

// CreateCommentInput — создание корневого комментария или ответа.
// Правила:
//   - ContextType/ContextID обязательны; для brand-scoped типов обязателен
//     и BrandID, unified-типы (image/video) бренда не требуют;
//   - если ParentID не пуст, создаётся ответ на корневой комментарий того же
//     контекста (ровно один уровень вложенности);
//   - Body нормализуется (TrimSpace) и не должен быть пустым.
type CreateCommentInput struct {
	Actor       auth.User
	BrandID     string
	ContextType models.ContextType
	ContextID   string
	ParentID    string
	Body        string
}

// UpdateCommentInput — редактирование текста комментария.
type UpdateCommentInput struct {
	Actor     auth.User
	CommentID string
	Body      string
}

// DeleteCommentInput — мягкое удаление комментария.
type DeleteCommentInput struct {
	Actor     auth.User
	CommentID string
}

// ContextInput — чтение агрегата счётчиков контекста.
type ContextInput struct {
	Actor       auth.User
	BrandID     string
	ContextType models.ContextType
	ContextID   string
}

// requireContextAccess проверяет доступ пользователя к контексту.
// Unified-поверхности (image/video) доступны любому аутентифицированному
// пользователю; brand-scoped требуют членства в бренде.
func (s *Service) requireContextAccess(ctx context.Context, uid string, key models.ContextKey) error {
	if key.Unified() {
		return nil
	}

	if err := s.directory.RequireBrandAccess(ctx, uid, key.BrandID); err != nil {
		if errors.Is(err, auth.ErrForbidden) {
			return ErrForbidden
		}

		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return nil
}

// isBrandManager сообщает, является ли пользователь менеджером бренда.
// Для пустого brandID (unified-контексты) менеджеров нет.
func (s *Service) isBrandManager(ctx context.Context, uid, brandID string) (bool, error) {
	if brandID == "" {
		return false, nil
	}

	member, err := s.directory.BrandMember(ctx, brandID, uid)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return member != nil && member.Role == auth.RoleManager, nil
}

// normalizeContext валидирует и нормализует адрес контекста.
func normalizeContext(brandID string, t models.ContextType, contextID string) (models.ContextKey, error) {
	if !t.Valid() {
		return models.ContextKey{}, ErrInvalidArgument
	}

	contextID = strings.TrimSpace(contextID)
	if contextID == "" {
		return models.ContextKey{}, ErrInvalidArgument
	}

	brandID = strings.TrimSpace(brandID)
	if !t.Unified() && brandID == "" {
		return models.ContextKey{}, ErrInvalidArgument
	}

	return models.NewContextKey(brandID, t, contextID), nil
}

// CreateComment — бизнес-операция создания комментария.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — пустой текст, неизвестный тип контекста,
//     отсутствующий BrandID для brand-scoped контекста;
//   - ErrForbidden — нет членства в бренде;
//   - ErrParentNotFound — родитель отсутствует, не корень или из другого
//     контекста;
//   - ErrInternal — прочие ошибки стораджа/БД/контекста.
func (s *Service) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	const op = "service/comments/CreateComment"

	lg := log.From(ctx).With(
		"op", op,
		"uid", in.Actor.UID,
		"context_type", string(in.ContextType),
		"context_id", in.ContextID,
		"parent_id", in.ParentID,
	)

	key, err := normalizeContext(in.BrandID, in.ContextType, in.ContextID)
	if err != nil {
		lg.Warn("invalid context address")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	in.Body = strings.TrimSpace(in.Body)
	if in.Body == "" {
		lg.Warn("invalid argument: empty body")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.requireContextAccess(ctx, in.Actor.UID, key); err != nil {
		lg.Warn("context access denied")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	comm := models.Comment{
		BrandID:        key.BrandID,
		ContextType:    key.Type,
		ContextID:      key.ContextID,
		ParentID:       strings.TrimSpace(in.ParentID),
		Body:           in.Body,
		CreatedBy:      in.Actor.UID,
		CreatedByName:  in.Actor.DisplayName,
		CreatedByPhoto: in.Actor.PhotoURL,
	}

	result, err := s.storage.CreateComment(ctx, comm)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrParentNotFound):
			lg.Warn("parent not found")
			return nil, fmt.Errorf("%s: %w", op, ErrParentNotFound)
		default:
			lg.Error("storage error on CreateComment", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return result, nil
}

// canTouchComment проверяет право редактировать/удалять комментарий:
// автор либо менеджер бренда комментария. Возвращает признак «менеджер»
// для последующей проверки окна редактирования.
func (s *Service) canTouchComment(ctx context.Context, actor auth.User, comm *models.Comment) (bool, error) {
	manager, err := s.isBrandManager(ctx, actor.UID, comm.BrandID)
	if err != nil {
		return false, err
	}

	if comm.CreatedBy != actor.UID && !manager {
		return false, ErrForbidden
	}

	return manager, nil
}

// UpdateComment — редактирование текста комментария автором или менеджером.
//
// Правила:
//   - автор может редактировать только в пределах окна (limits.edit_window
//     от createdAt); менеджер бренда ограничение обходит;
//   - первое редактирование кладёт снимок исходной версии в revisionHistory;
//   - удалённый комментарий не редактируется.
func (s *Service) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	const op = "service/comments/UpdateComment"

	in.CommentID = strings.TrimSpace(in.CommentID)
	lg := log.From(ctx).With("op", op, "uid", in.Actor.UID, "comment_id", in.CommentID)

	if in.CommentID == "" {
		lg.Warn("invalid argument: empty comment id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	in.Body = strings.TrimSpace(in.Body)
	if in.Body == "" {
		lg.Warn("invalid argument: empty body")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	current, err := s.storage.CommentByID(ctx, in.CommentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("comment not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on CommentByID", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if current.Status == models.StatusDeleted {
		lg.Warn("comment already deleted")
		return nil, fmt.Errorf("%s: %w", op, ErrAlreadyDeleted)
	}

	manager, err := s.canTouchComment(ctx, in.Actor, current)
	if err != nil {
		lg.Warn("edit denied", "err", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !manager {
		createdAt, perr := models.ParseISO(current.CreatedAt)
		if perr != nil {
			lg.Error("unparsable createdAt", "created_at", current.CreatedAt, "err", perr)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}

		if time.Since(createdAt) > s.cfg.Limits.EditWindow {
			lg.Warn("edit window expired")
			return nil, fmt.Errorf("%s: %w", op, ErrEditWindowExpired)
		}
	}

	// Снимок исходной версии — только перед первым редактированием.
	var rev *models.Revision
	if len(current.RevisionHistory) == 0 {
		rev = &models.Revision{
			Body:     current.Body,
			EditedAt: current.CreatedAt,
			EditedBy: current.CreatedBy,
		}
	}

	updated, err := s.storage.UpdateComment(ctx, in.CommentID, in.Body, models.NowISO(), rev)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("comment not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		case errors.Is(err, storage.ErrAlreadyDeleted):
			lg.Warn("comment already deleted")
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyDeleted)
		default:
			lg.Error("storage error on UpdateComment", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return updated, nil
}

// DeleteComment — мягкое удаление автором или менеджером бренда.
// Текст замещается сентинелом, ответы и слот в треде сохраняются.
func (s *Service) DeleteComment(ctx context.Context, in DeleteCommentInput) (*models.Comment, error) {
	const op = "service/comments/DeleteComment"

	in.CommentID = strings.TrimSpace(in.CommentID)
	lg := log.From(ctx).With("op", op, "uid", in.Actor.UID, "comment_id", in.CommentID)

	if in.CommentID == "" {
		lg.Warn("invalid argument: empty comment id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	current, err := s.storage.CommentByID(ctx, in.CommentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("comment not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on CommentByID", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if _, err := s.canTouchComment(ctx, in.Actor, current); err != nil {
		lg.Warn("delete denied", "err", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	deleted, err := s.storage.SoftDeleteComment(ctx, in.CommentID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("comment not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		case errors.Is(err, storage.ErrAlreadyDeleted):
			lg.Warn("comment already deleted")
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyDeleted)
		default:
			lg.Error("storage error on SoftDeleteComment", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return deleted, nil
}

// Context — чтение агрегата счётчиков контекста.
// Отсутствующий агрегат возвращается нулевым, это не ошибка.
func (s *Service) Context(ctx context.Context, in ContextInput) (*models.CommentContext, error) {
	const op = "service/comments/Context"

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

	agg, err := s.storage.ContextByKey(ctx, key)
	if err != nil {
		lg.Error("storage error on ContextByKey", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return agg, nil
}
