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

// FlagCommentInput — подача жалобы на комментарий.
type FlagCommentInput struct {
	Actor     auth.User
	CommentID string
	Reason    models.FlagReason
	Notes     string
}

// FlagsInput — выдача жалоб бренда для очереди модерации.
type FlagsInput struct {
	Actor   auth.User
	BrandID string
	Status  models.FlagStatus
	Limit   int32
}

// ResolveFlagInput — решение модератора по открытой жалобе.
type ResolveFlagInput struct {
	Actor      auth.User
	FlagID     string
	Resolution models.FlagResolution
	Notes      string
}

// FlagComment — подача жалобы на комментарий.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — неизвестная причина либо заметки длиннее
//     limits.notes_max;
//   - ErrNotFound — комментарий отсутствует или уже удалён;
//   - ErrForbidden — нет доступа к контексту комментария;
//   - ErrAlreadyFlagged — открытая жалоба этой пары уже существует.
func (s *Service) FlagComment(ctx context.Context, in FlagCommentInput) (*models.CommentFlag, error) {
	const op = "service/moderation/FlagComment"

	in.CommentID = strings.TrimSpace(in.CommentID)
	lg := log.From(ctx).With("op", op, "uid", in.Actor.UID, "comment_id", in.CommentID)

	if in.CommentID == "" {
		lg.Warn("invalid argument: empty comment id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if !in.Reason.Valid() {
		lg.Warn("invalid argument: unknown reason", "reason", string(in.Reason))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	in.Notes = strings.TrimSpace(in.Notes)
	if int32(len([]rune(in.Notes))) > s.cfg.Limits.NotesMax {
		lg.Warn("invalid argument: notes too long")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	comm, err := s.storage.CommentByID(ctx, in.CommentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("comment not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on CommentByID", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	// Жаловаться на удалённый комментарий нечего: текста уже нет.
	if comm.Status == models.StatusDeleted {
		lg.Warn("comment already deleted")
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	if err := s.requireContextAccess(ctx, in.Actor.UID, comm.Key()); err != nil {
		lg.Warn("context access denied")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	flag, err := s.storage.CreateFlag(ctx, models.CommentFlag{
		CommentID:     in.CommentID,
		Reason:        in.Reason,
		Notes:         in.Notes,
		FlaggedBy:     in.Actor.UID,
		FlaggedByName: in.Actor.DisplayName,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicateFlag):
			lg.Warn("duplicate open flag")
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyFlagged)
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("comment not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on CreateFlag", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return flag, nil
}

// Flags — очередь модерации бренда. Только для менеджеров.
func (s *Service) Flags(ctx context.Context, in FlagsInput) ([]models.CommentFlag, error) {
	const op = "service/moderation/Flags"

	in.BrandID = strings.TrimSpace(in.BrandID)
	lg := log.From(ctx).With("op", op, "uid", in.Actor.UID, "brand_id", in.BrandID)

	if in.BrandID == "" {
		lg.Warn("invalid argument: empty brand id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if in.Status != "" &&
		in.Status != models.FlagOpen && in.Status != models.FlagResolved && in.Status != models.FlagDismissed {
		lg.Warn("invalid argument: unknown status", "status", string(in.Status))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.requireManager(ctx, in.Actor.UID, in.BrandID); err != nil {
		lg.Warn("moderation access denied")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	flags, err := s.storage.ListFlags(ctx, in.BrandID, in.Status, in.Limit)
	if err != nil {
		lg.Error("storage error on ListFlags", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return flags, nil
}

// ResolveFlag — решение модератора по открытой жалобе. Только для менеджеров
// бренда, к которому привязана жалоба.
func (s *Service) ResolveFlag(ctx context.Context, in ResolveFlagInput) (*models.CommentFlag, error) {
	const op = "service/moderation/ResolveFlag"

	in.FlagID = strings.TrimSpace(in.FlagID)
	lg := log.From(ctx).With("op", op, "uid", in.Actor.UID, "flag_id", in.FlagID)

	if in.FlagID == "" {
		lg.Warn("invalid argument: empty flag id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if !in.Resolution.Valid() {
		lg.Warn("invalid argument: unknown resolution", "resolution", string(in.Resolution))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	in.Notes = strings.TrimSpace(in.Notes)
	if int32(len([]rune(in.Notes))) > s.cfg.Limits.NotesMax {
		lg.Warn("invalid argument: notes too long")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	flag, err := s.storage.FlagByID(ctx, in.FlagID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("flag not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on FlagByID", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if err := s.requireManager(ctx, in.Actor.UID, flag.BrandID); err != nil {
		lg.Warn("moderation access denied")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	closed, err := s.storage.ResolveFlag(ctx, in.FlagID, storage.ReviewInput{
		Resolution:      in.Resolution,
		ReviewedBy:      in.Actor.UID,
		ReviewedByName:  in.Actor.DisplayName,
		ResolutionNotes: in.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("flag not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		case errors.Is(err, storage.ErrFlagNotOpen):
			lg.Warn("flag already closed")
			return nil, fmt.Errorf("%s: %w", op, ErrFlagNotOpen)
		default:
			lg.Error("storage error on ResolveFlag", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return closed, nil
}

// requireManager проверяет роль менеджера в бренде.
func (s *Service) requireManager(ctx context.Context, uid, brandID string) error {
	if err := s.directory.RequireBrandRole(ctx, uid, brandID, auth.RoleManager); err != nil {
		if errors.Is(err, auth.ErrForbidden) {
			return ErrForbidden
		}

		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return nil
}
