package actions

import (
	"context"

	"github.com/jeanlaboratories/momentum/internal/models"
	"github.com/jeanlaboratories/momentum/internal/service"
)

// FlagCommentRequest — подача жалобы на комментарий.
type FlagCommentRequest struct {
	CommentID string `json:"commentId"`
	Reason    string `json:"reason"`
	Notes     string `json:"notes,omitempty"`
}

// FlagsRequest — очередь модерации бренда.
type FlagsRequest struct {
	BrandID string `json:"brandId"`
	Status  string `json:"status,omitempty"`
	Limit   int32  `json:"limit,omitempty"`
}

// ResolveFlagRequest — решение модератора по открытой жалобе.
type ResolveFlagRequest struct {
	FlagID     string `json:"flagId"`
	Resolution string `json:"resolution"`
	Notes      string `json:"notes,omitempty"`
}

// FlagComment регистрирует жалобу от текущего пользователя.
func (a *Actions) FlagComment(ctx context.Context, req FlagCommentRequest) Result {
	const op = "actions/moderation/FlagComment"

	user, failRes := a.actor(ctx)
	if failRes != nil {
		return *failRes
	}

	flag, err := a.svc.FlagComment(ctx, service.FlagCommentInput{
		Actor:     *user,
		CommentID: req.CommentID,
		Reason:    models.FlagReason(req.Reason),
		Notes:     req.Notes,
	})
	if err != nil {
		return failFromError(ctx, op, err,
			"You don't have access to this brand",
			"A valid flag reason is required")
	}

	return ok(flag)
}

// Flags возвращает очередь модерации бренда. Только для менеджеров.
func (a *Actions) Flags(ctx context.Context, req FlagsRequest) Result {
	const op = "actions/moderation/Flags"

	user, failRes := a.actor(ctx)
	if failRes != nil {
		return *failRes
	}

	flags, err := a.svc.Flags(ctx, service.FlagsInput{
		Actor:   *user,
		BrandID: req.BrandID,
		Status:  models.FlagStatus(req.Status),
		Limit:   req.Limit,
	})
	if err != nil {
		return failFromError(ctx, op, err,
			"Only managers can view flags",
			"Brand id is required")
	}

	return ok(flags)
}

// ResolveFlag закрывает открытую жалобу решением модератора.
func (a *Actions) ResolveFlag(ctx context.Context, req ResolveFlagRequest) Result {
	const op = "actions/moderation/ResolveFlag"

	user, failRes := a.actor(ctx)
	if failRes != nil {
		return *failRes
	}

	flag, err := a.svc.ResolveFlag(ctx, service.ResolveFlagInput{
		Actor:      *user,
		FlagID:     req.FlagID,
		Resolution: models.FlagResolution(req.Resolution),
		Notes:      req.Notes,
	})
	if err != nil {
		return failFromError(ctx, op, err,
			"Only managers can review flags",
			"A valid resolution is required")
	}

	return ok(flag)
}
