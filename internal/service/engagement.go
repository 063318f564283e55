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

// CopyEngagementInput — перенос вовлечённости ассета в новый контекст
// (например, при публикации изображения в профиль бренда).
type CopyEngagementInput struct {
	Actor         auth.User
	BrandID       string
	SourceAssetID string
	TargetAssetID string
	TargetType    models.ContextType
}

// ExportCampaignInput — снятие слепка вовлечённости кампании.
type ExportCampaignInput struct {
	Actor      auth.User
	BrandID    string
	CampaignID string
}

// ImportCampaignInput — восстановление слепка под новым id кампании.
type ImportCampaignInput struct {
	Actor      auth.User
	BrandID    string
	CampaignID string
	Bundle     models.CampaignBundle
}

// CopyEngagement — перенос реакций, статистики, комментариев и жалоб ассета
// в целевой контекст. Требует членства в бренде назначения.
func (s *Service) CopyEngagement(ctx context.Context, in CopyEngagementInput) error {
	const op = "service/engagement/CopyEngagement"

	lg := log.From(ctx).With(
		"op", op,
		"uid", in.Actor.UID,
		"brand_id", in.BrandID,
		"source_asset_id", in.SourceAssetID,
		"target_asset_id", in.TargetAssetID,
	)

	in.BrandID = strings.TrimSpace(in.BrandID)
	in.SourceAssetID = strings.TrimSpace(in.SourceAssetID)
	in.TargetAssetID = strings.TrimSpace(in.TargetAssetID)

	if in.BrandID == "" || in.SourceAssetID == "" || in.TargetAssetID == "" || !in.TargetType.Valid() {
		lg.Warn("invalid copy parameters")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.directory.RequireBrandAccess(ctx, in.Actor.UID, in.BrandID); err != nil {
		if errors.Is(err, auth.ErrForbidden) {
			lg.Warn("brand access denied")
			return fmt.Errorf("%s: %w", op, ErrForbidden)
		}

		lg.Error("directory error", "err", err)
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if err := s.storage.CopyEngagement(ctx, storage.CopyEngagementInput{
		BrandID:       in.BrandID,
		SourceAssetID: in.SourceAssetID,
		TargetAssetID: in.TargetAssetID,
		TargetType:    in.TargetType,
	}); err != nil {
		lg.Error("storage error on CopyEngagement", "err", err)
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return nil
}

// ShareContentToProfile — best-effort перенос вовлечённости при публикации
// контента в профиль бренда. Публикация не должна падать из-за проблем
// с переносом, поэтому ошибки логируются и не возвращаются вызывающему.
func (s *Service) ShareContentToProfile(ctx context.Context, in CopyEngagementInput) {
	const op = "service/engagement/ShareContentToProfile"

	in.TargetType = models.ContextBrandProfile

	if err := s.CopyEngagement(ctx, in); err != nil {
		log.From(ctx).Warn("engagement copy skipped",
			"op", op,
			"source_asset_id", in.SourceAssetID,
			"target_asset_id", in.TargetAssetID,
			"err", err,
		)
	}
}

// ExportCampaignComments — слепок вовлечённости кампании для backup/restore.
// Только для менеджеров бренда.
func (s *Service) ExportCampaignComments(ctx context.Context, in ExportCampaignInput) (*models.CampaignBundle, error) {
	const op = "service/engagement/ExportCampaignComments"

	lg := log.From(ctx).With("op", op, "uid", in.Actor.UID, "brand_id", in.BrandID, "campaign_id", in.CampaignID)

	key, err := normalizeContext(in.BrandID, models.ContextCampaign, in.CampaignID)
	if err != nil {
		lg.Warn("invalid campaign address")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.requireManager(ctx, in.Actor.UID, key.BrandID); err != nil {
		lg.Warn("export denied")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bundle, err := s.storage.ExportCampaign(ctx, key)
	if err != nil {
		lg.Error("storage error on ExportCampaign", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return bundle, nil
}

// ImportCampaignComments — восстановление слепка под новым id кампании.
// Только для менеджеров бренда.
func (s *Service) ImportCampaignComments(ctx context.Context, in ImportCampaignInput) error {
	const op = "service/engagement/ImportCampaignComments"

	lg := log.From(ctx).With("op", op, "uid", in.Actor.UID, "brand_id", in.BrandID, "campaign_id", in.CampaignID)

	key, err := normalizeContext(in.BrandID, models.ContextCampaign, in.CampaignID)
	if err != nil {
		lg.Warn("invalid campaign address")
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.requireManager(ctx, in.Actor.UID, key.BrandID); err != nil {
		lg.Warn("import denied")
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.ImportCampaign(ctx, key, in.Bundle); err != nil {
		lg.Error("storage error on ImportCampaign", "err", err)
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return nil
}
