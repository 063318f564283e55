package actions

import (
	"context"

	"github.com/jeanlaboratories/momentum/internal/models"
	"github.com/jeanlaboratories/momentum/internal/service"
)

// ShareContentRequest — публикация контента в профиль бренда с переносом
// накопленной вовлечённости.
type ShareContentRequest struct {
	BrandID       string `json:"brandId"`
	SourceAssetID string `json:"sourceAssetId"`
	TargetAssetID string `json:"targetAssetId"`
}

// ExportCampaignRequest — снятие слепка вовлечённости кампании.
type ExportCampaignRequest struct {
	BrandID    string `json:"brandId"`
	CampaignID string `json:"campaignId"`
}

// ImportCampaignRequest — восстановление слепка под новым id кампании.
type ImportCampaignRequest struct {
	BrandID    string                `json:"brandId"`
	CampaignID string                `json:"campaignId"`
	Bundle     models.CampaignBundle `json:"bundle"`
}

// ShareContentToProfile переносит вовлечённость ассета в профиль бренда.
// Перенос best-effort: его сбой не считается сбоем публикации, поэтому
// операция всегда отвечает успехом после аутентификации.
func (a *Actions) ShareContentToProfile(ctx context.Context, req ShareContentRequest) Result {
	user, failRes := a.actor(ctx)
	if failRes != nil {
		return *failRes
	}

	a.svc.ShareContentToProfile(ctx, service.CopyEngagementInput{
		Actor:         *user,
		BrandID:       req.BrandID,
		SourceAssetID: req.SourceAssetID,
		TargetAssetID: req.TargetAssetID,
	})

	return ok(nil)
}

// ExportCampaign снимает слепок вовлечённости кампании. Только для менеджеров.
func (a *Actions) ExportCampaign(ctx context.Context, req ExportCampaignRequest) Result {
	const op = "actions/engagement/ExportCampaign"

	user, failRes := a.actor(ctx)
	if failRes != nil {
		return *failRes
	}

	bundle, err := a.svc.ExportCampaignComments(ctx, service.ExportCampaignInput{
		Actor:      *user,
		BrandID:    req.BrandID,
		CampaignID: req.CampaignID,
	})
	if err != nil {
		return failFromError(ctx, op, err,
			"Only managers can export campaign comments",
			"Brand id and campaign id are required")
	}

	return ok(bundle)
}

// ImportCampaign восстанавливает слепок под новым id кампании.
// Только для менеджеров.
func (a *Actions) ImportCampaign(ctx context.Context, req ImportCampaignRequest) Result {
	const op = "actions/engagement/ImportCampaign"

	user, failRes := a.actor(ctx)
	if failRes != nil {
		return *failRes
	}

	if err := a.svc.ImportCampaignComments(ctx, service.ImportCampaignInput{
		Actor:      *user,
		BrandID:    req.BrandID,
		CampaignID: req.CampaignID,
		Bundle:     req.Bundle,
	}); err != nil {
		return failFromError(ctx, op, err,
			"Only managers can import campaign comments",
			"Brand id and campaign id are required")
	}

	return ok(nil)
}
