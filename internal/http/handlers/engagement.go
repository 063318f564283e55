package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jeanlaboratories/momentum/internal/actions"
)

func (h *Handlers) ShareContentToProfile(w http.ResponseWriter, r *http.Request) {
	var req actions.ShareContentRequest
	if err := decodeStrict(r, &req); err != nil {
		writeResult(w, badRequest("Invalid request body"))
		return
	}

	writeResult(w, h.Actions.ShareContentToProfile(r.Context(), req))
}

func (h *Handlers) ExportCampaign(w http.ResponseWriter, r *http.Request) {
	req := actions.ExportCampaignRequest{
		BrandID:    chi.URLParam(r, "brand_id"),
		CampaignID: chi.URLParam(r, "campaign_id"),
	}

	writeResult(w, h.Actions.ExportCampaign(r.Context(), req))
}

func (h *Handlers) ImportCampaign(w http.ResponseWriter, r *http.Request) {
	var req actions.ImportCampaignRequest
	if err := decodeStrict(r, &req); err != nil {
		writeResult(w, badRequest("Invalid request body"))
		return
	}

	req.BrandID = chi.URLParam(r, "brand_id")
	req.CampaignID = chi.URLParam(r, "campaign_id")
	writeResult(w, h.Actions.ImportCampaign(r.Context(), req))
}
