package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/casaflow/backend/api/transport"
	"github.com/casaflow/backend/domain"
	"github.com/casaflow/backend/pkg/httpcontext"
	campaignUC "github.com/casaflow/backend/usecase/campaign"
	clientsUC "github.com/casaflow/backend/usecase/clients"
)

type CampaignHandler struct {
	baseHandler
	uc      *campaignUC.UseCase
	clients *clientsUC.UseCase
	mailer  campaignUC.Mailer
}

func NewCampaignHandler(uc *campaignUC.UseCase, clients *clientsUC.UseCase, mailer campaignUC.Mailer, adapter *httpcontext.Adapter, logger *zap.Logger) *CampaignHandler {
	return &CampaignHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		clients:     clients,
		mailer:      mailer,
	}
}

// @Summary List campaigns
// @Tags campaigns
// @Router /api/v1/campaigns [get]
func (h *CampaignHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	campaigns, err := h.uc.ListCampaigns(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, campaigns)
}

// @Summary Create campaign
// @Tags campaigns
// @Router /api/v1/campaigns [post]
func (h *CampaignHandler) Create(ctx *fasthttp.RequestCtx) {
	var campaign domain.Campaign
	if err := json.Unmarshal(ctx.PostBody(), &campaign); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateCampaign(stdCtx, &campaign)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update campaign
// @Tags campaigns
// @Router /api/v1/campaigns/{id} [put]
func (h *CampaignHandler) Update(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	var campaign domain.Campaign
	if err := json.Unmarshal(ctx.PostBody(), &campaign); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}
	campaign.ID = id

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateCampaign(stdCtx, &campaign)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete campaign
// @Tags campaigns
// @Router /api/v1/campaigns/{id} [delete]
func (h *CampaignHandler) Delete(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteCampaign(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Send campaign to its matched audience
// @Tags campaigns
// @Router /api/v1/campaigns/{id}/send [post]
func (h *CampaignHandler) Send(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	campaign, recipients, err := h.uc.Send(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	// The engine only resolves the audience; recording receipt on each
	// client and handing the batch to the mail provider happen here.
	for i := range recipients {
		if _, err := h.clients.AddActivity(stdCtx, recipients[i].ID, "Campaign received", campaign.Name); err != nil {
			h.logger.Warn("failed to record campaign receipt",
				zap.String("client_id", recipients[i].ID),
				zap.Error(err))
		}
	}
	if h.mailer != nil && len(recipients) > 0 {
		if err := h.mailer.Send(stdCtx, campaign, recipients); err != nil {
			h.logger.Warn("campaign delivery hand-off failed", zap.Error(err))
		}
	}

	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"campaign":   campaign,
		"recipients": len(recipients),
	})
}
