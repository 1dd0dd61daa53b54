package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/casaflow/backend/api/transport"
	"github.com/casaflow/backend/domain"
	"github.com/casaflow/backend/pkg/httpcontext"
	clientsUC "github.com/casaflow/backend/usecase/clients"
)

type ClientHandler struct {
	baseHandler
	uc *clientsUC.UseCase
}

func NewClientHandler(uc *clientsUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List clients
// @Tags clients
// @Router /api/v1/clients [get]
func (h *ClientHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	clients, err := h.uc.ListClients(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, clients)
}

// @Summary Create client
// @Tags clients
// @Router /api/v1/clients [post]
func (h *ClientHandler) Create(ctx *fasthttp.RequestCtx) {
	var client domain.Client
	if err := json.Unmarshal(ctx.PostBody(), &client); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateClient(stdCtx, &client)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update client
// @Tags clients
// @Router /api/v1/clients/{id} [put]
func (h *ClientHandler) Update(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	var client domain.Client
	if err := json.Unmarshal(ctx.PostBody(), &client); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}
	client.ID = id

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateClient(stdCtx, &client)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete client
// @Tags clients
// @Router /api/v1/clients/{id} [delete]
func (h *ClientHandler) Delete(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteClient(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Set client status
// @Tags clients
// @Router /api/v1/clients/{id}/status [put]
func (h *ClientHandler) SetStatus(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	var req transport.ClientStatusRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	client, err := h.uc.SetStatus(stdCtx, id, domain.ClientStatus(req.Status))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, client)
}

// @Summary Append an activity entry
// @Tags clients
// @Router /api/v1/clients/{id}/activity [post]
func (h *ClientHandler) AddActivity(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	var req transport.ActivityRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Activity == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	client, err := h.uc.AddActivity(stdCtx, id, req.Activity, req.Details)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, client)
}
