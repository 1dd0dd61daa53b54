package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/casaflow/backend/api/transport"
	"github.com/casaflow/backend/domain"
	"github.com/casaflow/backend/internal/middleware"
	"github.com/casaflow/backend/pkg/httpcontext"
	"github.com/casaflow/backend/usecase/listings"
	pipelineUC "github.com/casaflow/backend/usecase/pipeline"
)

type PropertyHandler struct {
	baseHandler
	listings *listings.UseCase
	pipeline *pipelineUC.UseCase
}

func NewPropertyHandler(listingsUC *listings.UseCase, pipeline *pipelineUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *PropertyHandler {
	return &PropertyHandler{
		baseHandler: newBaseHandler(adapter, logger),
		listings:    listingsUC,
		pipeline:    pipeline,
	}
}

// @Summary List properties
// @Tags properties
// @Router /api/v1/properties [get]
func (h *PropertyHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	properties, err := h.listings.ListProperties(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, properties)
}

// @Summary Get one property
// @Tags properties
// @Router /api/v1/properties/{id} [get]
func (h *PropertyHandler) Get(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	property, err := h.listings.GetProperty(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, property)
}

// @Summary Create property
// @Tags properties
// @Router /api/v1/properties [post]
func (h *PropertyHandler) Create(ctx *fasthttp.RequestCtx) {
	var property domain.Property
	if err := json.Unmarshal(ctx.PostBody(), &property); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.listings.CreateProperty(stdCtx, &property)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update property
// @Tags properties
// @Router /api/v1/properties/{id} [put]
func (h *PropertyHandler) Update(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	var property domain.Property
	if err := json.Unmarshal(ctx.PostBody(), &property); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}
	property.ID = id

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.listings.UpdateProperty(stdCtx, &property)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete property
// @Tags properties
// @Router /api/v1/properties/{id} [delete]
func (h *PropertyHandler) Delete(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.listings.DeleteProperty(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary AI-assisted property search
// @Tags properties
// @Router /api/v1/properties/search [post]
func (h *PropertyHandler) Search(ctx *fasthttp.RequestCtx) {
	var req transport.SearchRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	properties, err := h.listings.Search(stdCtx, req.Query)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, properties)
}

// @Summary Generate marketing description
// @Tags properties
// @Router /api/v1/properties/{id}/describe [post]
func (h *PropertyHandler) Describe(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	description, err := h.listings.Describe(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"description": description})
}

// @Summary Move property to a pipeline stage
// @Tags pipeline
// @Router /api/v1/properties/{id}/stage [put]
func (h *PropertyHandler) MoveStage(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	var req transport.MoveStageRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	var stage *domain.PipelineStage
	if req.Stage != nil {
		s := domain.PipelineStage(*req.Stage)
		stage = &s
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	property, err := h.pipeline.MoveToStage(stdCtx, id, stage)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, property)
}

// @Summary Assign a client to the property
// @Tags pipeline
// @Router /api/v1/properties/{id}/client [put]
func (h *PropertyHandler) AssignClient(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	var req transport.AssignClientRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	property, err := h.pipeline.AssignClient(stdCtx, id, req.ClientID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, property)
}

// @Summary Append an activity entry
// @Tags pipeline
// @Router /api/v1/properties/{id}/activity [post]
func (h *PropertyHandler) AddActivity(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	var req transport.ActivityRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Activity == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	agentID := ""
	if session := middleware.SessionFromRequest(ctx); session != nil {
		agentID = session.User.ID
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	property, err := h.pipeline.AddActivity(stdCtx, id, pipelineUC.ActivityInput{
		Activity: req.Activity,
		Details:  req.Details,
		AgentID:  agentID,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, property)
}

// @Summary Replace an agent's property portfolio
// @Tags pipeline
// @Router /api/v1/agents/assignments [put]
func (h *PropertyHandler) BulkAssign(ctx *fasthttp.RequestCtx) {
	var req transport.BulkAssignRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.AgentID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.pipeline.AssignPropertiesToAgent(stdCtx, req.AgentID, req.PropertyIDs); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}
