package handler

import (
	"encoding/json"
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/casaflow/backend/api/transport"
	"github.com/casaflow/backend/domain"
	"github.com/casaflow/backend/internal/middleware"
	"github.com/casaflow/backend/pkg/httpcontext"
	authUC "github.com/casaflow/backend/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc        *authUC.UseCase
	jwtSecret string
	jwtIssuer string
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger, jwtSecret, jwtIssuer string) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		jwtSecret:   jwtSecret,
		jwtIssuer:   jwtIssuer,
	}
}

// @Summary Log in with username and password
// @Tags auth
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Username == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, err := h.uc.Login(stdCtx, req.Username, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	token, err := h.issueToken(session)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.respondSuccess(ctx, http.StatusCreated, map[string]interface{}{
		"token":   token,
		"session": session,
	})
}

// @Summary Log out the active session
// @Tags auth
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	session := middleware.SessionFromRequest(ctx)
	if session == nil {
		ctx.SetStatusCode(fasthttp.StatusUnauthorized)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Logout(stdCtx, session.ID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Current session user
// @Tags auth
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(ctx *fasthttp.RequestCtx) {
	session := middleware.SessionFromRequest(ctx)
	if session == nil {
		ctx.SetStatusCode(fasthttp.StatusUnauthorized)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, session.User)
}

func (h *AuthHandler) issueToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"session_id": session.ID,
		"iss":        h.jwtIssuer,
		"exp":        session.ExpiresAt.Unix(),
		"iat":        session.CreatedAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
