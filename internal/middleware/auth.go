package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/casaflow/backend/domain"
	authUC "github.com/casaflow/backend/usecase/auth"
)

// SessionKey is the request-scoped key holding the resolved session.
const SessionKey = "session"

// SessionAuth validates the bearer token, resolves the Redis session it
// names, and injects the sanitized session user into the request.
func SessionAuth(secret string, gate *authUC.UseCase, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenString := extractToken(ctx)
			if tokenString == "" {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("invalid session token", zap.Error(err))
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}
			sessionID, _ := claims["session_id"].(string)
			if sessionID == "" {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			stdCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			session, err := gate.GetSession(stdCtx, sessionID)
			if err != nil {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			ctx.SetUserValue(SessionKey, session)
			next(ctx)
		}
	}
}

// RequireAdmin gates a handler on the session user holding the admin role.
func RequireAdmin(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		session := SessionFromRequest(ctx)
		if session == nil || !session.User.IsAdmin() {
			ctx.SetStatusCode(fasthttp.StatusForbidden)
			return
		}
		next(ctx)
	}
}

// SessionFromRequest returns the session injected by SessionAuth, or nil.
func SessionFromRequest(ctx *fasthttp.RequestCtx) *domain.Session {
	session, _ := ctx.UserValue(SessionKey).(*domain.Session)
	return session
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
