package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/casaflow/backend/api/handler"
	"github.com/casaflow/backend/internal/middleware"
)

type Handlers struct {
	Auth     *apiHandler.AuthHandler
	Property *apiHandler.PropertyHandler
	Client   *apiHandler.ClientHandler
	Campaign *apiHandler.CampaignHandler
	User     *apiHandler.UserHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, auth func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Public site: listings and AI-assisted search need no session.
	r.GET("/api/v1/properties", handlers.Property.List)
	r.GET("/api/v1/properties/{id}", handlers.Property.Get)
	r.POST("/api/v1/properties/search", handlers.Property.Search)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/logout", auth(handlers.Auth.Logout))
	r.GET("/api/v1/auth/me", auth(handlers.Auth.Me))

	// Back office: property management and pipeline
	r.POST("/api/v1/properties", auth(handlers.Property.Create))
	r.PUT("/api/v1/properties/{id}", auth(handlers.Property.Update))
	r.DELETE("/api/v1/properties/{id}", auth(handlers.Property.Delete))
	r.POST("/api/v1/properties/{id}/describe", auth(handlers.Property.Describe))
	r.PUT("/api/v1/properties/{id}/stage", auth(handlers.Property.MoveStage))
	r.PUT("/api/v1/properties/{id}/client", auth(handlers.Property.AssignClient))
	r.POST("/api/v1/properties/{id}/activity", auth(handlers.Property.AddActivity))
	r.PUT("/api/v1/agents/assignments", auth(handlers.Property.BulkAssign))

	// Clients
	r.GET("/api/v1/clients", auth(handlers.Client.List))
	r.POST("/api/v1/clients", auth(handlers.Client.Create))
	r.PUT("/api/v1/clients/{id}", auth(handlers.Client.Update))
	r.DELETE("/api/v1/clients/{id}", auth(handlers.Client.Delete))
	r.PUT("/api/v1/clients/{id}/status", auth(handlers.Client.SetStatus))
	r.POST("/api/v1/clients/{id}/activity", auth(handlers.Client.AddActivity))

	// Campaigns
	r.GET("/api/v1/campaigns", auth(handlers.Campaign.List))
	r.POST("/api/v1/campaigns", auth(handlers.Campaign.Create))
	r.PUT("/api/v1/campaigns/{id}", auth(handlers.Campaign.Update))
	r.DELETE("/api/v1/campaigns/{id}", auth(handlers.Campaign.Delete))
	r.POST("/api/v1/campaigns/{id}/send", auth(handlers.Campaign.Send))

	// User administration
	r.GET("/api/v1/users", auth(handlers.User.List))
	r.POST("/api/v1/users", auth(middleware.RequireAdmin(handlers.User.Create)))
	r.PUT("/api/v1/users/{id}", auth(middleware.RequireAdmin(handlers.User.Update)))
	r.DELETE("/api/v1/users/{id}", auth(middleware.RequireAdmin(handlers.User.Delete)))
	r.POST("/api/v1/users/dedupe", auth(middleware.RequireAdmin(handlers.User.Dedupe)))

	return r
}
