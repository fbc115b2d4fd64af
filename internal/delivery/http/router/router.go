// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"ideamatch/internal/delivery/http/middleware"
	"ideamatch/internal/delivery/http/router/handler"
	"ideamatch/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	IdeaHandler     *handler.IdeaHandler
	InvestorHandler *handler.InvestorHandler
	AccountHandler  *handler.AccountHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	ideaHandler     *handler.IdeaHandler
	investorHandler *handler.InvestorHandler
	accountHandler  *handler.AccountHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		ideaHandler:     params.IdeaHandler,
		investorHandler: params.InvestorHandler,
		accountHandler:  params.AccountHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Credential lifecycle
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/verify-email", r.authHandler.VerifyEmail)
		authGroup.POST("/resend-otp", r.authHandler.ResendOTP)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/forgot-password", r.authHandler.ForgotPassword)
		authGroup.POST("/reset-password", r.authHandler.ResetPassword)

		// Refresh is guarded by the refresh-signed token, logout by the access token.
		authGroup.POST("/refresh", r.authHandler.Refresh, r.authMiddleware.AuthenticateRefresh)
		authGroup.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)
	}

	// Idea-submitter routes
	entrepreneurGroup := e.Group("/entrepreneur")
	entrepreneurGroup.Use(r.authMiddleware.Authenticate)
	entrepreneurGroup.Use(r.authMiddleware.RequireRole(entity.RoleIdeaSubmitter))
	{
		entrepreneurGroup.POST("/ideas", r.ideaHandler.CreateIdea)
		entrepreneurGroup.GET("/ideas", r.ideaHandler.ListMyIdeas)
		entrepreneurGroup.GET("/ideas/:id", r.ideaHandler.GetIdea)
	}

	// Capital-provider routes
	investorGroup := e.Group("/investor")
	investorGroup.Use(r.authMiddleware.Authenticate)
	investorGroup.Use(r.authMiddleware.RequireRole(entity.RoleCapitalProvider))
	{
		investorGroup.POST("/onboarding", r.investorHandler.CompleteOnboarding)
		investorGroup.GET("/profile", r.investorHandler.GetProfile)
		investorGroup.GET("/ideas", r.investorHandler.BrowseIdeas)
		investorGroup.GET("/ideas/:id", r.ideaHandler.GetIdea)
	}

	// Back-office account management
	usersGroup := e.Group("/users")
	usersGroup.Use(r.authMiddleware.Authenticate)
	{
		usersGroup.GET("", r.accountHandler.ListAccounts)
		usersGroup.GET("/:id", r.accountHandler.GetAccount)
		usersGroup.PATCH("/:id", r.accountHandler.UpdateAccount)
		usersGroup.DELETE("/:id", r.accountHandler.DeleteAccount)
	}
}
