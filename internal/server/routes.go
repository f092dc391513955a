package server

import (
	"github.com/nfrund/authflow/internal/handlers"
	"github.com/nfrund/authflow/internal/middleware"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	rateLimiter := middleware.RateLimiter(s.submitRate)
	requireToken := middleware.RequireToken(s.stores)

	s.E.GET("/", s.homeHandler.HomeGet)

	s.E.GET("/login", s.authHandler.LoginGet)
	s.E.POST("/login", s.authHandler.LoginPost, rateLimiter)

	s.E.GET("/register", s.authHandler.RegisterGet)
	s.E.POST("/register", s.authHandler.RegisterPost, rateLimiter)

	s.E.POST("/logout", s.authHandler.Logout)
	s.E.GET("/dashboard", s.dashboardHandler.DashboardGet, requireToken)

	s.E.GET("/health", handlers.HealthGet)
}
