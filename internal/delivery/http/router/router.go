// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"tasktrack/internal/delivery/http/middleware"
	"tasktrack/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	TaskHandler    *handler.TaskHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	taskHandler    *handler.TaskHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		taskHandler:    params.TaskHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	v1 := e.Group("/api/v1")

	// Auth routes
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
	}

	// Task routes, all ownership-scoped behind authentication
	taskGroup := v1.Group("/tasks")
	taskGroup.Use(r.authMiddleware.Authenticate)
	{
		taskGroup.POST("", r.taskHandler.CreateTask)
		taskGroup.GET("", r.taskHandler.ListTasks)
		taskGroup.GET("/:id", r.taskHandler.GetTask)
		taskGroup.PATCH("/:id", r.taskHandler.UpdateTask)
		taskGroup.DELETE("/:id", r.taskHandler.DeleteTask)
	}
}
