package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/harborlegal/practice-backend/internal/http/handlers"
	httpMW "github.com/harborlegal/practice-backend/internal/http/middleware"
)

type RouterConfig struct {
	AuthMiddleware *httpMW.AuthMiddleware

	TemplateHandler     *httpH.TemplateHandler
	ClientFormHandler   *httpH.ClientFormHandler
	PublicFormHandler   *httpH.PublicFormHandler
	NotificationHandler *httpH.NotificationHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")

	// Public client surface: the access token in the path is the only
	// credential, so these stay outside the auth middleware.
	if cfg.PublicFormHandler != nil {
		public := api.Group("/public")
		public.GET("/forms/:token", cfg.PublicFormHandler.Get)
		public.POST("/forms/:token/submit", cfg.PublicFormHandler.Submit)
		public.POST("/forms/:token/documents", cfg.PublicFormHandler.RegisterDocument)
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Templates
		if cfg.TemplateHandler != nil {
			protected.GET("/templates", cfg.TemplateHandler.List)
			protected.POST("/templates", cfg.TemplateHandler.Create)
		}

		// Client forms (staff)
		if cfg.ClientFormHandler != nil {
			protected.POST("/client-forms", cfg.ClientFormHandler.Send)
			protected.POST("/client-forms/:id/reminder", cfg.ClientFormHandler.SendReminder)
			protected.GET("/client-forms/:id/validation", cfg.ClientFormHandler.Validation)
		}

		// Notifications (staff)
		if cfg.NotificationHandler != nil {
			protected.POST("/notifications/:id/dispatch", cfg.NotificationHandler.Dispatch)
		}
	}

	return r
}
