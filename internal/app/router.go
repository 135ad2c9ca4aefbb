package app

import (
	"github.com/gin-gonic/gin"

	internalhttp "github.com/harborlegal/practice-backend/internal/http"
)

func wireRouter(handlers Handlers, middleware Middleware) *gin.Engine {
	return internalhttp.NewRouter(internalhttp.RouterConfig{
		AuthMiddleware:      middleware.Auth,
		TemplateHandler:     handlers.Template,
		ClientFormHandler:   handlers.ClientForm,
		PublicFormHandler:   handlers.PublicForm,
		NotificationHandler: handlers.Notification,
		HealthHandler:       handlers.Health,
	})
}
