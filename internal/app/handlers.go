package app

import (
	httpH "github.com/harborlegal/practice-backend/internal/http/handlers"
	"github.com/harborlegal/practice-backend/internal/platform/logger"
)

type Handlers struct {
	Template     *httpH.TemplateHandler
	ClientForm   *httpH.ClientFormHandler
	PublicForm   *httpH.PublicFormHandler
	Notification *httpH.NotificationHandler
	Health       *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Template:     httpH.NewTemplateHandler(services.Template),
		ClientForm:   httpH.NewClientFormHandler(services.ClientForm),
		PublicForm:   httpH.NewPublicFormHandler(services.PublicForm),
		Notification: httpH.NewNotificationHandler(services.Notification),
		Health:       httpH.NewHealthHandler(),
	}
}
