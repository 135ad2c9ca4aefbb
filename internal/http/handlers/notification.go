package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/harborlegal/practice-backend/internal/http/response"
	"github.com/harborlegal/practice-backend/internal/pkg/ctxutil"
	"github.com/harborlegal/practice-backend/internal/services"
)

// NotificationHandler lets staff push a persisted notification out through
// the mail client.
type NotificationHandler struct {
	notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// POST /api/notifications/:id/dispatch
func (nh *NotificationHandler) Dispatch(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing request identity"))
		return
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", fmt.Errorf("invalid notification id"))
		return
	}

	row, err := nh.notificationService.Dispatch(c.Request.Context(), rd.LawFirmID, notificationID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"notification": row})
}
