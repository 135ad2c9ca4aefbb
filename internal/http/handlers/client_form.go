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

// ClientFormHandler is the staff-side surface: sending forms, nudging
// clients, and inspecting completion state.
type ClientFormHandler struct {
	clientFormService services.ClientFormService
}

func NewClientFormHandler(clientFormService services.ClientFormService) *ClientFormHandler {
	return &ClientFormHandler{clientFormService: clientFormService}
}

// POST /api/client-forms
func (ch *ClientFormHandler) Send(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing request identity"))
		return
	}

	var input services.SendFormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	form, err := ch.clientFormService.Send(c.Request.Context(), rd.LawFirmID, rd.UserID, input)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"client_form": form})
}

// POST /api/client-forms/:id/reminder
func (ch *ClientFormHandler) SendReminder(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing request identity"))
		return
	}

	formID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", fmt.Errorf("invalid form id"))
		return
	}

	if err := ch.clientFormService.SendReminder(c.Request.Context(), rd.LawFirmID, rd.UserID, formID); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// GET /api/client-forms/:id/validation
func (ch *ClientFormHandler) Validation(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing request identity"))
		return
	}

	formID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", fmt.Errorf("invalid form id"))
		return
	}

	result, err := ch.clientFormService.Validation(c.Request.Context(), rd.LawFirmID, formID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"validation": result})
}
