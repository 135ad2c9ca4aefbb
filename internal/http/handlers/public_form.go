package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harborlegal/practice-backend/internal/http/response"
	"github.com/harborlegal/practice-backend/internal/services"
)

// PublicFormHandler serves clients holding a form link. No session auth:
// the token in the path is the credential.
type PublicFormHandler struct {
	publicFormService services.PublicFormService
}

func NewPublicFormHandler(publicFormService services.PublicFormService) *PublicFormHandler {
	return &PublicFormHandler{publicFormService: publicFormService}
}

// GET /api/public/forms/:token
func (ph *PublicFormHandler) Get(c *gin.Context) {
	form, err := ph.publicFormService.Get(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"client_form": form})
}

// POST /api/public/forms/:token/submit
func (ph *PublicFormHandler) Submit(c *gin.Context) {
	var input services.SubmitFormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	if len(input.Responses) == 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", fmt.Errorf("responses must not be empty"))
		return
	}

	result, err := ph.publicFormService.Submit(c.Request.Context(), c.Param("token"), input, requestMeta(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"validation": result})
}

// POST /api/public/forms/:token/documents
func (ph *PublicFormHandler) RegisterDocument(c *gin.Context) {
	var input services.RegisterDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	document, err := ph.publicFormService.RegisterDocument(c.Request.Context(), c.Param("token"), input, requestMeta(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"document": document})
}

func requestMeta(c *gin.Context) services.RequestMeta {
	return services.RequestMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
