package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	repoForms "github.com/harborlegal/practice-backend/internal/data/repos/forms"
	types "github.com/harborlegal/practice-backend/internal/domain"
	"github.com/harborlegal/practice-backend/internal/pkg/dbctx"
	"github.com/harborlegal/practice-backend/internal/platform/apierr"
	"github.com/harborlegal/practice-backend/internal/platform/logger"
)

// ValidationResult is the snapshot returned by every submission and by the
// standalone validate call. CompletionPercentage is the form's stored value
// from the last submission; document uploads between submissions do not
// move it, which is why completion status and validity are independent.
type ValidationResult struct {
	IsValid                  bool     `json:"is_valid"`
	MissingRequiredFields    []string `json:"missing_required_fields"`
	MissingRequiredDocuments []string `json:"missing_required_documents"`
	CompletionPercentage     float64  `json:"completion_percentage"`
}

type ValidationService interface {
	Validate(ctx context.Context, clientFormID uuid.UUID) (*ValidationResult, error)
}

type validationService struct {
	db             *gorm.DB
	log            *logger.Logger
	clientFormRepo repoForms.ClientFormRepo
	templateRepo   repoForms.TemplateRepo
	responseRepo   repoForms.ResponseRepo
	documentRepo   repoForms.DocumentRepo
}

func NewValidationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	clientFormRepo repoForms.ClientFormRepo,
	templateRepo repoForms.TemplateRepo,
	responseRepo repoForms.ResponseRepo,
	documentRepo repoForms.DocumentRepo,
) ValidationService {
	return &validationService{
		db:             db,
		log:            baseLog.With("service", "ValidationService"),
		clientFormRepo: clientFormRepo,
		templateRepo:   templateRepo,
		responseRepo:   responseRepo,
		documentRepo:   documentRepo,
	}
}

func (vs *validationService) Validate(ctx context.Context, clientFormID uuid.UUID) (*ValidationResult, error) {
	dbc := dbctx.Context{Ctx: ctx}

	form, err := vs.clientFormRepo.GetByID(dbc, clientFormID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("load client form: %w", err))
	}
	if form == nil {
		return nil, apierr.NotFound(fmt.Errorf("client form %s not found", clientFormID))
	}

	template, err := vs.templateRepo.GetWithDefinition(dbc, form.TemplateID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("load template: %w", err))
	}
	if template == nil {
		return nil, apierr.NotFound(fmt.Errorf("template %s not found", form.TemplateID))
	}

	responses, err := vs.responseRepo.ListByForm(dbc, form.ID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("load responses: %w", err))
	}
	documents, err := vs.documentRepo.ListByForm(dbc, form.ID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("load documents: %w", err))
	}

	result := evaluate(template, responses, documents)
	result.CompletionPercentage = form.CompletionPercentage
	return result, nil
}

// evaluate computes the missing-field and missing-document lists against the
// template definition. The caller decides which percentage to attach.
func evaluate(template *types.FormTemplate, responses []*types.FormResponse, documents []*types.ClientFormDocument) *ValidationResult {
	answered := make(map[uuid.UUID]string, len(responses))
	for _, r := range responses {
		answered[r.FieldID] = r.Value
	}

	missingFields := []string{}
	for _, section := range template.Sections {
		for _, field := range section.Fields {
			if !field.IsRequired {
				continue
			}
			value, ok := answered[field.ID]
			if !ok || isBlank(value) {
				missingFields = append(missingFields, field.Name)
			}
		}
	}

	uploaded := make(map[uuid.UUID]bool, len(documents))
	for _, d := range documents {
		if d.RequiredDocumentID != nil {
			uploaded[*d.RequiredDocumentID] = true
		}
	}

	missingDocuments := []string{}
	for _, doc := range template.RequiredDocuments {
		if !doc.IsRequired {
			continue
		}
		if !uploaded[doc.ID] {
			missingDocuments = append(missingDocuments, doc.Name)
		}
	}

	return &ValidationResult{
		IsValid:                  len(missingFields) == 0 && len(missingDocuments) == 0,
		MissingRequiredFields:    missingFields,
		MissingRequiredDocuments: missingDocuments,
	}
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// completionPercentage is the share of required fields with a non-blank
// answer, rounded to two decimals. A template with no required fields is
// always 100.
func completionPercentage(totalRequired, completed int) float64 {
	if totalRequired <= 0 {
		return 100
	}
	pct := float64(completed) / float64(totalRequired) * 100
	return math.Round(pct*100) / 100
}
