package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	repoForms "github.com/harborlegal/practice-backend/internal/data/repos/forms"
	"github.com/harborlegal/practice-backend/internal/data/txrun"
	types "github.com/harborlegal/practice-backend/internal/domain"
	"github.com/harborlegal/practice-backend/internal/pkg/dbctx"
	"github.com/harborlegal/practice-backend/internal/platform/apierr"
	"github.com/harborlegal/practice-backend/internal/platform/logger"
)

// CreateTemplateInput is the full template definition. The JSON payloads
// (conditional logic, validation rules, options) are opaque here; they are
// stored as-is and handed back to the presentation layer untouched.
type CreateTemplateInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	FormType    string `json:"form_type"`
	ProcessType string `json:"process_type"`

	Sections          []CreateSectionInput          `json:"sections"`
	RequiredDocuments []CreateRequiredDocumentInput `json:"required_documents"`
}

type CreateSectionInput struct {
	Title            string         `json:"title" binding:"required"`
	Description      string         `json:"description"`
	DisplayOrder     int            `json:"display_order"`
	IsRequired       bool           `json:"is_required"`
	DependsOnIndex   *int           `json:"depends_on_index,omitempty"`
	ConditionalLogic datatypes.JSON `json:"conditional_logic,omitempty"`

	Fields []CreateFieldInput `json:"fields"`
}

type CreateFieldInput struct {
	Name             string         `json:"name" binding:"required"`
	Label            string         `json:"label" binding:"required"`
	FieldType        string         `json:"field_type" binding:"required"`
	DisplayOrder     int            `json:"display_order"`
	IsRequired       bool           `json:"is_required"`
	Placeholder      string         `json:"placeholder"`
	ValidationRules  datatypes.JSON `json:"validation_rules,omitempty"`
	Options          datatypes.JSON `json:"options,omitempty"`
	ConditionalLogic datatypes.JSON `json:"conditional_logic,omitempty"`
}

type CreateRequiredDocumentInput struct {
	Name             string         `json:"name" binding:"required"`
	Description      string         `json:"description"`
	IsRequired       bool           `json:"is_required"`
	AcceptedFormats  string         `json:"accepted_formats"`
	MaxSizeBytes     int64          `json:"max_size_bytes"`
	DisplayOrder     int            `json:"display_order"`
	ConditionalLogic datatypes.JSON `json:"conditional_logic,omitempty"`
}

type TemplateService interface {
	List(ctx context.Context, lawFirmID *uuid.UUID) ([]*types.FormTemplate, error)
	Create(ctx context.Context, lawFirmID *uuid.UUID, creatorID uuid.UUID, input CreateTemplateInput) (*types.FormTemplate, error)
}

type templateService struct {
	db           *gorm.DB
	log          *logger.Logger
	txRunner     txrun.TxRunner
	templateRepo repoForms.TemplateRepo
}

func NewTemplateService(
	db *gorm.DB,
	baseLog *logger.Logger,
	txRunner txrun.TxRunner,
	templateRepo repoForms.TemplateRepo,
) TemplateService {
	return &templateService{
		db:           db,
		log:          baseLog.With("service", "TemplateService"),
		txRunner:     txRunner,
		templateRepo: templateRepo,
	}
}

func (ts *templateService) List(ctx context.Context, lawFirmID *uuid.UUID) ([]*types.FormTemplate, error) {
	if lawFirmID == nil {
		return nil, apierr.NotAuthorized(fmt.Errorf("caller has no law firm association"))
	}

	templates, err := ts.templateRepo.ListActiveByFirm(dbctx.Context{Ctx: ctx}, *lawFirmID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("list templates: %w", err))
	}
	return templates, nil
}

// Create persists the template definition in one transaction: template row,
// then sections, then each section's fields (fields reference section ids),
// then required documents. A failure anywhere rolls everything back so no
// half-defined template is ever usable.
func (ts *templateService) Create(ctx context.Context, lawFirmID *uuid.UUID, creatorID uuid.UUID, input CreateTemplateInput) (*types.FormTemplate, error) {
	if lawFirmID == nil {
		return nil, apierr.NotAuthorized(fmt.Errorf("caller has no law firm association"))
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apierr.InvalidArgument(fmt.Errorf("template name is required"))
	}

	template := &types.FormTemplate{
		ID:          uuid.New(),
		LawFirmID:   *lawFirmID,
		CreatedByID: creatorID,
		Name:        input.Name,
		Description: input.Description,
		FormType:    input.FormType,
		ProcessType: input.ProcessType,
		Version:     1,
		IsActive:    true,
	}

	err := ts.txRunner.InTx(ctx, func(dbc dbctx.Context) error {
		if _, err := ts.templateRepo.Create(dbc, template); err != nil {
			return fmt.Errorf("create template: %w", err)
		}

		sections := make([]*types.FormSection, 0, len(input.Sections))
		for _, sectionInput := range input.Sections {
			sections = append(sections, &types.FormSection{
				ID:               uuid.New(),
				TemplateID:       template.ID,
				Title:            sectionInput.Title,
				Description:      sectionInput.Description,
				DisplayOrder:     sectionInput.DisplayOrder,
				IsRequired:       sectionInput.IsRequired,
				ConditionalLogic: sectionInput.ConditionalLogic,
			})
		}

		// Section dependencies arrive as sibling indexes since the ids do
		// not exist until now. The link is informational only.
		for i, sectionInput := range input.Sections {
			if sectionInput.DependsOnIndex == nil {
				continue
			}
			idx := *sectionInput.DependsOnIndex
			if idx < 0 || idx >= len(sections) || idx == i {
				return apierr.InvalidArgument(fmt.Errorf("section %d has invalid depends_on_index %d", i, idx))
			}
			sections[i].DependsOnSectionID = &sections[idx].ID
		}

		if _, err := ts.templateRepo.CreateSections(dbc, sections); err != nil {
			return fmt.Errorf("create sections: %w", err)
		}

		for i, sectionInput := range input.Sections {
			fields := make([]*types.FormField, 0, len(sectionInput.Fields))
			for _, fieldInput := range sectionInput.Fields {
				fields = append(fields, &types.FormField{
					ID:               uuid.New(),
					SectionID:        sections[i].ID,
					Name:             fieldInput.Name,
					Label:            fieldInput.Label,
					FieldType:        fieldInput.FieldType,
					DisplayOrder:     fieldInput.DisplayOrder,
					IsRequired:       fieldInput.IsRequired,
					Placeholder:      fieldInput.Placeholder,
					ValidationRules:  fieldInput.ValidationRules,
					Options:          fieldInput.Options,
					ConditionalLogic: fieldInput.ConditionalLogic,
				})
			}
			if _, err := ts.templateRepo.CreateFields(dbc, fields); err != nil {
				return fmt.Errorf("create fields for section %d: %w", i, err)
			}
		}

		docs := make([]*types.FormRequiredDocument, 0, len(input.RequiredDocuments))
		for _, docInput := range input.RequiredDocuments {
			docs = append(docs, &types.FormRequiredDocument{
				ID:               uuid.New(),
				TemplateID:       template.ID,
				Name:             docInput.Name,
				Description:      docInput.Description,
				IsRequired:       docInput.IsRequired,
				AcceptedFormats:  docInput.AcceptedFormats,
				MaxSizeBytes:     docInput.MaxSizeBytes,
				DisplayOrder:     docInput.DisplayOrder,
				ConditionalLogic: docInput.ConditionalLogic,
			})
		}
		if _, err := ts.templateRepo.CreateRequiredDocuments(dbc, docs); err != nil {
			return fmt.Errorf("create required documents: %w", err)
		}

		return nil
	})
	if err != nil {
		ts.log.Error("Template creation failed", "error", err, "law_firm_id", lawFirmID)
		return nil, apierr.From(err)
	}

	created, err := ts.templateRepo.GetWithDefinition(dbctx.Context{Ctx: ctx}, template.ID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("reload template: %w", err))
	}
	return created, nil
}
