package services

import (
	"context"
	"testing"

	repoForms "github.com/harborlegal/practice-backend/internal/data/repos/forms"
	"github.com/harborlegal/practice-backend/internal/data/repos/testutil"
	"github.com/harborlegal/practice-backend/internal/data/txrun"
	"github.com/harborlegal/practice-backend/internal/platform/apierr"
	"gorm.io/gorm"
)

func newTemplateService(t *testing.T, tx *gorm.DB) TemplateService {
	t.Helper()
	log := testutil.Logger(t)
	return NewTemplateService(tx, log, txrun.NewGormTxRunner(tx), repoForms.NewTemplateRepo(tx, log))
}

func TestTemplateServiceCreate(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	firm := testutil.SeedLawFirm(t, ctx, tx)
	staff := testutil.SeedUser(t, ctx, tx, firm.ID)

	svc := newTemplateService(t, tx)

	first := 0
	template, err := svc.Create(ctx, &firm.ID, staff.ID, CreateTemplateInput{
		Name:     "Immigration Intake",
		FormType: "intake",
		Sections: []CreateSectionInput{
			{
				Title:        "Identity",
				DisplayOrder: 0,
				Fields: []CreateFieldInput{
					{Name: "full_name", Label: "Full name", FieldType: "text", IsRequired: true},
					{Name: "nationality", Label: "Nationality", FieldType: "text", DisplayOrder: 1},
				},
			},
			{
				Title:          "Travel history",
				DisplayOrder:   1,
				DependsOnIndex: &first,
				Fields: []CreateFieldInput{
					{Name: "last_entry", Label: "Last entry date", FieldType: "date"},
				},
			},
		},
		RequiredDocuments: []CreateRequiredDocumentInput{
			{Name: "Passport copy", IsRequired: true},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(template.Sections) != 2 || len(template.RequiredDocuments) != 1 {
		t.Fatalf("unexpected shape: %d sections, %d documents", len(template.Sections), len(template.RequiredDocuments))
	}
	// The sibling index resolves to the first section's generated ID.
	dep := template.Sections[1].DependsOnSectionID
	if dep == nil || *dep != template.Sections[0].ID {
		t.Fatalf("depends_on_index not resolved: %+v", dep)
	}

	list, err := svc.List(ctx, &firm.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 template, got %d", len(list))
	}
}

func TestTemplateServiceCreateRejectsBadDependsIndex(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	firm := testutil.SeedLawFirm(t, ctx, tx)
	staff := testutil.SeedUser(t, ctx, tx, firm.ID)

	svc := newTemplateService(t, tx)

	bad := 5
	_, err := svc.Create(ctx, &firm.ID, staff.ID, CreateTemplateInput{
		Name: "Broken",
		Sections: []CreateSectionInput{
			{Title: "Only section", DependsOnIndex: &bad},
		},
	})
	if !apierr.Is(err, apierr.CodeInvalidArgument) {
		t.Fatalf("expected invalid_argument, got %v", err)
	}
}

func TestTemplateServiceRequiresFirm(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	svc := newTemplateService(t, tx)

	if _, err := svc.List(ctx, nil); !apierr.Is(err, apierr.CodeNotAuthorized) {
		t.Fatalf("List without firm: expected not_authorized, got %v", err)
	}
}
