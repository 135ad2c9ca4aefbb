package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	types "github.com/harborlegal/practice-backend/internal/domain"
	"gorm.io/gorm"
)

func SeedLawFirm(tb testing.TB, ctx context.Context, tx *gorm.DB) *types.LawFirm {
	tb.Helper()
	f := &types.LawFirm{
		ID:    uuid.New(),
		Name:  "Testing & Partners",
		Email: fmt.Sprintf("office-%s@example.com", uuid.NewString()[:8]),
	}
	if err := tx.WithContext(ctx).Create(f).Error; err != nil {
		tb.Fatalf("seed law firm: %v", err)
	}
	return f
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, lawFirmID uuid.UUID) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		LawFirmID: &lawFirmID,
		Email:     fmt.Sprintf("staff-%s@example.com", uuid.NewString()[:8]),
		FirstName: "A",
		LastName:  "B",
		Role:      "staff",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedClient(tb testing.TB, ctx context.Context, tx *gorm.DB, lawFirmID uuid.UUID) *types.Client {
	tb.Helper()
	c := &types.Client{
		ID:        uuid.New(),
		LawFirmID: lawFirmID,
		FirstName: "C",
		LastName:  "D",
		Email:     fmt.Sprintf("client-%s@example.com", uuid.NewString()[:8]),
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed client: %v", err)
	}
	return c
}

// SeedTemplate creates a template with one section holding two required
// fields and one optional field, plus one required document slot.
func SeedTemplate(tb testing.TB, ctx context.Context, tx *gorm.DB, lawFirmID, createdByID uuid.UUID) *types.FormTemplate {
	tb.Helper()
	t := &types.FormTemplate{
		ID:          uuid.New(),
		LawFirmID:   lawFirmID,
		CreatedByID: createdByID,
		Name:        "Intake Questionnaire",
		FormType:    "intake",
		Version:     1,
		IsActive:    true,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed template: %v", err)
	}

	s := &types.FormSection{
		ID:         uuid.New(),
		TemplateID: t.ID,
		Title:      "Personal details",
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed section: %v", err)
	}

	fields := []*types.FormField{
		{ID: uuid.New(), SectionID: s.ID, Name: "full_name", Label: "Full name", FieldType: "text", DisplayOrder: 0, IsRequired: true},
		{ID: uuid.New(), SectionID: s.ID, Name: "date_of_birth", Label: "Date of birth", FieldType: "date", DisplayOrder: 1, IsRequired: true},
		{ID: uuid.New(), SectionID: s.ID, Name: "nickname", Label: "Nickname", FieldType: "text", DisplayOrder: 2},
	}
	for _, f := range fields {
		if err := tx.WithContext(ctx).Create(f).Error; err != nil {
			tb.Fatalf("seed field: %v", err)
		}
	}

	d := &types.FormRequiredDocument{
		ID:         uuid.New(),
		TemplateID: t.ID,
		Name:       "Passport copy",
		IsRequired: true,
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed required document: %v", err)
	}

	t.Sections = []types.FormSection{*s}
	t.Sections[0].Fields = []types.FormField{*fields[0], *fields[1], *fields[2]}
	t.RequiredDocuments = []types.FormRequiredDocument{*d}
	return t
}

func SeedClientForm(tb testing.TB, ctx context.Context, tx *gorm.DB, lawFirmID, clientID, templateID uuid.UUID, accessToken string) *types.ClientForm {
	tb.Helper()
	expires := time.Now().Add(30 * 24 * time.Hour)
	cf := &types.ClientForm{
		ID:          uuid.New(),
		LawFirmID:   lawFirmID,
		ClientID:    clientID,
		TemplateID:  templateID,
		Title:       "Intake Questionnaire",
		Status:      types.StatusPending,
		AccessToken: accessToken,
		ExpiresAt:   &expires,
	}
	if err := tx.WithContext(ctx).Create(cf).Error; err != nil {
		tb.Fatalf("seed client form: %v", err)
	}
	return cf
}
