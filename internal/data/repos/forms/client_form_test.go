package forms

import (
	"context"
	"testing"

	"github.com/harborlegal/practice-backend/internal/data/repos/testutil"
	"github.com/harborlegal/practice-backend/internal/pkg/dbctx"
)

func TestClientFormRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewClientFormRepo(db, testutil.Logger(t))

	firm := testutil.SeedLawFirm(t, ctx, tx)
	staff := testutil.SeedUser(t, ctx, tx, firm.ID)
	client := testutil.SeedClient(t, ctx, tx, firm.ID)
	template := testutil.SeedTemplate(t, ctx, tx, firm.ID, staff.ID)

	form := testutil.SeedClientForm(t, ctx, tx, firm.ID, client.ID, template.ID, "aaaabbbbccccddddeeeeffff00001111")

	byToken, err := repo.GetByAccessToken(dbc, form.AccessToken)
	if err != nil {
		t.Fatalf("GetByAccessToken: %v", err)
	}
	if byToken == nil || byToken.ID != form.ID {
		t.Fatalf("GetByAccessToken: unexpected result: %+v", byToken)
	}

	missing, err := repo.GetByAccessToken(dbc, "0000000000000000000000000000dead")
	if err != nil {
		t.Fatalf("GetByAccessToken (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByAccessToken (missing): expected nil, got %+v", missing)
	}

	full, err := repo.GetFullByAccessToken(dbc, form.AccessToken)
	if err != nil {
		t.Fatalf("GetFullByAccessToken: %v", err)
	}
	if full == nil || full.Template == nil || full.Client == nil {
		t.Fatalf("GetFullByAccessToken: associations not loaded: %+v", full)
	}
	if len(full.Template.Sections) != 1 || len(full.Template.Sections[0].Fields) != 3 {
		t.Fatalf("GetFullByAccessToken: template definition not loaded")
	}

	otherFirm := testutil.SeedLawFirm(t, ctx, tx)
	scoped, err := repo.GetByIDForFirm(dbc, form.ID, otherFirm.ID)
	if err != nil {
		t.Fatalf("GetByIDForFirm: %v", err)
	}
	if scoped != nil {
		t.Fatalf("GetByIDForFirm: form leaked across firms")
	}

	if err := repo.UpdateFields(dbc, form.ID, map[string]interface{}{
		"completion_percentage": 42.5,
		"status":                "InProgress",
	}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	updated, err := repo.GetByID(dbc, form.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updated.CompletionPercentage != 42.5 || updated.Status != "InProgress" {
		t.Fatalf("UpdateFields: not applied: %+v", updated)
	}
}
