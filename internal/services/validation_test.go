package services

import (
	"testing"

	"github.com/google/uuid"

	types "github.com/harborlegal/practice-backend/internal/domain"
)

func TestCompletionPercentage(t *testing.T) {
	cases := []struct {
		name          string
		totalRequired int
		completed     int
		want          float64
	}{
		{"no required fields", 0, 0, 100},
		{"negative total", -1, 0, 100},
		{"none answered", 4, 0, 0},
		{"half answered", 4, 2, 50},
		{"all answered", 4, 4, 100},
		{"one third rounds to two decimals", 3, 1, 33.33},
		{"two thirds rounds to two decimals", 3, 2, 66.67},
		{"one seventh", 7, 1, 14.29},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := completionPercentage(tc.totalRequired, tc.completed)
			if got != tc.want {
				t.Fatalf("completionPercentage(%d, %d) = %v, want %v", tc.totalRequired, tc.completed, got, tc.want)
			}
		})
	}
}

func TestIsBlank(t *testing.T) {
	for value, want := range map[string]bool{
		"":      true,
		"   ":   true,
		"\t\n":  true,
		"a":     false,
		"  a  ": false,
		"0":     false,
	} {
		if got := isBlank(value); got != want {
			t.Fatalf("isBlank(%q) = %v, want %v", value, got, want)
		}
	}
}

func buildTemplate(requiredFieldNames, optionalFieldNames, requiredDocNames []string) *types.FormTemplate {
	section := types.FormSection{ID: uuid.New(), Title: "Details"}
	order := 0
	for _, name := range requiredFieldNames {
		section.Fields = append(section.Fields, types.FormField{
			ID: uuid.New(), Name: name, Label: name, FieldType: "text", DisplayOrder: order, IsRequired: true,
		})
		order++
	}
	for _, name := range optionalFieldNames {
		section.Fields = append(section.Fields, types.FormField{
			ID: uuid.New(), Name: name, Label: name, FieldType: "text", DisplayOrder: order,
		})
		order++
	}

	template := &types.FormTemplate{ID: uuid.New(), Name: "Intake", Sections: []types.FormSection{section}}
	for i, name := range requiredDocNames {
		template.RequiredDocuments = append(template.RequiredDocuments, types.FormRequiredDocument{
			ID: uuid.New(), Name: name, IsRequired: true, DisplayOrder: i,
		})
	}
	return template
}

func answer(fieldID uuid.UUID, value string) *types.FormResponse {
	return &types.FormResponse{ID: uuid.New(), FieldID: fieldID, Value: value}
}

func TestEvaluateMissingFields(t *testing.T) {
	template := buildTemplate([]string{"full_name", "date_of_birth"}, []string{"nickname"}, nil)
	fields := template.Sections[0].Fields

	result := evaluate(template, []*types.FormResponse{answer(fields[0].ID, "Jane Doe")}, nil)
	if result.IsValid {
		t.Fatalf("expected invalid result with a missing required field")
	}
	if len(result.MissingRequiredFields) != 1 || result.MissingRequiredFields[0] != "date_of_birth" {
		t.Fatalf("unexpected missing fields: %v", result.MissingRequiredFields)
	}

	// A blank answer counts as missing.
	result = evaluate(template, []*types.FormResponse{
		answer(fields[0].ID, "Jane Doe"),
		answer(fields[1].ID, "   "),
	}, nil)
	if len(result.MissingRequiredFields) != 1 || result.MissingRequiredFields[0] != "date_of_birth" {
		t.Fatalf("blank answer should be missing, got %v", result.MissingRequiredFields)
	}

	// Optional fields never appear in the missing list.
	result = evaluate(template, []*types.FormResponse{
		answer(fields[0].ID, "Jane Doe"),
		answer(fields[1].ID, "1990-01-01"),
	}, nil)
	if !result.IsValid {
		t.Fatalf("expected valid result, missing: %v %v", result.MissingRequiredFields, result.MissingRequiredDocuments)
	}
}

func TestEvaluateMissingDocuments(t *testing.T) {
	template := buildTemplate(nil, nil, []string{"Passport copy", "Proof of address"})
	docSlot := template.RequiredDocuments[0]

	result := evaluate(template, nil, nil)
	if result.IsValid {
		t.Fatalf("expected invalid result with missing documents")
	}
	if len(result.MissingRequiredDocuments) != 2 {
		t.Fatalf("unexpected missing documents: %v", result.MissingRequiredDocuments)
	}

	uploads := []*types.ClientFormDocument{
		{ID: uuid.New(), RequiredDocumentID: &docSlot.ID, FileName: "passport.pdf"},
	}
	result = evaluate(template, nil, uploads)
	if len(result.MissingRequiredDocuments) != 1 || result.MissingRequiredDocuments[0] != "Proof of address" {
		t.Fatalf("unexpected missing documents: %v", result.MissingRequiredDocuments)
	}

	// An upload not tied to any slot satisfies nothing.
	uploads = append(uploads, &types.ClientFormDocument{ID: uuid.New(), FileName: "extra.pdf"})
	result = evaluate(template, nil, uploads)
	if len(result.MissingRequiredDocuments) != 1 {
		t.Fatalf("untied upload should not satisfy a slot, got %v", result.MissingRequiredDocuments)
	}
}

func TestEvaluateDocumentsIndependentOfFields(t *testing.T) {
	template := buildTemplate([]string{"full_name"}, nil, []string{"Passport copy"})
	fields := template.Sections[0].Fields

	// All fields answered but document missing: still invalid.
	result := evaluate(template, []*types.FormResponse{answer(fields[0].ID, "Jane Doe")}, nil)
	if result.IsValid {
		t.Fatalf("document gap must fail validation even with all fields answered")
	}
	if len(result.MissingRequiredFields) != 0 {
		t.Fatalf("unexpected missing fields: %v", result.MissingRequiredFields)
	}
	if len(result.MissingRequiredDocuments) != 1 {
		t.Fatalf("unexpected missing documents: %v", result.MissingRequiredDocuments)
	}
}
