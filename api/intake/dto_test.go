package intake

import (
	"testing"

	"github.com/google/uuid"
	"github.com/matheusot/enquete/database"
)

func TestMapAnswerValue(t *testing.T) {
	t.Run("yes/no takes a boolean", func(t *testing.T) {
		values, err := mapAnswerValue(database.TypeYesNo, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !values.Bool.Valid || values.Bool.Bool {
			t.Errorf("bool = %+v, want valid false", values.Bool)
		}
	})

	t.Run("text types take a string", func(t *testing.T) {
		values, err := mapAnswerValue(database.TypeLongText, "some notes")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if values.Text.String != "some notes" || !values.Text.Valid {
			t.Errorf("text = %+v, want %q", values.Text, "some notes")
		}
	})

	t.Run("scale takes a number", func(t *testing.T) {
		values, err := mapAnswerValue(database.TypeScale, 7.0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !values.Scale.Valid || values.Scale.Float64 != 7 {
			t.Errorf("scale = %+v, want 7", values.Scale)
		}
	})

	t.Run("single choice becomes a one-element array", func(t *testing.T) {
		values, err := mapAnswerValue(database.TypeSingleChoice, "b")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(values.Choices) != 1 || values.Choices[0] != "b" {
			t.Errorf("choices = %v, want [b]", values.Choices)
		}
	})

	t.Run("multi choice takes an array of strings", func(t *testing.T) {
		values, err := mapAnswerValue(database.TypeMultiChoice, []any{"a", "c"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(values.Choices) != 2 || values.Choices[0] != "a" || values.Choices[1] != "c" {
			t.Errorf("choices = %v, want [a c]", values.Choices)
		}
	})

	t.Run("mismatched values are rejected", func(t *testing.T) {
		cases := []struct {
			questionType string
			value        any
		}{
			{database.TypeYesNo, "yes"},
			{database.TypeScale, "7"},
			{database.TypeShortText, 1.0},
			{database.TypeSingleChoice, []any{"a"}},
			{database.TypeMultiChoice, []any{"a", 2.0}},
			{database.TypeYesNo, nil},
			{"unknown", true},
		}

		for _, c := range cases {
			if _, err := mapAnswerValue(c.questionType, c.value); err == nil {
				t.Errorf("expected error for %s with %v", c.questionType, c.value)
			}
		}
	})
}

func TestDedupKey(t *testing.T) {
	body := RespondentBody{
		QuestionnaireID: uuid.New(),
		Name:            "Ana",
		Email:           "ana@example.com",
		Phone:           "119999",
		TaxID:           "123",
	}

	t.Run("verification field wins when set and filled", func(t *testing.T) {
		fields := []database.IntakeField{
			{ID: "name", Label: "Name", Kind: "text"},
			{ID: "tax_id", Label: "Tax ID", Kind: "text", VerificationField: true},
		}

		column, value := dedupKey(fields, body)

		if column != "tax_id" || value != "123" {
			t.Errorf("key = %s/%s, want tax_id/123", column, value)
		}
	})

	t.Run("blank verification value falls back to email", func(t *testing.T) {
		blank := body
		blank.TaxID = ""
		fields := []database.IntakeField{
			{ID: "tax_id", Label: "Tax ID", Kind: "text", VerificationField: true},
		}

		column, value := dedupKey(fields, blank)

		if column != "email" || value != "ana@example.com" {
			t.Errorf("key = %s/%s, want email/ana@example.com", column, value)
		}
	})

	t.Run("fallback order is email, phone, name", func(t *testing.T) {
		noEmail := body
		noEmail.Email = ""

		column, _ := dedupKey(nil, noEmail)
		if column != "phone" {
			t.Errorf("column = %s, want phone", column)
		}

		noEmail.Phone = ""
		column, value := dedupKey(nil, noEmail)
		if column != "name" || value != "Ana" {
			t.Errorf("key = %s/%s, want name/Ana", column, value)
		}
	})
}
