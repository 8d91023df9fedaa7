package questionnaires

import (
	"errors"

	"github.com/google/uuid"
	"github.com/matheusot/enquete/database"
)

// Parameter structs
type CreateQuestionnaireBody struct {
	Name         string                 `json:"name" validate:"required"`
	Slug         string                 `json:"slug" validate:"required"`
	IntakeFields []database.IntakeField `json:"intake_fields"`
}

type UpdateQuestionnaireBody struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

type ReplaceQuestionsBody struct {
	QuestionIDs []uuid.UUID `json:"question_ids"`
}

type UpdateIntakeFieldsBody struct {
	IntakeFields []database.IntakeField `json:"intake_fields" validate:"required"`
}

var intakeFieldKinds = map[string]bool{
	"text":   true,
	"email":  true,
	"phone":  true,
	"number": true,
}

// validateIntakeFields checks the intake-form configuration: every field
// needs an id, a label and a known kind, and at most one field may be the
// verification field.
func validateIntakeFields(fields []database.IntakeField) error {
	verificationFields := 0
	seen := map[string]bool{}
	for _, field := range fields {
		if field.ID == "" || field.Label == "" {
			return errors.New("invalid field intake_fields: every field needs an id and a label")
		}
		if !intakeFieldKinds[field.Kind] {
			return errors.New("invalid field intake_fields: unknown field kind " + field.Kind)
		}
		if seen[field.ID] {
			return errors.New("invalid field intake_fields: duplicate field id " + field.ID)
		}
		seen[field.ID] = true
		if field.VerificationField {
			verificationFields++
		}
	}
	if verificationFields > 1 {
		return errors.New("invalid field intake_fields: only one verification field is allowed")
	}
	return nil
}

// DefaultIntakeFields mirrors the stock intake form: name and email are
// required, email is the verification field, the rest are optional.
func DefaultIntakeFields() []database.IntakeField {
	return []database.IntakeField{
		{ID: "name", Label: "Name", Kind: "text", Required: true, Order: 1, Placeholder: "Your full name"},
		{ID: "email", Label: "E-mail", Kind: "email", Required: true, Order: 2, Placeholder: "you@example.com", VerificationField: true},
		{ID: "phone", Label: "Phone", Kind: "phone", Order: 3, Placeholder: "(11) 99999-9999"},
		{ID: "tax_id", Label: "Tax ID", Kind: "text", Order: 4, Placeholder: "00.000.000/0000-00"},
		{ID: "company", Label: "Company", Kind: "text", Order: 5, Placeholder: "Company name"},
		{ID: "employee_count", Label: "Number of employees", Kind: "number", Order: 6, Placeholder: "0"},
		{ID: "industry", Label: "Industry", Kind: "text", Order: 7, Placeholder: "e.g. Technology, Health, Education"},
	}
}
