package intake

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/matheusot/enquete/database"
)

type RespondentBody struct {
	QuestionnaireID uuid.UUID `json:"questionnaire_id" validate:"required"`
	Name            string    `json:"name" validate:"required"`
	Email           string    `json:"email" validate:"omitempty,email"`
	Phone           string    `json:"phone"`
	TaxID           string    `json:"tax_id"`
	Company         string    `json:"company"`
	EmployeeCount   *int32    `json:"employee_count"`
	Industry        string    `json:"industry"`
}

type ProgressBody struct {
	RespondentID    uuid.UUID `json:"respondent_id" validate:"required"`
	QuestionnaireID uuid.UUID `json:"questionnaire_id" validate:"required"`
}

type AnswerBody struct {
	RespondentID    uuid.UUID `json:"respondent_id" validate:"required"`
	QuestionnaireID uuid.UUID `json:"questionnaire_id" validate:"required"`
	QuestionID      uuid.UUID `json:"question_id" validate:"required"`
	Value           any       `json:"value"`
}

// dedupColumns are the respondent columns a verification field may key on.
// Only these may be interpolated into the lookup query.
var dedupColumns = map[string]bool{
	"name":   true,
	"email":  true,
	"phone":  true,
	"tax_id": true,
}

func (b RespondentBody) columnValue(column string) string {
	switch column {
	case "name":
		return b.Name
	case "email":
		return b.Email
	case "phone":
		return b.Phone
	case "tax_id":
		return b.TaxID
	}
	return ""
}

// dedupKey picks the column and value that identify a returning respondent
// within a questionnaire. The questionnaire's verification field wins when it
// maps to a known column and the submitted value is non-blank, otherwise the
// fallback order is email, phone, name.
func dedupKey(fields []database.IntakeField, body RespondentBody) (string, string) {
	for _, field := range fields {
		if field.VerificationField && dedupColumns[field.ID] {
			if value := body.columnValue(field.ID); value != "" {
				return field.ID, value
			}
		}
	}

	for _, column := range []string{"email", "phone", "name"} {
		if value := body.columnValue(column); value != "" {
			return column, value
		}
	}

	return "name", body.Name
}

// AnswerValues holds the typed column set for one answer row. Exactly one
// member is populated, matching the question's type tag.
type AnswerValues struct {
	Bool    pgtype.Bool
	Text    pgtype.Text
	Scale   pgtype.Float8
	Choices []string
}

// mapAnswerValue converts the submitted JSON value into the column matching
// the question type. A single choice is stored as a one-element array so both
// choice types read back the same way.
func mapAnswerValue(questionType string, value any) (AnswerValues, error) {
	var values AnswerValues

	if value == nil {
		return values, fmt.Errorf("value is required")
	}

	switch questionType {
	case database.TypeYesNo:
		answer, ok := value.(bool)
		if !ok {
			return values, fmt.Errorf("value must be a boolean for a %s question", questionType)
		}
		values.Bool = pgtype.Bool{Bool: answer, Valid: true}
	case database.TypeShortText, database.TypeLongText:
		answer, ok := value.(string)
		if !ok {
			return values, fmt.Errorf("value must be a string for a %s question", questionType)
		}
		values.Text = pgtype.Text{String: answer, Valid: true}
	case database.TypeScale:
		answer, ok := value.(float64)
		if !ok {
			return values, fmt.Errorf("value must be a number for a %s question", questionType)
		}
		values.Scale = pgtype.Float8{Float64: answer, Valid: true}
	case database.TypeSingleChoice:
		answer, ok := value.(string)
		if !ok {
			return values, fmt.Errorf("value must be a string for a %s question", questionType)
		}
		values.Choices = []string{answer}
	case database.TypeMultiChoice:
		items, ok := value.([]any)
		if !ok {
			return values, fmt.Errorf("value must be an array of strings for a %s question", questionType)
		}
		choices := make([]string, 0, len(items))
		for _, item := range items {
			choice, ok := item.(string)
			if !ok {
				return values, fmt.Errorf("value must be an array of strings for a %s question", questionType)
			}
			choices = append(choices, choice)
		}
		values.Choices = choices
	default:
		return values, fmt.Errorf("unknown question type: %s", questionType)
	}

	return values, nil
}
