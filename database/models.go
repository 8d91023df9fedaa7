package database

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Question type tags. The tag is recorded on every answer row at the time of
// answering, so old answers keep rendering even if the question is retyped.
const (
	TypeYesNo        = "yes_no"
	TypeSingleChoice = "single_choice"
	TypeMultiChoice  = "multi_choice"
	TypeScale        = "scale"
	TypeShortText    = "short_text"
	TypeLongText     = "long_text"
)

var QuestionTypes = map[string]bool{
	TypeYesNo:        true,
	TypeSingleChoice: true,
	TypeMultiChoice:  true,
	TypeScale:        true,
	TypeShortText:    true,
	TypeLongText:     true,
}

// Option is one selectable choice of a single_choice/multi_choice question.
// Answers store the value; reports look the label back up.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ScaleConfig bounds a scale question. Min must be strictly below Max.
type ScaleConfig struct {
	Min  int `json:"min"`
	Max  int `json:"max"`
	Step int `json:"step"`
}

// IntakeField is one configurable field of the public intake form. At most
// one field of a questionnaire carries VerificationField; its submitted value
// is the respondent de-duplication key.
type IntakeField struct {
	ID                string `json:"id"`
	Label             string `json:"label"`
	Kind              string `json:"kind"`
	Required          bool   `json:"required"`
	Order             int    `json:"order"`
	Placeholder       string `json:"placeholder,omitempty"`
	VerificationField bool   `json:"verification_field"`
}

type Category struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description pgtype.Text        `json:"description"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
}

type Question struct {
	ID          uuid.UUID          `json:"id"`
	Text        string             `json:"text"`
	Weight      pgtype.Numeric     `json:"weight"`
	Active      bool               `json:"active"`
	CategoryID  pgtype.UUID        `json:"category_id"`
	Type        string             `json:"type"`
	Options     []Option           `json:"options,omitempty"`
	ScaleConfig *ScaleConfig       `json:"scale_config,omitempty"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
}

type Questionnaire struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name"`
	Slug         string             `json:"slug"`
	IntakeFields []IntakeField      `json:"intake_fields,omitempty"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}

// QuestionnaireQuestion links one question into a questionnaire's set.
// Unique per (questionnaire_id, question_id); carries nothing else.
type QuestionnaireQuestion struct {
	QuestionnaireID uuid.UUID `json:"questionnaire_id"`
	QuestionID      uuid.UUID `json:"question_id"`
}

type Respondent struct {
	ID              uuid.UUID          `json:"id"`
	QuestionnaireID uuid.UUID          `json:"questionnaire_id"`
	Name            string             `json:"name"`
	Email           pgtype.Text        `json:"email"`
	Phone           pgtype.Text        `json:"phone"`
	TaxID           pgtype.Text        `json:"tax_id"`
	Company         pgtype.Text        `json:"company"`
	EmployeeCount   pgtype.Int4        `json:"employee_count"`
	Industry        pgtype.Text        `json:"industry"`
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
}

// Answer is one recorded answer. Exactly one of the four value columns is
// set, matching QuestionType; re-answering upserts the same row in place.
type Answer struct {
	ID              uuid.UUID          `json:"id"`
	RespondentID    uuid.UUID          `json:"respondent_id"`
	QuestionnaireID uuid.UUID          `json:"questionnaire_id"`
	QuestionID      uuid.UUID          `json:"question_id"`
	QuestionType    string             `json:"question_type"`
	AnswerBool      pgtype.Bool        `json:"answer_bool"`
	AnswerText      pgtype.Text        `json:"answer_text"`
	AnswerScale     pgtype.Float8      `json:"answer_scale"`
	AnswerChoices   []string           `json:"answer_choices"`
	AnsweredAt      pgtype.Timestamptz `json:"answered_at"`
}

type Admin struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}
