package reports

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// SummaryRow is one line of the report listing: a respondent's progress
// through one questionnaire.
type SummaryRow struct {
	RespondentID      uuid.UUID          `json:"respondent_id"`
	RespondentName    string             `json:"respondent_name"`
	QuestionnaireID   uuid.UUID          `json:"questionnaire_id"`
	QuestionnaireName string             `json:"questionnaire_name"`
	AnsweredCount     int                `json:"answered_count"`
	QuestionCount     int                `json:"question_count"`
	CompletionPct     int64              `json:"completion_pct"`
	LastAnswerAt      pgtype.Timestamptz `json:"last_answer_at"`
}
