package intake

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matheusot/enquete/api/custom_errors"
	"github.com/matheusot/enquete/database"
)

type Store interface {
	GetQuestionnaireBySlug(ctx context.Context, slug string) (database.Questionnaire, error)
	GetQuestionnaire(ctx context.Context, questionnaireID uuid.UUID) (database.Questionnaire, error)
	ListActiveQuestions(ctx context.Context, questionnaireID uuid.UUID) ([]database.Question, error)
	GetQuestion(ctx context.Context, questionID uuid.UUID) (database.Question, error)
	GetRespondent(ctx context.Context, respondentID uuid.UUID) (database.Respondent, error)
	FindOrCreateRespondent(ctx context.Context, body RespondentBody, column, value string) (database.Respondent, bool, error)
	RemainingQuestionIDs(ctx context.Context, respondentID, questionnaireID uuid.UUID) ([]uuid.UUID, error)
	UpsertAnswer(ctx context.Context, body AnswerBody, questionType string, values AnswerValues) (database.Answer, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewIntakeStore(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const questionnaireColumns = `id, name, slug, intake_fields, created_at`

func scanQuestionnaire(row pgx.Row) (database.Questionnaire, error) {
	var questionnaire database.Questionnaire
	err := row.Scan(
		&questionnaire.ID,
		&questionnaire.Name,
		&questionnaire.Slug,
		&questionnaire.IntakeFields,
		&questionnaire.CreatedAt,
	)
	return questionnaire, err
}

const respondentColumns = `id, questionnaire_id, name, email, phone, tax_id, company, employee_count, industry, created_at`

func scanRespondent(row pgx.Row) (database.Respondent, error) {
	var respondent database.Respondent
	err := row.Scan(
		&respondent.ID,
		&respondent.QuestionnaireID,
		&respondent.Name,
		&respondent.Email,
		&respondent.Phone,
		&respondent.TaxID,
		&respondent.Company,
		&respondent.EmployeeCount,
		&respondent.Industry,
		&respondent.CreatedAt,
	)
	return respondent, err
}

func (r *Repository) GetQuestionnaireBySlug(ctx context.Context, slug string) (database.Questionnaire, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	questionnaire, err := scanQuestionnaire(r.db.QueryRow(ctx,
		`SELECT `+questionnaireColumns+` FROM questionnaires WHERE slug = $1`, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Questionnaire{}, custom_errors.ErrNotFound
		}
		return database.Questionnaire{}, fmt.Errorf("error getting questionnaire by slug: %v", err)
	}

	return questionnaire, nil
}

func (r *Repository) GetQuestionnaire(ctx context.Context, questionnaireID uuid.UUID) (database.Questionnaire, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	questionnaire, err := scanQuestionnaire(r.db.QueryRow(ctx,
		`SELECT `+questionnaireColumns+` FROM questionnaires WHERE id = $1`, questionnaireID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Questionnaire{}, custom_errors.ErrNotFound
		}
		return database.Questionnaire{}, fmt.Errorf("error getting questionnaire: %v", err)
	}

	return questionnaire, nil
}

func (r *Repository) ListActiveQuestions(ctx context.Context, questionnaireID uuid.UUID) ([]database.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT q.id, q.text, q.weight, q.active, q.category_id, q.type, q.options, q.scale_config, q.created_at
		 FROM questionnaire_questions qq
		 JOIN questions q ON q.id = qq.question_id
		 WHERE qq.questionnaire_id = $1 AND q.active
		 ORDER BY q.created_at ASC`,
		questionnaireID,
	)
	if err != nil {
		return nil, fmt.Errorf("error listing questionnaire questions: %v", err)
	}
	defer rows.Close()

	var questions []database.Question
	for rows.Next() {
		var question database.Question
		err := rows.Scan(
			&question.ID,
			&question.Text,
			&question.Weight,
			&question.Active,
			&question.CategoryID,
			&question.Type,
			&question.Options,
			&question.ScaleConfig,
			&question.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning question: %v", err)
		}
		questions = append(questions, question)
	}

	return questions, rows.Err()
}

func (r *Repository) GetQuestion(ctx context.Context, questionID uuid.UUID) (database.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var question database.Question
	err := r.db.QueryRow(ctx,
		`SELECT id, text, weight, active, category_id, type, options, scale_config, created_at
		 FROM questions WHERE id = $1`, questionID).Scan(
		&question.ID,
		&question.Text,
		&question.Weight,
		&question.Active,
		&question.CategoryID,
		&question.Type,
		&question.Options,
		&question.ScaleConfig,
		&question.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Question{}, custom_errors.ErrNotFound
		}
		return database.Question{}, fmt.Errorf("error getting question: %v", err)
	}

	return question, nil
}

func (r *Repository) GetRespondent(ctx context.Context, respondentID uuid.UUID) (database.Respondent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	respondent, err := scanRespondent(r.db.QueryRow(ctx,
		`SELECT `+respondentColumns+` FROM respondents WHERE id = $1`, respondentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Respondent{}, custom_errors.ErrNotFound
		}
		return database.Respondent{}, fmt.Errorf("error getting respondent: %v", err)
	}

	return respondent, nil
}

// FindOrCreateRespondent looks a respondent up by the dedup column within the
// questionnaire and inserts a new row when none matches. The bool reports
// whether the row already existed.
func (r *Repository) FindOrCreateRespondent(ctx context.Context, body RespondentBody, column, value string) (database.Respondent, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if !dedupColumns[column] {
		return database.Respondent{}, false, fmt.Errorf("unknown respondent lookup column: %s", column)
	}

	respondent, err := scanRespondent(r.db.QueryRow(ctx,
		`SELECT `+respondentColumns+` FROM respondents
		 WHERE questionnaire_id = $1 AND `+column+` = $2
		 ORDER BY created_at ASC LIMIT 1`,
		body.QuestionnaireID, value,
	))
	if err == nil {
		return respondent, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return database.Respondent{}, false, fmt.Errorf("error looking up respondent: %v", err)
	}

	respondent, err = scanRespondent(r.db.QueryRow(ctx,
		`INSERT INTO respondents (questionnaire_id, name, email, phone, tax_id, company, employee_count, industry)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, NULLIF($8, ''))
		 RETURNING `+respondentColumns,
		body.QuestionnaireID, body.Name, body.Email, body.Phone, body.TaxID, body.Company, body.EmployeeCount, body.Industry,
	))
	if err != nil {
		return database.Respondent{}, false, fmt.Errorf("error creating respondent: %v", err)
	}

	return respondent, false, nil
}

func (r *Repository) RemainingQuestionIDs(ctx context.Context, respondentID, questionnaireID uuid.UUID) ([]uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT qq.question_id
		 FROM questionnaire_questions qq
		 JOIN questions q ON q.id = qq.question_id
		 WHERE qq.questionnaire_id = $1 AND q.active
		   AND NOT EXISTS (
		     SELECT 1 FROM answers a
		     WHERE a.respondent_id = $2
		       AND a.questionnaire_id = qq.questionnaire_id
		       AND a.question_id = qq.question_id
		   )`,
		questionnaireID, respondentID,
	)
	if err != nil {
		return nil, fmt.Errorf("error listing remaining questions: %v", err)
	}
	defer rows.Close()

	var questionIDs []uuid.UUID
	for rows.Next() {
		var questionID uuid.UUID
		if err := rows.Scan(&questionID); err != nil {
			return nil, fmt.Errorf("error scanning question id: %v", err)
		}
		questionIDs = append(questionIDs, questionID)
	}

	return questionIDs, rows.Err()
}

// UpsertAnswer writes one answer row per (respondent, questionnaire,
// question), leaning on the unique constraint so re-answering replaces the
// previous value in place.
func (r *Repository) UpsertAnswer(ctx context.Context, body AnswerBody, questionType string, values AnswerValues) (database.Answer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var answer database.Answer
	err := r.db.QueryRow(ctx,
		`INSERT INTO answers (respondent_id, questionnaire_id, question_id, question_type, answer_bool, answer_text, answer_scale, answer_choices, answered_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		 ON CONFLICT (respondent_id, questionnaire_id, question_id) DO UPDATE
		 SET question_type = EXCLUDED.question_type,
		     answer_bool = EXCLUDED.answer_bool,
		     answer_text = EXCLUDED.answer_text,
		     answer_scale = EXCLUDED.answer_scale,
		     answer_choices = EXCLUDED.answer_choices,
		     answered_at = EXCLUDED.answered_at
		 RETURNING id, respondent_id, questionnaire_id, question_id, question_type, answer_bool, answer_text, answer_scale, answer_choices, answered_at`,
		body.RespondentID, body.QuestionnaireID, body.QuestionID, questionType,
		values.Bool, values.Text, values.Scale, values.Choices,
	).Scan(
		&answer.ID,
		&answer.RespondentID,
		&answer.QuestionnaireID,
		&answer.QuestionID,
		&answer.QuestionType,
		&answer.AnswerBool,
		&answer.AnswerText,
		&answer.AnswerScale,
		&answer.AnswerChoices,
		&answer.AnsweredAt,
	)
	if err != nil {
		return database.Answer{}, fmt.Errorf("error saving answer: %v", err)
	}

	return answer, nil
}
