package reports

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matheusot/enquete/api/custom_errors"
	"github.com/matheusot/enquete/database"
)

type Store interface {
	ListSummaries(ctx context.Context) ([]SummaryRow, error)
	GetRespondent(ctx context.Context, respondentID uuid.UUID) (database.Respondent, error)
	GetQuestionnaire(ctx context.Context, questionnaireID uuid.UUID) (database.Questionnaire, error)
	ListLinkedQuestions(ctx context.Context, questionnaireID uuid.UUID) ([]database.Question, error)
	ListAnswers(ctx context.Context, respondentID, questionnaireID uuid.UUID) ([]database.Answer, error)
	ListCategoryNames(ctx context.Context) (map[uuid.UUID]string, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewReportStore(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListSummaries(ctx context.Context) ([]SummaryRow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT r.id, r.name, qn.id, qn.name,
		        COUNT(a.id),
		        (SELECT COUNT(*) FROM questionnaire_questions qq WHERE qq.questionnaire_id = qn.id),
		        MAX(a.answered_at)
		 FROM respondents r
		 JOIN questionnaires qn ON qn.id = r.questionnaire_id
		 LEFT JOIN answers a ON a.respondent_id = r.id AND a.questionnaire_id = qn.id
		 GROUP BY r.id, r.name, qn.id, qn.name
		 ORDER BY MAX(a.answered_at) DESC NULLS LAST, r.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("error listing report summaries: %v", err)
	}
	defer rows.Close()

	var summaries []SummaryRow
	for rows.Next() {
		var summary SummaryRow
		err := rows.Scan(
			&summary.RespondentID,
			&summary.RespondentName,
			&summary.QuestionnaireID,
			&summary.QuestionnaireName,
			&summary.AnsweredCount,
			&summary.QuestionCount,
			&summary.LastAnswerAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning report summary: %v", err)
		}
		if summary.QuestionCount > 0 {
			summary.CompletionPct = int64(math.Round(float64(summary.AnsweredCount) / float64(summary.QuestionCount) * 100))
		}
		summaries = append(summaries, summary)
	}

	return summaries, rows.Err()
}

func (r *Repository) GetRespondent(ctx context.Context, respondentID uuid.UUID) (database.Respondent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var respondent database.Respondent
	err := r.db.QueryRow(ctx,
		`SELECT id, questionnaire_id, name, email, phone, tax_id, company, employee_count, industry, created_at
		 FROM respondents WHERE id = $1`, respondentID).Scan(
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
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Respondent{}, custom_errors.ErrNotFound
		}
		return database.Respondent{}, fmt.Errorf("error getting respondent: %v", err)
	}

	return respondent, nil
}

func (r *Repository) GetQuestionnaire(ctx context.Context, questionnaireID uuid.UUID) (database.Questionnaire, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var questionnaire database.Questionnaire
	err := r.db.QueryRow(ctx,
		`SELECT id, name, slug, intake_fields, created_at FROM questionnaires WHERE id = $1`,
		questionnaireID).Scan(
		&questionnaire.ID,
		&questionnaire.Name,
		&questionnaire.Slug,
		&questionnaire.IntakeFields,
		&questionnaire.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Questionnaire{}, custom_errors.ErrNotFound
		}
		return database.Questionnaire{}, fmt.Errorf("error getting questionnaire: %v", err)
	}

	return questionnaire, nil
}

func (r *Repository) ListLinkedQuestions(ctx context.Context, questionnaireID uuid.UUID) ([]database.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT q.id, q.text, q.weight, q.active, q.category_id, q.type, q.options, q.scale_config, q.created_at
		 FROM questionnaire_questions qq
		 JOIN questions q ON q.id = qq.question_id
		 WHERE qq.questionnaire_id = $1
		 ORDER BY q.created_at ASC`,
		questionnaireID,
	)
	if err != nil {
		return nil, fmt.Errorf("error listing linked questions: %v", err)
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

func (r *Repository) ListAnswers(ctx context.Context, respondentID, questionnaireID uuid.UUID) ([]database.Answer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT id, respondent_id, questionnaire_id, question_id, question_type, answer_bool, answer_text, answer_scale, answer_choices, answered_at
		 FROM answers
		 WHERE respondent_id = $1 AND questionnaire_id = $2`,
		respondentID, questionnaireID,
	)
	if err != nil {
		return nil, fmt.Errorf("error listing answers: %v", err)
	}
	defer rows.Close()

	var answers []database.Answer
	for rows.Next() {
		var answer database.Answer
		err := rows.Scan(
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
			return nil, fmt.Errorf("error scanning answer: %v", err)
		}
		answers = append(answers, answer)
	}

	return answers, rows.Err()
}

func (r *Repository) ListCategoryNames(ctx context.Context) (map[uuid.UUID]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, name FROM categories`)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %v", err)
	}
	defer rows.Close()

	names := make(map[uuid.UUID]string)
	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("error scanning category: %v", err)
		}
		names[id] = name
	}

	return names, rows.Err()
}
