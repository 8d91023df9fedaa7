package questionnaires

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matheusot/enquete/api/custom_errors"
	"github.com/matheusot/enquete/database"
)

type Store interface {
	CreateQuestionnaire(ctx context.Context, body CreateQuestionnaireBody) (database.Questionnaire, error)
	GetQuestionnaire(ctx context.Context, questionnaireID uuid.UUID) (database.Questionnaire, error)
	ListQuestionnaires(ctx context.Context) ([]database.Questionnaire, error)
	UpdateQuestionnaire(ctx context.Context, questionnaireID uuid.UUID, body UpdateQuestionnaireBody) (database.Questionnaire, error)
	UpdateIntakeFields(ctx context.Context, questionnaireID uuid.UUID, fields []database.IntakeField) (database.Questionnaire, error)

	// Question set
	ReplaceQuestions(ctx context.Context, questionnaireID uuid.UUID, questionIDs []uuid.UUID) error
	ListQuestionIDs(ctx context.Context, questionnaireID uuid.UUID) ([]uuid.UUID, error)
}

const UniqueViolation = "23505"

type Repository struct {
	db         *pgxpool.Pool
	transactor database.Transactor
}

func NewQuestionnaireStore(db *pgxpool.Pool) *Repository {
	return &Repository{db: db, transactor: database.NewDBTransactor(db)}
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

func (r *Repository) CreateQuestionnaire(ctx context.Context, body CreateQuestionnaireBody) (database.Questionnaire, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var fields any
	if len(body.IntakeFields) > 0 {
		fields = body.IntakeFields
	}

	questionnaire, err := scanQuestionnaire(r.db.QueryRow(ctx,
		`INSERT INTO questionnaires (name, slug, intake_fields)
		 VALUES ($1, $2, $3)
		 RETURNING `+questionnaireColumns,
		body.Name, body.Slug, fields,
	))
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == UniqueViolation {
			return database.Questionnaire{}, custom_errors.ErrConflict
		}
		return database.Questionnaire{}, fmt.Errorf("error creating questionnaire: %v", err)
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

func (r *Repository) ListQuestionnaires(ctx context.Context) ([]database.Questionnaire, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT `+questionnaireColumns+` FROM questionnaires ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing questionnaires: %v", err)
	}
	defer rows.Close()

	var questionnaires []database.Questionnaire
	for rows.Next() {
		questionnaire, err := scanQuestionnaire(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning questionnaire: %v", err)
		}
		questionnaires = append(questionnaires, questionnaire)
	}

	return questionnaires, rows.Err()
}

func (r *Repository) UpdateQuestionnaire(ctx context.Context, questionnaireID uuid.UUID, body UpdateQuestionnaireBody) (database.Questionnaire, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	name := pgtype.Text{}
	if body.Name != nil {
		name = pgtype.Text{String: *body.Name, Valid: true}
	}

	slug := pgtype.Text{}
	if body.Slug != nil {
		slug = pgtype.Text{String: *body.Slug, Valid: true}
	}

	questionnaire, err := scanQuestionnaire(r.db.QueryRow(ctx,
		`UPDATE questionnaires
		 SET name = COALESCE($2, name), slug = COALESCE($3, slug)
		 WHERE id = $1
		 RETURNING `+questionnaireColumns,
		questionnaireID, name, slug,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Questionnaire{}, custom_errors.ErrNotFound
		}
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == UniqueViolation {
			return database.Questionnaire{}, custom_errors.ErrConflict
		}
		return database.Questionnaire{}, fmt.Errorf("error updating questionnaire: %v", err)
	}

	return questionnaire, nil
}

func (r *Repository) UpdateIntakeFields(ctx context.Context, questionnaireID uuid.UUID, fields []database.IntakeField) (database.Questionnaire, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	questionnaire, err := scanQuestionnaire(r.db.QueryRow(ctx,
		`UPDATE questionnaires SET intake_fields = $2 WHERE id = $1
		 RETURNING `+questionnaireColumns,
		questionnaireID, fields,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Questionnaire{}, custom_errors.ErrNotFound
		}
		return database.Questionnaire{}, fmt.Errorf("error updating intake fields: %v", err)
	}

	return questionnaire, nil
}

// ReplaceQuestions swaps the questionnaire's question set wholesale: current
// links are deleted and the selection inserted inside one transaction, so a
// save is never a merge.
func (r *Repository) ReplaceQuestions(ctx context.Context, questionnaireID uuid.UUID, questionIDs []uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err := r.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		executor := database.From(ctx, r.db)

		if _, err := executor.Exec(ctx,
			`DELETE FROM questionnaire_questions WHERE questionnaire_id = $1`, questionnaireID); err != nil {
			return err
		}

		if len(questionIDs) == 0 {
			return nil
		}

		_, err := executor.Exec(ctx,
			`INSERT INTO questionnaire_questions (questionnaire_id, question_id)
			 SELECT $1, unnest($2::uuid[])`,
			questionnaireID, questionIDs,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("error replacing questionnaire questions: %v", err)
	}

	return nil
}

func (r *Repository) ListQuestionIDs(ctx context.Context, questionnaireID uuid.UUID) ([]uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT question_id FROM questionnaire_questions WHERE questionnaire_id = $1`, questionnaireID)
	if err != nil {
		return nil, fmt.Errorf("error listing questionnaire questions: %v", err)
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
