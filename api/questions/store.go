package questions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matheusot/enquete/api/custom_errors"
	"github.com/matheusot/enquete/database"
)

type Store interface {
	CreateQuestion(ctx context.Context, body CreateQuestionBody) (database.Question, error)
	GetQuestion(ctx context.Context, questionID uuid.UUID) (database.Question, error)
	ListQuestions(ctx context.Context, params ListQuestionsParams) ([]database.Question, error)
	UpdateQuestion(ctx context.Context, questionID uuid.UUID, body UpdateQuestionBody) (database.Question, error)
	DeleteQuestion(ctx context.Context, questionID uuid.UUID) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewQuestionStore(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const questionColumns = `id, text, weight, active, category_id, type, options, scale_config, created_at`

func scanQuestion(row pgx.Row) (database.Question, error) {
	var question database.Question
	err := row.Scan(
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
	return question, err
}

func (r *Repository) CreateQuestion(ctx context.Context, body CreateQuestionBody) (database.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	weight := pgtype.Numeric{}
	if err := weight.Scan(body.Weight.String()); err != nil {
		return database.Question{}, fmt.Errorf("error scanning weight: %v", err)
	}

	active := true
	if body.Active != nil {
		active = *body.Active
	}

	var options any
	if len(body.Options) > 0 {
		options = body.Options
	}
	var scaleConfig any
	if body.ScaleConfig != nil {
		scaleConfig = body.ScaleConfig
	}

	question, err := scanQuestion(r.db.QueryRow(ctx,
		`INSERT INTO questions (text, weight, active, category_id, type, options, scale_config)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+questionColumns,
		body.Text, weight, active, body.CategoryID, body.Type, options, scaleConfig,
	))
	if err != nil {
		return database.Question{}, fmt.Errorf("error creating question: %v", err)
	}

	return question, nil
}

func (r *Repository) GetQuestion(ctx context.Context, questionID uuid.UUID) (database.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	question, err := scanQuestion(r.db.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, questionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Question{}, custom_errors.ErrNotFound
		}
		return database.Question{}, fmt.Errorf("error getting question: %v", err)
	}

	return question, nil
}

func (r *Repository) ListQuestions(ctx context.Context, params ListQuestionsParams) ([]database.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT `+questionColumns+`
		 FROM questions
		 WHERE ($1::uuid IS NULL OR category_id = $1)
		   AND ($2::boolean IS NULL OR active = $2)
		 ORDER BY created_at ASC`,
		params.CategoryID, params.Active,
	)
	if err != nil {
		return nil, fmt.Errorf("error listing questions: %v", err)
	}
	defer rows.Close()

	var questions []database.Question
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning question: %v", err)
		}
		questions = append(questions, question)
	}

	return questions, rows.Err()
}

func (r *Repository) UpdateQuestion(ctx context.Context, questionID uuid.UUID, body UpdateQuestionBody) (database.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	text := pgtype.Text{}
	if body.Text != nil {
		text = pgtype.Text{String: *body.Text, Valid: true}
	}

	weight := pgtype.Numeric{}
	if body.Weight != nil {
		if err := weight.Scan(body.Weight.String()); err != nil {
			return database.Question{}, fmt.Errorf("error scanning weight: %v", err)
		}
	}

	questionType := pgtype.Text{}
	if body.Type != nil {
		questionType = pgtype.Text{String: *body.Type, Valid: true}
	}

	var options any
	if len(body.Options) > 0 {
		options = body.Options
	}
	var scaleConfig any
	if body.ScaleConfig != nil {
		scaleConfig = body.ScaleConfig
	}

	// category_id and the type configs are replaced outright: sending a
	// question back to uncategorized or clearing options must stick.
	question, err := scanQuestion(r.db.QueryRow(ctx,
		`UPDATE questions
		 SET text = COALESCE($2, text),
		     weight = COALESCE($3, weight),
		     active = COALESCE($4, active),
		     category_id = $5,
		     type = COALESCE($6, type),
		     options = $7,
		     scale_config = $8
		 WHERE id = $1
		 RETURNING `+questionColumns,
		questionID, text, weight, body.Active, body.CategoryID, questionType, options, scaleConfig,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Question{}, custom_errors.ErrNotFound
		}
		return database.Question{}, fmt.Errorf("error updating question: %v", err)
	}

	return question, nil
}

func (r *Repository) DeleteQuestion(ctx context.Context, questionID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, questionID)
	if err != nil {
		return fmt.Errorf("error deleting question: %v", err)
	}
	if tag.RowsAffected() == 0 {
		return custom_errors.ErrNotFound
	}

	return nil
}
