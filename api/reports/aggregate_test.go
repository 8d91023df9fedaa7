package reports_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/matheusot/enquete/api/reports"
	"github.com/matheusot/enquete/database"
	"github.com/shopspring/decimal"
)

// ============================================================================
// Test Helpers
// ============================================================================

func numeric(t *testing.T, value string) pgtype.Numeric {
	t.Helper()
	var n pgtype.Numeric
	if err := n.Scan(value); err != nil {
		t.Fatalf("could not scan numeric %q: %v", value, err)
	}
	return n
}

func assertDecimal(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("decimal = %s, want %s", got, want)
	}
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func yesNoQuestion(id uuid.UUID, weight string, t *testing.T) database.Question {
	t.Helper()
	return database.Question{ID: id, Text: "q", Type: database.TypeYesNo, Weight: numeric(t, weight)}
}

func boolAnswer(questionID uuid.UUID, value bool) database.Answer {
	return database.Answer{
		QuestionID:   questionID,
		QuestionType: database.TypeYesNo,
		AnswerBool:   pgtype.Bool{Bool: value, Valid: true},
	}
}

// ============================================================================
// BuildReport Tests
// ============================================================================

func TestBuildReport(t *testing.T) {
	respondent := database.Respondent{ID: uuid.New(), Name: "Maria"}
	questionnaire := database.Questionnaire{ID: uuid.New(), Name: "Maturity check"}

	t.Run("every question weighs the denominator, only answered yes/no questions score", func(t *testing.T) {
		q1 := uuid.New()
		q2 := uuid.New()
		q3 := uuid.New()

		questions := []database.Question{
			yesNoQuestion(q1, "20", t),
			yesNoQuestion(q2, "30", t),
			{ID: q3, Text: "notes", Type: database.TypeShortText, Weight: numeric(t, "10")},
		}
		answers := []database.Answer{
			boolAnswer(q1, true),
			{QuestionID: q3, QuestionType: database.TypeShortText, AnswerText: pgtype.Text{String: "fine", Valid: true}},
		}

		detail := reports.BuildReport(respondent, questionnaire, questions, answers, nil)

		assertDecimal(t, detail.TotalPossibleWeight, "60")
		assertDecimal(t, detail.WeightYes, "20")
		assertDecimal(t, detail.WeightNo, "0")
		if detail.OverallPercentage != 33 {
			t.Errorf("overall percentage = %d, want 33", detail.OverallPercentage)
		}
	})

	t.Run("zero total weight yields zero percentage", func(t *testing.T) {
		detail := reports.BuildReport(respondent, questionnaire, nil, nil, nil)

		if detail.OverallPercentage != 0 {
			t.Errorf("overall percentage = %d, want 0", detail.OverallPercentage)
		}
		assertDecimal(t, detail.TotalPossibleWeight, "0")
	})

	t.Run("yes and no weights never exceed the total", func(t *testing.T) {
		q1 := uuid.New()
		q2 := uuid.New()
		q3 := uuid.New()

		questions := []database.Question{
			yesNoQuestion(q1, "20", t),
			yesNoQuestion(q2, "30", t),
			yesNoQuestion(q3, "10", t),
		}
		answers := []database.Answer{
			boolAnswer(q1, true),
			boolAnswer(q2, false),
		}

		detail := reports.BuildReport(respondent, questionnaire, questions, answers, nil)

		assertDecimal(t, detail.WeightYes, "20")
		assertDecimal(t, detail.WeightNo, "30")
		if detail.WeightYes.Add(detail.WeightNo).GreaterThan(detail.TotalPossibleWeight) {
			t.Errorf("yes (%s) + no (%s) exceeds total (%s)", detail.WeightYes, detail.WeightNo, detail.TotalPossibleWeight)
		}
	})

	t.Run("a yes/no answer without a boolean never counts as no", func(t *testing.T) {
		q1 := uuid.New()

		questions := []database.Question{yesNoQuestion(q1, "20", t)}
		answers := []database.Answer{
			{
				QuestionID:   q1,
				QuestionType: database.TypeYesNo,
				AnswerText:   pgtype.Text{String: "stray row", Valid: true},
			},
		}

		detail := reports.BuildReport(respondent, questionnaire, questions, answers, nil)

		assertDecimal(t, detail.WeightYes, "0")
		assertDecimal(t, detail.WeightNo, "0")
		if got := detail.Items[0].DisplayValue; got != "" {
			t.Errorf("display value = %q, want empty", got)
		}
	})

	t.Run("fractional weights keep exact totals", func(t *testing.T) {
		q1 := uuid.New()
		q2 := uuid.New()

		questions := []database.Question{
			yesNoQuestion(q1, "0.1", t),
			yesNoQuestion(q2, "0.2", t),
		}
		answers := []database.Answer{
			boolAnswer(q1, true),
			boolAnswer(q2, true),
		}

		detail := reports.BuildReport(respondent, questionnaire, questions, answers, nil)

		assertDecimal(t, detail.TotalPossibleWeight, "0.3")
		assertDecimal(t, detail.WeightYes, "0.3")
		if detail.OverallPercentage != 100 {
			t.Errorf("overall percentage = %d, want 100", detail.OverallPercentage)
		}
	})

	t.Run("buckets group by category and sort by percentage descending", func(t *testing.T) {
		strongCategory := uuid.New()
		weakCategory := uuid.New()
		categoryNames := map[uuid.UUID]string{
			strongCategory: "Processes",
			weakCategory:   "Finance",
		}

		q1 := uuid.New()
		q2 := uuid.New()
		q3 := uuid.New()

		questions := []database.Question{
			{ID: q1, Type: database.TypeYesNo, Weight: numeric(t, "10"), CategoryID: pgUUID(weakCategory)},
			{ID: q2, Type: database.TypeYesNo, Weight: numeric(t, "10"), CategoryID: pgUUID(strongCategory)},
			{ID: q3, Type: database.TypeYesNo, Weight: numeric(t, "10")},
		}
		answers := []database.Answer{
			boolAnswer(q1, false),
			boolAnswer(q2, true),
		}

		detail := reports.BuildReport(respondent, questionnaire, questions, answers, categoryNames)

		if len(detail.Categories) != 3 {
			t.Fatalf("got %d buckets, want 3", len(detail.Categories))
		}
		if detail.Categories[0].Name != "Processes" || detail.Categories[0].Percentage != 100 {
			t.Errorf("first bucket = %s (%d%%), want Processes (100%%)", detail.Categories[0].Name, detail.Categories[0].Percentage)
		}
		for _, bucket := range detail.Categories[1:] {
			if bucket.Percentage != 0 {
				t.Errorf("bucket %s percentage = %d, want 0", bucket.Name, bucket.Percentage)
			}
		}

		var uncategorized *reports.CategoryBucket
		for i := range detail.Categories {
			if detail.Categories[i].Key == "uncategorized" {
				uncategorized = &detail.Categories[i]
			}
		}
		if uncategorized == nil {
			t.Fatal("expected an uncategorized bucket")
		}
		if uncategorized.QuestionCount != 1 || uncategorized.AnsweredCount != 0 {
			t.Errorf("uncategorized counts = %d/%d, want 1/0", uncategorized.AnsweredCount, uncategorized.QuestionCount)
		}
	})

	t.Run("counting follows the type recorded with the answer", func(t *testing.T) {
		q1 := uuid.New()

		// retyped to short_text after the answer was recorded as yes_no
		questions := []database.Question{
			{ID: q1, Type: database.TypeShortText, Weight: numeric(t, "10")},
		}
		answers := []database.Answer{boolAnswer(q1, true)}

		detail := reports.BuildReport(respondent, questionnaire, questions, answers, nil)

		assertDecimal(t, detail.WeightYes, "10")
	})
}

// ============================================================================
// Display Value Tests
// ============================================================================

func TestDisplayValues(t *testing.T) {
	respondent := database.Respondent{ID: uuid.New()}
	questionnaire := database.Questionnaire{ID: uuid.New()}

	display := func(t *testing.T, question database.Question, answer database.Answer) string {
		t.Helper()
		question.Weight = numeric(t, "1")
		answer.QuestionID = question.ID
		detail := reports.BuildReport(respondent, questionnaire, []database.Question{question}, []database.Answer{answer}, nil)
		if len(detail.Items) != 1 {
			t.Fatalf("got %d items, want 1", len(detail.Items))
		}
		return detail.Items[0].DisplayValue
	}

	t.Run("yes/no answers render their label", func(t *testing.T) {
		question := database.Question{ID: uuid.New(), Type: database.TypeYesNo}

		if got := display(t, question, boolAnswer(question.ID, true)); got != "Yes" {
			t.Errorf("display = %q, want %q", got, "Yes")
		}
		if got := display(t, question, boolAnswer(question.ID, false)); got != "No" {
			t.Errorf("display = %q, want %q", got, "No")
		}
	})

	t.Run("scale answers carry the configured range", func(t *testing.T) {
		question := database.Question{
			ID:          uuid.New(),
			Type:        database.TypeScale,
			ScaleConfig: &database.ScaleConfig{Min: 1, Max: 10, Step: 1},
		}
		answer := database.Answer{
			QuestionType: database.TypeScale,
			AnswerScale:  pgtype.Float8{Float64: 7, Valid: true},
		}

		if got := display(t, question, answer); got != "7 (1-10)" {
			t.Errorf("display = %q, want %q", got, "7 (1-10)")
		}
	})

	t.Run("choice answers resolve stored values to labels", func(t *testing.T) {
		question := database.Question{
			ID:   uuid.New(),
			Type: database.TypeMultiChoice,
			Options: []database.Option{
				{Label: "Small", Value: "s"},
				{Label: "Large", Value: "l"},
			},
		}
		answer := database.Answer{
			QuestionType:  database.TypeMultiChoice,
			AnswerChoices: []string{"s", "l", "gone"},
		}

		// values without a matching option fall back to the raw value
		if got := display(t, question, answer); got != "Small, Large, gone" {
			t.Errorf("display = %q, want %q", got, "Small, Large, gone")
		}
	})

	t.Run("text answers render verbatim", func(t *testing.T) {
		question := database.Question{ID: uuid.New(), Type: database.TypeLongText}
		answer := database.Answer{
			QuestionType: database.TypeLongText,
			AnswerText:   pgtype.Text{String: "we have a backlog", Valid: true},
		}

		if got := display(t, question, answer); got != "we have a backlog" {
			t.Errorf("display = %q, want %q", got, "we have a backlog")
		}
	})

	t.Run("unanswered questions render nothing", func(t *testing.T) {
		question := database.Question{ID: uuid.New(), Type: database.TypeYesNo}
		question.Weight = numeric(t, "1")

		detail := reports.BuildReport(respondent, questionnaire, []database.Question{question}, nil, nil)

		if detail.Items[0].Answered {
			t.Error("expected item to be unanswered")
		}
		if detail.Items[0].DisplayValue != "" {
			t.Errorf("display = %q, want empty", detail.Items[0].DisplayValue)
		}
	})
}
