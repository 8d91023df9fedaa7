package reports

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/matheusot/enquete/database"
	"github.com/shopspring/decimal"
)

// uncategorizedKey is the sentinel bucket for questions without a category.
const uncategorizedKey = "uncategorized"

type ReportItem struct {
	QuestionID   uuid.UUID       `json:"question_id"`
	Text         string          `json:"text"`
	Type         string          `json:"type"`
	Weight       decimal.Decimal `json:"weight"`
	CategoryKey  string          `json:"category_key"`
	CategoryName string          `json:"category_name"`
	Answered     bool            `json:"answered"`
	DisplayValue string          `json:"display_value"`
}

type CategoryBucket struct {
	Key           string          `json:"key"`
	Name          string          `json:"name"`
	TotalWeight   decimal.Decimal `json:"total_weight"`
	WeightYes     decimal.Decimal `json:"weight_yes"`
	WeightNo      decimal.Decimal `json:"weight_no"`
	Percentage    int64           `json:"percentage"`
	QuestionCount int             `json:"question_count"`
	AnsweredCount int             `json:"answered_count"`
}

type ReportDetail struct {
	Respondent          database.Respondent    `json:"respondent"`
	Questionnaire       database.Questionnaire `json:"questionnaire"`
	TotalPossibleWeight decimal.Decimal        `json:"total_possible_weight"`
	WeightYes           decimal.Decimal        `json:"weight_yes"`
	WeightNo            decimal.Decimal        `json:"weight_no"`
	OverallPercentage   int64                  `json:"overall_percentage"`
	Categories          []CategoryBucket       `json:"categories"`
	Items               []ReportItem           `json:"items"`
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

// answered reports whether any of the four value columns holds a value.
func answered(a database.Answer) bool {
	return a.AnswerBool.Valid || a.AnswerText.Valid || a.AnswerScale.Valid || a.AnswerChoices != nil
}

// percentage is round(yes/total*100), 0 when the denominator is zero.
func percentage(yes, total decimal.Decimal) int64 {
	if total.IsZero() {
		return 0
	}
	return yes.Div(total).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// displayValue renders an answer for the report page based on the type tag
// recorded with the answer. Choice values are resolved back to their labels
// through the question's current options.
func displayValue(question database.Question, answer database.Answer) string {
	switch answer.QuestionType {
	case database.TypeYesNo:
		if !answer.AnswerBool.Valid {
			return ""
		}
		if answer.AnswerBool.Bool {
			return "Yes"
		}
		return "No"
	case database.TypeScale:
		value := fmt.Sprintf("%v", answer.AnswerScale.Float64)
		if question.ScaleConfig != nil {
			return fmt.Sprintf("%s (%d-%d)", value, question.ScaleConfig.Min, question.ScaleConfig.Max)
		}
		return value
	case database.TypeSingleChoice, database.TypeMultiChoice:
		labels := make([]string, 0, len(answer.AnswerChoices))
		for _, choice := range answer.AnswerChoices {
			label := choice
			for _, option := range question.Options {
				if option.Value == choice {
					label = option.Label
					break
				}
			}
			labels = append(labels, label)
		}
		return strings.Join(labels, ", ")
	default:
		return answer.AnswerText.String
	}
}

// BuildReport aggregates one respondent's answers into the weighted report.
// Every linked question contributes its weight to the denominator; only
// answered yes_no questions contribute to the yes/no numerators.
func BuildReport(
	respondent database.Respondent,
	questionnaire database.Questionnaire,
	questions []database.Question,
	answers []database.Answer,
	categoryNames map[uuid.UUID]string,
) ReportDetail {
	answersByQuestion := make(map[uuid.UUID]database.Answer, len(answers))
	for _, answer := range answers {
		answersByQuestion[answer.QuestionID] = answer
	}

	detail := ReportDetail{
		Respondent:    respondent,
		Questionnaire: questionnaire,
	}

	buckets := make(map[string]*CategoryBucket)
	order := []string{}

	for _, question := range questions {
		weight := numericToDecimal(question.Weight)

		key := uncategorizedKey
		name := "Uncategorized"
		if question.CategoryID.Valid {
			categoryID := uuid.UUID(question.CategoryID.Bytes)
			key = categoryID.String()
			if categoryName, ok := categoryNames[categoryID]; ok {
				name = categoryName
			} else {
				name = key
			}
		}

		bucket, ok := buckets[key]
		if !ok {
			bucket = &CategoryBucket{Key: key, Name: name}
			buckets[key] = bucket
			order = append(order, key)
		}

		item := ReportItem{
			QuestionID:   question.ID,
			Text:         question.Text,
			Type:         question.Type,
			Weight:       weight,
			CategoryKey:  key,
			CategoryName: name,
		}

		detail.TotalPossibleWeight = detail.TotalPossibleWeight.Add(weight)
		bucket.TotalWeight = bucket.TotalWeight.Add(weight)
		bucket.QuestionCount++

		answer, hasAnswer := answersByQuestion[question.ID]
		if hasAnswer && answered(answer) {
			item.Answered = true
			item.DisplayValue = displayValue(question, answer)
			bucket.AnsweredCount++

			if answer.QuestionType == database.TypeYesNo && answer.AnswerBool.Valid {
				if answer.AnswerBool.Bool {
					detail.WeightYes = detail.WeightYes.Add(weight)
					bucket.WeightYes = bucket.WeightYes.Add(weight)
				} else {
					detail.WeightNo = detail.WeightNo.Add(weight)
					bucket.WeightNo = bucket.WeightNo.Add(weight)
				}
			}
		}

		detail.Items = append(detail.Items, item)
	}

	detail.OverallPercentage = percentage(detail.WeightYes, detail.TotalPossibleWeight)

	for _, key := range order {
		bucket := buckets[key]
		bucket.Percentage = percentage(bucket.WeightYes, bucket.TotalWeight)
		detail.Categories = append(detail.Categories, *bucket)
	}

	sort.SliceStable(detail.Categories, func(i, j int) bool {
		return detail.Categories[i].Percentage > detail.Categories[j].Percentage
	})

	return detail
}
