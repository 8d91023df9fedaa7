package questions

import (
	"errors"
	"fmt"

	"github.com/matheusot/enquete/database"
	"github.com/shopspring/decimal"
)

// validateQuestion enforces the per-type configuration rules before any
// write reaches the store.
func validateQuestion(questionType string, weight decimal.Decimal, options []database.Option, scaleConfig *database.ScaleConfig) error {
	if !database.QuestionTypes[questionType] {
		return fmt.Errorf("invalid field type: unknown question type %q", questionType)
	}

	if weight.IsNegative() {
		return errors.New("invalid field weight: must not be negative")
	}

	switch questionType {
	case database.TypeSingleChoice, database.TypeMultiChoice:
		if len(options) < 2 {
			return errors.New("invalid field options: choice questions need at least 2 options")
		}
		for _, option := range options {
			if option.Value == "" {
				return errors.New("invalid field options: every option needs a value")
			}
		}
	case database.TypeScale:
		if scaleConfig == nil {
			return errors.New("invalid field scale_config: required for scale questions")
		}
		if scaleConfig.Min >= scaleConfig.Max {
			return errors.New("invalid field scale_config: min must be below max")
		}
		if scaleConfig.Step < 0 {
			return errors.New("invalid field scale_config: step must not be negative")
		}
	}

	return nil
}
