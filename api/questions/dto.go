package questions

import (
	"github.com/google/uuid"
	"github.com/matheusot/enquete/database"
	"github.com/shopspring/decimal"
)

// Parameter structs
type CreateQuestionBody struct {
	Text        string                `json:"text" validate:"required"`
	Weight      decimal.Decimal       `json:"weight"`
	Active      *bool                 `json:"active"`
	CategoryID  *uuid.UUID            `json:"category_id"`
	Type        string                `json:"type" validate:"required"`
	Options     []database.Option     `json:"options"`
	ScaleConfig *database.ScaleConfig `json:"scale_config"`
}

type UpdateQuestionBody struct {
	Text        *string               `json:"text"`
	Weight      *decimal.Decimal      `json:"weight"`
	Active      *bool                 `json:"active"`
	CategoryID  *uuid.UUID            `json:"category_id"`
	Type        *string               `json:"type"`
	Options     []database.Option     `json:"options"`
	ScaleConfig *database.ScaleConfig `json:"scale_config"`
}

type ListQuestionsParams struct {
	CategoryID *uuid.UUID
	Active     *bool
}
