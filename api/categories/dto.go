package categories

// Parameter structs
type CreateCategoryBody struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type UpdateCategoryBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
