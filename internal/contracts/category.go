package contracts

import "github.com/robsonsvicero/financassimples/internal/domain/category"

type CategoryCreateRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Icon  string `json:"icon" binding:"omitempty,max=50"`
	Color string `json:"color" binding:"omitempty,max=30"`
	Type  string `json:"type" binding:"omitempty,oneof=EXPENSE INCOME BOTH"`
}

type CategoryUpdateRequest struct {
	Name  string `json:"name" binding:"omitempty,max=100"`
	Icon  string `json:"icon" binding:"omitempty,max=50"`
	Color string `json:"color" binding:"omitempty,max=30"`
}

type CategoryListResponse struct {
	Categories []*category.Category `json:"categories"`
	Total      int                  `json:"total"`
}

type CategoryResponse struct {
	Category *category.Category `json:"category"`
}
