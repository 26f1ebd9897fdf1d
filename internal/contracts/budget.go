package contracts

import "github.com/robsonsvicero/financassimples/internal/domain/budget"

type BudgetCreateRequest struct {
	CategoryId string  `json:"categoryId" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Month      int     `json:"month" binding:"required,min=1,max=12"`
	Year       int     `json:"year" binding:"required,min=2000"`
	AlertAt    float64 `json:"alertAt" binding:"omitempty,gt=0,max=100"`
}

type BudgetUpdateRequest struct {
	Amount  float64 `json:"amount" binding:"omitempty,gt=0"`
	AlertAt float64 `json:"alertAt" binding:"omitempty,gt=0,max=100"`
}

type BudgetListResponse struct {
	Budgets []*budget.Budget `json:"budgets"`
	Total   int              `json:"total"`
}

type BudgetResponse struct {
	Budget *budget.Budget `json:"budget"`
}
