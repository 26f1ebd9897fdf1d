package contracts

import "github.com/robsonsvicero/financassimples/internal/domain/card"

type CardCreateRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	ClosingDay int    `json:"closingDay" binding:"required,min=1,max=31"`
	DueDay     int    `json:"dueDay" binding:"required,min=1,max=31"`
	Color      string `json:"color" binding:"omitempty,max=50"`
}

type CardUpdateRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=100"`
	ClosingDay *int    `json:"closingDay" binding:"omitempty,min=1,max=31"`
	DueDay     *int    `json:"dueDay" binding:"omitempty,min=1,max=31"`
	Color      *string `json:"color" binding:"omitempty,max=50"`
}

type CardListResponse struct {
	Cards []*card.CreditCard `json:"cards"`
	Total int                `json:"total"`
}

type CardResponse struct {
	Card *card.CreditCard `json:"card"`
}
