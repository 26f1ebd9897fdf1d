package contracts

import (
	"time"

	"github.com/robsonsvicero/financassimples/internal/domain/billing"
	"github.com/robsonsvicero/financassimples/internal/domain/transaction"
)

type TransactionCreateRequest struct {
	Description   string    `json:"description" binding:"required,max=255"`
	Amount        float64   `json:"amount" binding:"required,gt=0"`
	Date          time.Time `json:"date" binding:"required"`
	Type          string    `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	ExpenseType   string    `json:"expenseType" binding:"omitempty,oneof=FIXED VARIABLE"`
	CategoryId    string    `json:"categoryId" binding:"omitempty"`
	PaymentMethod string    `json:"paymentMethod" binding:"required,oneof=CASH DEBIT PIX CREDIT"`
}

type TransactionUpdateRequest struct {
	Description *string    `json:"description" binding:"omitempty,max=255"`
	Amount      *float64   `json:"amount" binding:"omitempty,gt=0"`
	Date        *time.Time `json:"date" binding:"omitempty"`
	CategoryId  *string    `json:"categoryId" binding:"omitempty"`
	ExpenseType *string    `json:"expenseType" binding:"omitempty,oneof=FIXED VARIABLE"`
}

type CreditPurchaseRequest struct {
	CreditCardId string    `json:"creditCardId" binding:"required"`
	Description  string    `json:"description" binding:"required,max=255"`
	Amount       float64   `json:"amount" binding:"required,gt=0"`
	Date         time.Time `json:"date" binding:"required"`
	CategoryId   string    `json:"categoryId" binding:"omitempty"`
	ExpenseType  string    `json:"expenseType" binding:"omitempty,oneof=FIXED VARIABLE"`
	Installments int       `json:"installments" binding:"omitempty,min=1,max=48"`
}

type SetPaidRequest struct {
	IsPaid bool `json:"isPaid"`
}

type InvoicePayRequest struct {
	DueDate time.Time `json:"dueDate" binding:"required"`
}

type TransactionListResponse struct {
	Transactions []*transaction.Transaction `json:"transactions"`
	Total        int64                      `json:"total"`
	Page         int                        `json:"page"`
	Limit        int                        `json:"limit"`
}

type TransactionResponse struct {
	Transaction *transaction.Transaction `json:"transaction"`
}

type CreditPurchaseResponse struct {
	Message      string                     `json:"message"`
	Installments []*transaction.Transaction `json:"installments"`
}

type StatementResponse struct {
	Items []billing.DisplayItem `json:"items"`
	Month int                   `json:"month"`
	Year  int                   `json:"year"`
}

type InvoiceResponse struct {
	Invoice *billing.Invoice `json:"invoice"`
}

type BatchResultResponse struct {
	Message string               `json:"message"`
	Result  *billing.BatchResult `json:"result"`
}
