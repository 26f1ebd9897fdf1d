package report

import (
	"github.com/oklog/ulid/v2"
)

type MonthlyReport struct {
	UserId             ulid.ULID        `json:"userId"`
	Month              int              `json:"month"`
	Year               int              `json:"year"`
	TotalIncome        float64          `json:"totalIncome"`
	TotalExpenses      float64          `json:"totalExpenses"`
	NetBalance         float64          `json:"netBalance"`
	SavingsRate        float64          `json:"savingsRate"`
	ExpensesByCategory []CategoryAmount `json:"expensesByCategory"`
	IncomeByCategory   []CategoryAmount `json:"incomeByCategory"`
}

type CategoryAmount struct {
	CategoryId   ulid.ULID `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	Amount       float64   `json:"amount"`
	Percentage   float64   `json:"percentage"`
	Count        int       `json:"count"`
}

type YearlyReport struct {
	UserId        ulid.ULID       `json:"userId"`
	Year          int             `json:"year"`
	TotalIncome   float64         `json:"totalIncome"`
	TotalExpenses float64         `json:"totalExpenses"`
	NetBalance    float64         `json:"netBalance"`
	Months        []*MonthSummary `json:"months"`
}

type MonthSummary struct {
	Month    int     `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
}
