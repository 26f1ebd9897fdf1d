package dashboard

import (
	"github.com/oklog/ulid/v2"

	"github.com/robsonsvicero/financassimples/internal/domain/billing"
	"github.com/robsonsvicero/financassimples/internal/domain/budget"
)

type FinancialSummary struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	Balance      float64 `json:"balance"`
	PendingCount int     `json:"pendingCount"`
}

type CategoryExpense struct {
	CategoryId   ulid.ULID `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	Total        float64   `json:"total"`
}

type MonthlyTrendItem struct {
	Month   int     `json:"month"`
	Year    int     `json:"year"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

type DashboardResponse struct {
	Summary          *FinancialSummary     `json:"summary"`
	MonthlyTrend     []*MonthlyTrendItem   `json:"monthlyTrend"`
	CategoryExpenses []*CategoryExpense    `json:"categoryExpenses"`
	RecentItems      []billing.DisplayItem `json:"recentItems"`
	BudgetStatus     []*budget.Budget      `json:"budgetStatus"`
}
