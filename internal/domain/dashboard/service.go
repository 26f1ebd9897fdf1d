package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/robsonsvicero/financassimples/internal/domain/billing"
	"github.com/robsonsvicero/financassimples/internal/domain/budget"
	"github.com/robsonsvicero/financassimples/internal/domain/card"
	"github.com/robsonsvicero/financassimples/internal/domain/category"
	"github.com/robsonsvicero/financassimples/internal/domain/transaction"
	appErrors "github.com/robsonsvicero/financassimples/internal/errors"
)

// recentItemsLimit limita a lista de movimentações recentes do painel.
const recentItemsLimit = 5

// trendMonths é a janela da série mensal, mês corrente incluído.
const trendMonths = 6

type Service struct {
	TransactionRepo    transaction.Repository
	CardRepository     card.Repository
	CategoryRepository category.Repository
	BudgetService      *budget.Service
}

func NewService(
	transactionRepo transaction.Repository,
	cardRepo card.Repository,
	categoryRepo category.Repository,
	budgetSvc *budget.Service,
) *Service {
	return &Service{
		TransactionRepo:    transactionRepo,
		CardRepository:     cardRepo,
		CategoryRepository: categoryRepo,
		BudgetService:      budgetSvc,
	}
}

// GetDashboard monta o painel do período: totais, série mensal, gastos por
// categoria, movimentações recentes e situação dos orçamentos. Tudo deriva da
// mesma agregação de faturas usada na listagem, então despesa de crédito pesa
// no mês do vencimento.
func (s *Service) GetDashboard(ctx context.Context, userID ulid.ULID, month, year int) (*DashboardResponse, error) {
	now := time.Now()
	if month <= 0 || month > 12 {
		month = int(now.Month())
	}
	if year <= 0 {
		year = now.Year()
	}

	transactions, err := s.TransactionRepo.ListByUser(ctx, userID, nil)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	cards, err := s.CardRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	categories, err := s.CategoryRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	period := billing.Period{Year: year, Month: time.Month(month)}
	items := billing.Aggregate(transactions, cards, period)

	summary := summarize(items)

	trend := make([]*MonthlyTrendItem, 0, trendMonths)
	cursor := billing.Period{Year: year, Month: time.Month(month)}
	for i := 0; i < trendMonths; i++ {
		monthSummary := summarize(billing.Aggregate(transactions, cards, cursor))
		trend = append(trend, &MonthlyTrendItem{
			Month:   int(cursor.Month),
			Year:    cursor.Year,
			Income:  monthSummary.TotalIncome,
			Expense: monthSummary.TotalExpense,
		})
		cursor = cursor.Previous()
	}

	recent := items
	if len(recent) > recentItemsLimit {
		recent = recent[:recentItemsLimit]
	}

	budgets, err := s.BudgetService.ListWithSpending(ctx, userID, year, month)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		Summary:          summary,
		MonthlyTrend:     trend,
		CategoryExpenses: expensesByCategory(transactions, categories, period),
		RecentItems:      recent,
		BudgetStatus:     budgets,
	}, nil
}

func summarize(items []billing.DisplayItem) *FinancialSummary {
	income := decimal.Zero
	expense := decimal.Zero
	pending := 0

	for _, item := range items {
		if item.Invoice != nil {
			expense = expense.Add(decimal.NewFromFloat(item.Invoice.Amount))
			if !item.Invoice.IsPaid {
				pending++
			}
			continue
		}

		t := item.Transaction
		amount := decimal.NewFromFloat(t.Amount)
		if t.Type == transaction.Income {
			income = income.Add(amount)
		} else {
			expense = expense.Add(amount)
		}
		if !t.IsPaid {
			pending++
		}
	}

	return &FinancialSummary{
		TotalIncome:  income.Round(2).InexactFloat64(),
		TotalExpense: expense.Round(2).InexactFloat64(),
		Balance:      income.Sub(expense).Round(2).InexactFloat64(),
		PendingCount: pending,
	}
}

func expensesByCategory(transactions []*transaction.Transaction, categories []*category.Category, period billing.Period) []*CategoryExpense {
	namesById := make(map[ulid.ULID]string, len(categories))
	for _, c := range categories {
		namesById[c.Id] = c.Name
	}

	sums := make(map[ulid.ULID]decimal.Decimal)
	for _, t := range transactions {
		if t.Type != transaction.Expense {
			continue
		}
		effective := t.Date
		if t.IsCreditExpense() && t.DueDate != nil {
			effective = *t.DueDate
		}
		if !period.Contains(billing.Noon(effective)) {
			continue
		}
		sums[t.CategoryId] = sums[t.CategoryId].Add(decimal.NewFromFloat(t.Amount))
	}

	result := make([]*CategoryExpense, 0, len(sums))
	for id, sum := range sums {
		name := namesById[id]
		if name == "" {
			name = "Sem categoria"
		}
		result = append(result, &CategoryExpense{
			CategoryId:   id,
			CategoryName: name,
			Total:        sum.Round(2).InexactFloat64(),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Total > result[j].Total
	})

	return result
}
