package report

import (
	"context"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/robsonsvicero/financassimples/internal/domain/billing"
	"github.com/robsonsvicero/financassimples/internal/domain/card"
	"github.com/robsonsvicero/financassimples/internal/domain/category"
	"github.com/robsonsvicero/financassimples/internal/domain/shared"
	"github.com/robsonsvicero/financassimples/internal/domain/transaction"
	appErrors "github.com/robsonsvicero/financassimples/internal/errors"
)

type Service struct {
	TransactionRepo    transaction.Repository
	CardRepository     card.Repository
	CategoryRepository category.Repository
	UserChecker        *shared.UserCheckerService
}

func NewService(
	transactionRepo transaction.Repository,
	cardRepo card.Repository,
	categoryRepo category.Repository,
	userChecker *shared.UserCheckerService,
) *Service {
	return &Service{
		TransactionRepo:    transactionRepo,
		CardRepository:     cardRepo,
		CategoryRepository: categoryRepo,
		UserChecker:        userChecker,
	}
}

// GetMonthlyReport fecha o mês com os mesmos critérios da listagem: despesa
// de crédito pesa no mês do vencimento da fatura.
func (s *Service) GetMonthlyReport(ctx context.Context, userID ulid.ULID, month, year int) (*MonthlyReport, error) {
	if err := s.UserChecker.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}
	if month < 1 || month > 12 {
		return nil, appErrors.NewValidationError("month", "deve estar entre 1 e 12")
	}

	transactions, cards, categories, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	period := billing.Period{Year: year, Month: time.Month(month)}
	income, expenses := monthTotals(transactions, cards, period)

	balance := decimal.NewFromFloat(income).Sub(decimal.NewFromFloat(expenses)).Round(2).InexactFloat64()
	savingsRate := 0.0
	if income > 0 {
		savingsRate = decimal.NewFromFloat(balance).
			Div(decimal.NewFromFloat(income)).
			Mul(decimal.NewFromInt(100)).
			Round(2).InexactFloat64()
	}

	return &MonthlyReport{
		UserId:             userID,
		Month:              month,
		Year:               year,
		TotalIncome:        income,
		TotalExpenses:      expenses,
		NetBalance:         balance,
		SavingsRate:        savingsRate,
		ExpensesByCategory: categoryBreakdown(transactions, categories, period, transaction.Expense, expenses),
		IncomeByCategory:   categoryBreakdown(transactions, categories, period, transaction.Income, income),
	}, nil
}

func (s *Service) GetYearlyReport(ctx context.Context, userID ulid.ULID, year int) (*YearlyReport, error) {
	if err := s.UserChecker.EnsureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	transactions, cards, _, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero
	months := make([]*MonthSummary, 0, 12)

	for month := 1; month <= 12; month++ {
		period := billing.Period{Year: year, Month: time.Month(month)}
		income, expenses := monthTotals(transactions, cards, period)

		totalIncome = totalIncome.Add(decimal.NewFromFloat(income))
		totalExpenses = totalExpenses.Add(decimal.NewFromFloat(expenses))
		months = append(months, &MonthSummary{
			Month:    month,
			Income:   income,
			Expenses: expenses,
			Balance:  decimal.NewFromFloat(income).Sub(decimal.NewFromFloat(expenses)).Round(2).InexactFloat64(),
		})
	}

	return &YearlyReport{
		UserId:        userID,
		Year:          year,
		TotalIncome:   totalIncome.Round(2).InexactFloat64(),
		TotalExpenses: totalExpenses.Round(2).InexactFloat64(),
		NetBalance:    totalIncome.Sub(totalExpenses).Round(2).InexactFloat64(),
		Months:        months,
	}, nil
}

func (s *Service) load(ctx context.Context, userID ulid.ULID) ([]*transaction.Transaction, []*card.CreditCard, []*category.Category, error) {
	transactions, err := s.TransactionRepo.ListByUser(ctx, userID, nil)
	if err != nil {
		return nil, nil, nil, appErrors.NewDatabaseError(err)
	}
	cards, err := s.CardRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, nil, appErrors.NewDatabaseError(err)
	}
	categories, err := s.CategoryRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, nil, appErrors.NewDatabaseError(err)
	}
	return transactions, cards, categories, nil
}

func monthTotals(transactions []*transaction.Transaction, cards []*card.CreditCard, period billing.Period) (income, expenses float64) {
	incomeSum := decimal.Zero
	expenseSum := decimal.Zero

	for _, item := range billing.Aggregate(transactions, cards, period) {
		if item.Invoice != nil {
			expenseSum = expenseSum.Add(decimal.NewFromFloat(item.Invoice.Amount))
			continue
		}
		amount := decimal.NewFromFloat(item.Transaction.Amount)
		if item.Transaction.Type == transaction.Income {
			incomeSum = incomeSum.Add(amount)
		} else {
			expenseSum = expenseSum.Add(amount)
		}
	}

	return incomeSum.Round(2).InexactFloat64(), expenseSum.Round(2).InexactFloat64()
}

func categoryBreakdown(
	transactions []*transaction.Transaction,
	categories []*category.Category,
	period billing.Period,
	typ transaction.Types,
	total float64,
) []CategoryAmount {
	namesById := make(map[ulid.ULID]string, len(categories))
	for _, c := range categories {
		namesById[c.Id] = c.Name
	}

	sums := make(map[ulid.ULID]decimal.Decimal)
	counts := make(map[ulid.ULID]int)
	for _, t := range transactions {
		if t.Type != typ {
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
		counts[t.CategoryId]++
	}

	result := make([]CategoryAmount, 0, len(sums))
	for id, sum := range sums {
		amount := sum.Round(2).InexactFloat64()
		percentage := 0.0
		if total > 0 {
			percentage = sum.Div(decimal.NewFromFloat(total)).
				Mul(decimal.NewFromInt(100)).
				Round(2).InexactFloat64()
		}
		name := namesById[id]
		if name == "" {
			name = "Sem categoria"
		}
		result = append(result, CategoryAmount{
			CategoryId:   id,
			CategoryName: name,
			Amount:       amount,
			Percentage:   percentage,
			Count:        counts[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Amount > result[j].Amount
	})

	return result
}
