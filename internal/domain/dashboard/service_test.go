package dashboard_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/robsonsvicero/financassimples/internal/domain/budget"
	"github.com/robsonsvicero/financassimples/internal/domain/card"
	"github.com/robsonsvicero/financassimples/internal/domain/category"
	"github.com/robsonsvicero/financassimples/internal/domain/dashboard"
	"github.com/robsonsvicero/financassimples/internal/domain/shared"
	"github.com/robsonsvicero/financassimples/internal/domain/transaction"
	"github.com/robsonsvicero/financassimples/internal/pkg"
)

type fakeTransactionRepository struct {
	listByUserFn func(ctx context.Context, userID ulid.ULID, filter *transaction.ListFilter) ([]*transaction.Transaction, error)
}

func (f *fakeTransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	return nil
}

func (f *fakeTransactionRepository) CreateBatch(ctx context.Context, ts []*transaction.Transaction) error {
	return nil
}

func (f *fakeTransactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	return nil
}

func (f *fakeTransactionRepository) Delete(ctx context.Context, transactionID, userID ulid.ULID) error {
	return nil
}

func (f *fakeTransactionRepository) GetByIdAndUser(ctx context.Context, transactionID, userID ulid.ULID) (*transaction.Transaction, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTransactionRepository) ListByUser(ctx context.Context, userID ulid.ULID, filter *transaction.ListFilter) ([]*transaction.Transaction, error) {
	if f.listByUserFn != nil {
		return f.listByUserFn(ctx, userID, filter)
	}
	return nil, nil
}

func (f *fakeTransactionRepository) ListPaged(ctx context.Context, userID ulid.ULID, filter *transaction.ListFilter, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	return nil, 0, nil
}

func (f *fakeTransactionRepository) SetPaid(ctx context.Context, transactionID, userID ulid.ULID, isPaid bool) error {
	return nil
}

func (f *fakeTransactionRepository) SetDueDate(ctx context.Context, transactionID, userID ulid.ULID, dueDate time.Time) error {
	return nil
}

type fakeCardRepository struct {
	listByUserFn func(ctx context.Context, userID ulid.ULID) ([]*card.CreditCard, error)
}

func (f *fakeCardRepository) Create(ctx context.Context, c *card.CreditCard) error {
	return nil
}

func (f *fakeCardRepository) Update(ctx context.Context, c *card.CreditCard) error {
	return nil
}

func (f *fakeCardRepository) Delete(ctx context.Context, cardID, userID ulid.ULID) error {
	return nil
}

func (f *fakeCardRepository) GetByIdAndUser(ctx context.Context, cardID, userID ulid.ULID) (*card.CreditCard, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCardRepository) ListByUser(ctx context.Context, userID ulid.ULID) ([]*card.CreditCard, error) {
	if f.listByUserFn != nil {
		return f.listByUserFn(ctx, userID)
	}
	return nil, nil
}

type fakeCategoryRepository struct {
	listByUserFn func(ctx context.Context, userID ulid.ULID) ([]*category.Category, error)
}

func (f *fakeCategoryRepository) Create(ctx context.Context, c *category.Category) error {
	return nil
}

func (f *fakeCategoryRepository) CreateBatch(ctx context.Context, cs []*category.Category) error {
	return nil
}

func (f *fakeCategoryRepository) Update(ctx context.Context, c *category.Category) error {
	return nil
}

func (f *fakeCategoryRepository) Delete(ctx context.Context, categoryID, userID ulid.ULID) error {
	return nil
}

func (f *fakeCategoryRepository) GetByIdAndUser(ctx context.Context, categoryID, userID ulid.ULID) (*category.Category, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepository) GetByNameAndUser(ctx context.Context, name string, userID ulid.ULID) (*category.Category, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepository) ListByUser(ctx context.Context, userID ulid.ULID) ([]*category.Category, error) {
	if f.listByUserFn != nil {
		return f.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeCategoryRepository) CountByUser(ctx context.Context, userID ulid.ULID) (int64, error) {
	return 0, nil
}

type fakeBudgetRepository struct {
	listByPeriodFn func(ctx context.Context, userID ulid.ULID, year, month int) ([]*budget.Budget, error)
}

func (f *fakeBudgetRepository) Create(ctx context.Context, b *budget.Budget) error {
	return nil
}

func (f *fakeBudgetRepository) Update(ctx context.Context, b *budget.Budget) error {
	return nil
}

func (f *fakeBudgetRepository) Delete(ctx context.Context, budgetID, userID ulid.ULID) error {
	return nil
}

func (f *fakeBudgetRepository) GetByIdAndUser(ctx context.Context, budgetID, userID ulid.ULID) (*budget.Budget, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBudgetRepository) GetByCategoryAndPeriod(ctx context.Context, userID, categoryID ulid.ULID, year, month int) (*budget.Budget, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBudgetRepository) ListByUserAndPeriod(ctx context.Context, userID ulid.ULID, year, month int) ([]*budget.Budget, error) {
	if f.listByPeriodFn != nil {
		return f.listByPeriodFn(ctx, userID, year, month)
	}
	return nil, nil
}

type fakeUserChecker struct{}

func (f *fakeUserChecker) Exists(ctx context.Context, userID ulid.ULID) error {
	return nil
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}

func newDashboardService(
	txRepo *fakeTransactionRepository,
	cardRepo *fakeCardRepository,
	categoryRepo *fakeCategoryRepository,
	budgetRepo *fakeBudgetRepository,
) *dashboard.Service {
	checker := shared.NewUserCheckerService(&fakeUserChecker{})
	budgetSvc := budget.NewService(budgetRepo, categoryRepo, txRepo, checker)
	return dashboard.NewService(txRepo, cardRepo, categoryRepo, budgetSvc)
}

func TestGetDashboard_SummaryMatchesAggregation(t *testing.T) {
	userID := pkg.GenerateULIDObject()
	salaryID := pkg.GenerateULIDObject()
	foodID := pkg.GenerateULIDObject()
	c := &card.CreditCard{
		Id:         pkg.GenerateULIDObject(),
		UserId:     userID,
		Name:       "Nubank",
		ClosingDay: 25,
		DueDay:     3,
	}

	dueApril := day(2024, time.April, 3)
	transactions := []*transaction.Transaction{
		{
			Id: pkg.GenerateULIDObject(), UserId: userID, CategoryId: salaryID,
			Description: "Salário", Amount: 5000.00, Date: day(2024, time.April, 5),
			Type: transaction.Income, PaymentMethod: transaction.MethodPix, IsPaid: true,
		},
		{
			Id: pkg.GenerateULIDObject(), UserId: userID, CategoryId: foodID,
			Description: "Mercado", Amount: 400.00, Date: day(2024, time.April, 10),
			Type: transaction.Expense, PaymentMethod: transaction.MethodDebit, IsPaid: true,
		},
		// duas compras de março na mesma fatura, vencimento em abril
		{
			Id: pkg.GenerateULIDObject(), UserId: userID, CategoryId: foodID,
			Description: "Restaurante", Amount: 600.00, Date: day(2024, time.March, 20),
			DueDate: &dueApril, Type: transaction.Expense,
			PaymentMethod: transaction.MethodCredit, CreditCardId: &c.Id,
		},
		{
			Id: pkg.GenerateULIDObject(), UserId: userID, CategoryId: foodID,
			Description: "Padaria", Amount: 150.00, Date: day(2024, time.March, 22),
			DueDate: &dueApril, Type: transaction.Expense,
			PaymentMethod: transaction.MethodCredit, CreditCardId: &c.Id,
		},
		// despesa à vista de março, fora do painel de abril
		{
			Id: pkg.GenerateULIDObject(), UserId: userID, CategoryId: foodID,
			Description: "Feira", Amount: 999.00, Date: day(2024, time.March, 15),
			Type: transaction.Expense, PaymentMethod: transaction.MethodDebit, IsPaid: true,
		},
	}

	service := newDashboardService(
		&fakeTransactionRepository{
			listByUserFn: func(ctx context.Context, uid ulid.ULID, filter *transaction.ListFilter) ([]*transaction.Transaction, error) {
				return transactions, nil
			},
		},
		&fakeCardRepository{
			listByUserFn: func(ctx context.Context, uid ulid.ULID) ([]*card.CreditCard, error) {
				return []*card.CreditCard{c}, nil
			},
		},
		&fakeCategoryRepository{
			listByUserFn: func(ctx context.Context, uid ulid.ULID) ([]*category.Category, error) {
				return []*category.Category{
					{Id: salaryID, UserId: uid, Name: "Salário"},
					{Id: foodID, UserId: uid, Name: "Alimentação"},
				}, nil
			},
		},
		&fakeBudgetRepository{
			listByPeriodFn: func(ctx context.Context, uid ulid.ULID, year, month int) ([]*budget.Budget, error) {
				return []*budget.Budget{
					{Id: pkg.GenerateULIDObject(), UserId: uid, CategoryId: foodID, Amount: 2000.00, Month: month, Year: year, AlertAt: 80},
				}, nil
			},
		},
	)

	result, err := service.GetDashboard(context.Background(), userID, 4, 2024)

	require.NoError(t, err)
	assert.Equal(t, 5000.00, result.Summary.TotalIncome)
	assert.Equal(t, 1150.00, result.Summary.TotalExpense)
	assert.Equal(t, 3850.00, result.Summary.Balance)
	assert.Equal(t, 1, result.Summary.PendingCount)

	// a listagem recente traz a fatura agregada, nunca as compras cruas
	require.Len(t, result.RecentItems, 3)
	assert.Equal(t, "Mercado", result.RecentItems[0].Transaction.Description)
	assert.Equal(t, "Salário", result.RecentItems[1].Transaction.Description)
	invoice := result.RecentItems[2].Invoice
	require.NotNil(t, invoice)
	assert.Equal(t, 750.00, invoice.Amount)
	assert.Equal(t, 2, invoice.Count)
	assert.False(t, invoice.IsPaid)

	require.Len(t, result.CategoryExpenses, 1)
	assert.Equal(t, "Alimentação", result.CategoryExpenses[0].CategoryName)
	assert.Equal(t, 1150.00, result.CategoryExpenses[0].Total)

	require.Len(t, result.MonthlyTrend, 6)
	assert.Equal(t, 4, result.MonthlyTrend[0].Month)
	assert.Equal(t, 5000.00, result.MonthlyTrend[0].Income)
	assert.Equal(t, 1150.00, result.MonthlyTrend[0].Expense)
	// março fica só com a despesa à vista: as compras de crédito pesam em abril
	assert.Equal(t, 3, result.MonthlyTrend[1].Month)
	assert.Equal(t, 999.00, result.MonthlyTrend[1].Expense)

	require.Len(t, result.BudgetStatus, 1)
	assert.Equal(t, "Alimentação", result.BudgetStatus[0].CategoryName)
	assert.Equal(t, 1150.00, result.BudgetStatus[0].Spent)
	assert.Equal(t, "ok", result.BudgetStatus[0].GetStatus())
}

func TestGetDashboard_DefaultsToCurrentMonth(t *testing.T) {
	service := newDashboardService(
		&fakeTransactionRepository{},
		&fakeCardRepository{},
		&fakeCategoryRepository{},
		&fakeBudgetRepository{},
	)

	result, err := service.GetDashboard(context.Background(), pkg.GenerateULIDObject(), 0, 0)

	require.NoError(t, err)
	now := time.Now()
	require.Len(t, result.MonthlyTrend, 6)
	assert.Equal(t, int(now.Month()), result.MonthlyTrend[0].Month)
	assert.Equal(t, now.Year(), result.MonthlyTrend[0].Year)
	assert.Equal(t, 0.00, result.Summary.TotalIncome)
	assert.Equal(t, 0.00, result.Summary.TotalExpense)
	assert.Empty(t, result.RecentItems)
	assert.Empty(t, result.BudgetStatus)
}

func TestGetDashboard_LimitsRecentItems(t *testing.T) {
	userID := pkg.GenerateULIDObject()
	categoryID := pkg.GenerateULIDObject()

	transactions := make([]*transaction.Transaction, 0, 8)
	for i := 1; i <= 8; i++ {
		transactions = append(transactions, &transaction.Transaction{
			Id: pkg.GenerateULIDObject(), UserId: userID, CategoryId: categoryID,
			Description: fmt.Sprintf("Compra %d", i), Amount: 10.00, Date: day(2024, time.April, i),
			Type: transaction.Expense, PaymentMethod: transaction.MethodDebit, IsPaid: true,
		})
	}

	service := newDashboardService(
		&fakeTransactionRepository{
			listByUserFn: func(ctx context.Context, uid ulid.ULID, filter *transaction.ListFilter) ([]*transaction.Transaction, error) {
				return transactions, nil
			},
		},
		&fakeCardRepository{},
		&fakeCategoryRepository{},
		&fakeBudgetRepository{},
	)

	result, err := service.GetDashboard(context.Background(), userID, 4, 2024)

	require.NoError(t, err)
	require.Len(t, result.RecentItems, 5)
	// corte sobre a lista já ordenada da mais recente para a mais antiga
	assert.Equal(t, "Compra 8", result.RecentItems[0].Transaction.Description)
	assert.Equal(t, "Compra 4", result.RecentItems[4].Transaction.Description)
}
