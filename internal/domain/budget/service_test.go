package budget_test

import (
	"context"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/robsonsvicero/financassimples/internal/domain/budget"
	"github.com/robsonsvicero/financassimples/internal/domain/category"
	"github.com/robsonsvicero/financassimples/internal/domain/shared"
	"github.com/robsonsvicero/financassimples/internal/domain/transaction"
	appErrors "github.com/robsonsvicero/financassimples/internal/errors"
	"github.com/robsonsvicero/financassimples/internal/pkg"
)

type fakeRepository struct {
	createFn        func(ctx context.Context, b *budget.Budget) error
	updateFn        func(ctx context.Context, b *budget.Budget) error
	deleteFn        func(ctx context.Context, budgetID, userID ulid.ULID) error
	getByIDFn       func(ctx context.Context, budgetID, userID ulid.ULID) (*budget.Budget, error)
	getByCategoryFn func(ctx context.Context, userID, categoryID ulid.ULID, year, month int) (*budget.Budget, error)
	listByPeriodFn  func(ctx context.Context, userID ulid.ULID, year, month int) ([]*budget.Budget, error)
}

func (f *fakeRepository) Create(ctx context.Context, b *budget.Budget) error {
	if f.createFn != nil {
		return f.createFn(ctx, b)
	}
	return nil
}

func (f *fakeRepository) Update(ctx context.Context, b *budget.Budget) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, b)
	}
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, budgetID, userID ulid.ULID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, budgetID, userID)
	}
	return nil
}

func (f *fakeRepository) GetByIdAndUser(ctx context.Context, budgetID, userID ulid.ULID) (*budget.Budget, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, budgetID, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) GetByCategoryAndPeriod(ctx context.Context, userID, categoryID ulid.ULID, year, month int) (*budget.Budget, error) {
	if f.getByCategoryFn != nil {
		return f.getByCategoryFn(ctx, userID, categoryID, year, month)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) ListByUserAndPeriod(ctx context.Context, userID ulid.ULID, year, month int) ([]*budget.Budget, error) {
	if f.listByPeriodFn != nil {
		return f.listByPeriodFn(ctx, userID, year, month)
	}
	return nil, nil
}

type fakeCategoryRepository struct {
	getByIDFn    func(ctx context.Context, categoryID, userID ulid.ULID) (*category.Category, error)
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
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, categoryID, userID)
	}
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

type fakeUserChecker struct{}

func (f *fakeUserChecker) Exists(ctx context.Context, userID ulid.ULID) error {
	return nil
}

func newBudgetService(repo budget.Repository, categoryRepo category.Repository, transactionRepo transaction.Repository) *budget.Service {
	return budget.NewService(repo, categoryRepo, transactionRepo, shared.NewUserCheckerService(&fakeUserChecker{}))
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}

func TestCreateBudget_DefaultsAlertAt(t *testing.T) {
	userID := pkg.GenerateULIDObject()
	categoryID := pkg.GenerateULIDObject()

	var saved *budget.Budget
	repo := &fakeRepository{
		createFn: func(ctx context.Context, b *budget.Budget) error {
			saved = b
			return nil
		},
	}
	categoryRepo := &fakeCategoryRepository{
		getByIDFn: func(ctx context.Context, id, uid ulid.ULID) (*category.Category, error) {
			return &category.Category{Id: id, UserId: uid, Name: "Alimentação"}, nil
		},
	}

	service := newBudgetService(repo, categoryRepo, &fakeTransactionRepository{})
	created, err := service.Create(context.Background(), &budget.CreateBudgetRequest{
		UserId:     userID,
		CategoryId: categoryID,
		Amount:     800.00,
		Month:      3,
		Year:       2024,
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, 80.0, created.AlertAt)
}

func TestCreateBudget_RejectsDuplicatePeriod(t *testing.T) {
	userID := pkg.GenerateULIDObject()
	categoryID := pkg.GenerateULIDObject()

	repo := &fakeRepository{
		getByCategoryFn: func(ctx context.Context, uid, cid ulid.ULID, year, month int) (*budget.Budget, error) {
			return &budget.Budget{Id: pkg.GenerateULIDObject(), UserId: uid, CategoryId: cid}, nil
		},
	}
	categoryRepo := &fakeCategoryRepository{
		getByIDFn: func(ctx context.Context, id, uid ulid.ULID) (*category.Category, error) {
			return &category.Category{Id: id, UserId: uid}, nil
		},
	}

	service := newBudgetService(repo, categoryRepo, &fakeTransactionRepository{})
	_, err := service.Create(context.Background(), &budget.CreateBudgetRequest{
		UserId:     userID,
		CategoryId: categoryID,
		Amount:     800.00,
		Month:      3,
		Year:       2024,
	})

	require.Error(t, err)
	appErr, ok := appErrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestCreateBudget_UnknownCategory(t *testing.T) {
	service := newBudgetService(&fakeRepository{}, &fakeCategoryRepository{}, &fakeTransactionRepository{})

	_, err := service.Create(context.Background(), &budget.CreateBudgetRequest{
		UserId:     pkg.GenerateULIDObject(),
		CategoryId: pkg.GenerateULIDObject(),
		Amount:     800.00,
		Month:      3,
		Year:       2024,
	})

	require.Error(t, err)
	appErr, ok := appErrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrCategoryNotFound.Code, appErr.Code)
}

func TestListWithSpending_CreditCountsOnDueMonth(t *testing.T) {
	userID := pkg.GenerateULIDObject()
	foodID := pkg.GenerateULIDObject()
	cardID := pkg.GenerateULIDObject()

	b := &budget.Budget{
		Id:         pkg.GenerateULIDObject(),
		UserId:     userID,
		CategoryId: foodID,
		Amount:     800.00,
		Month:      4,
		Year:       2024,
		AlertAt:    80,
	}

	dueApril := day(2024, time.April, 3)
	transactions := []*transaction.Transaction{
		// débito em abril: conta
		{
			Id: pkg.GenerateULIDObject(), UserId: userID, CategoryId: foodID,
			Description: "Mercado", Amount: 200.00, Date: day(2024, time.April, 10),
			Type: transaction.Expense, PaymentMethod: transaction.MethodDebit, IsPaid: true,
		},
		// compra de março no crédito com fatura vencendo em abril: conta
		{
			Id: pkg.GenerateULIDObject(), UserId: userID, CategoryId: foodID,
			Description: "Restaurante", Amount: 150.00, Date: day(2024, time.March, 28),
			DueDate: &dueApril, Type: transaction.Expense,
			PaymentMethod: transaction.MethodCredit, CreditCardId: &cardID,
		},
		// débito em março: fora do período
		{
			Id: pkg.GenerateULIDObject(), UserId: userID, CategoryId: foodID,
			Description: "Padaria", Amount: 50.00, Date: day(2024, time.March, 5),
			Type: transaction.Expense, PaymentMethod: transaction.MethodDebit, IsPaid: true,
		},
		// receita: nunca conta
		{
			Id: pkg.GenerateULIDObject(), UserId: userID, CategoryId: foodID,
			Description: "Reembolso", Amount: 75.00, Date: day(2024, time.April, 15),
			Type: transaction.Income, PaymentMethod: transaction.MethodPix, IsPaid: true,
		},
	}

	repo := &fakeRepository{
		listByPeriodFn: func(ctx context.Context, uid ulid.ULID, year, month int) ([]*budget.Budget, error) {
			return []*budget.Budget{b}, nil
		},
	}
	categoryRepo := &fakeCategoryRepository{
		listByUserFn: func(ctx context.Context, uid ulid.ULID) ([]*category.Category, error) {
			return []*category.Category{{Id: foodID, UserId: uid, Name: "Alimentação"}}, nil
		},
	}
	transactionRepo := &fakeTransactionRepository{
		listByUserFn: func(ctx context.Context, uid ulid.ULID, filter *transaction.ListFilter) ([]*transaction.Transaction, error) {
			return transactions, nil
		},
	}

	service := newBudgetService(repo, categoryRepo, transactionRepo)
	budgets, err := service.ListWithSpending(context.Background(), userID, 2024, 4)

	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, "Alimentação", budgets[0].CategoryName)
	assert.Equal(t, 350.00, budgets[0].Spent)
	assert.Equal(t, "ok", budgets[0].GetStatus())
}

func TestListWithSpending_EmptyPeriodSkipsLoading(t *testing.T) {
	repo := &fakeRepository{
		listByPeriodFn: func(ctx context.Context, userID ulid.ULID, year, month int) ([]*budget.Budget, error) {
			return nil, nil
		},
	}
	transactionRepo := &fakeTransactionRepository{
		listByUserFn: func(ctx context.Context, userID ulid.ULID, filter *transaction.ListFilter) ([]*transaction.Transaction, error) {
			t.Fatal("não deveria carregar transações")
			return nil, nil
		},
	}

	service := newBudgetService(repo, &fakeCategoryRepository{}, transactionRepo)
	budgets, err := service.ListWithSpending(context.Background(), pkg.GenerateULIDObject(), 2024, 4)

	require.NoError(t, err)
	assert.Empty(t, budgets)
}
