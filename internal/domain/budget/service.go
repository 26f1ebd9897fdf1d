package budget

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/robsonsvicero/financassimples/internal/domain/billing"
	"github.com/robsonsvicero/financassimples/internal/domain/category"
	"github.com/robsonsvicero/financassimples/internal/domain/shared"
	"github.com/robsonsvicero/financassimples/internal/domain/transaction"
	appErrors "github.com/robsonsvicero/financassimples/internal/errors"
	"github.com/robsonsvicero/financassimples/internal/pkg"
)

type Service struct {
	Repository         Repository
	CategoryRepository category.Repository
	TransactionRepo    transaction.Repository
	UserChecker        *shared.UserCheckerService
}

func NewService(
	repo Repository,
	categoryRepo category.Repository,
	transactionRepo transaction.Repository,
	userChecker *shared.UserCheckerService,
) *Service {
	return &Service{
		Repository:         repo,
		CategoryRepository: categoryRepo,
		TransactionRepo:    transactionRepo,
		UserChecker:        userChecker,
	}
}

type CreateBudgetRequest struct {
	UserId     ulid.ULID
	CategoryId ulid.ULID
	Amount     float64
	Month      int
	Year       int
	AlertAt    float64
}

func (s *Service) Create(ctx context.Context, req *CreateBudgetRequest) (*Budget, error) {
	if err := s.UserChecker.EnsureUserExists(ctx, req.UserId); err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, appErrors.NewValidationError("amount", "deve ser maior que zero")
	}
	if req.Month < 1 || req.Month > 12 {
		return nil, appErrors.NewValidationError("month", "deve estar entre 1 e 12")
	}
	if req.Year < 2000 {
		return nil, appErrors.NewValidationError("year", "inválido")
	}

	if _, err := s.CategoryRepository.GetByIdAndUser(ctx, req.CategoryId, req.UserId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrCategoryNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	if existing, err := s.Repository.GetByCategoryAndPeriod(ctx, req.UserId, req.CategoryId, req.Year, req.Month); err == nil && existing != nil {
		return nil, appErrors.ErrConflict.WithDetails(map[string]interface{}{
			"categoryId": req.CategoryId.String(),
			"month":      req.Month,
			"year":       req.Year,
		})
	}

	alertAt := req.AlertAt
	if alertAt <= 0 || alertAt > 100 {
		alertAt = 80
	}

	now := pkg.SetTimestamps()
	entity := &Budget{
		Id:         pkg.GenerateULIDObject(),
		UserId:     req.UserId,
		CategoryId: req.CategoryId,
		Amount:     req.Amount,
		Month:      req.Month,
		Year:       req.Year,
		AlertAt:    alertAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.Repository.Create(ctx, entity); err != nil {
		if shared.IsUniqueConstraintError(err) {
			return nil, appErrors.ErrConflict
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	return entity, nil
}

func (s *Service) Update(ctx context.Context, userID, budgetID ulid.ULID, amount, alertAt float64) (*Budget, error) {
	entity, err := s.getBudget(ctx, budgetID, userID)
	if err != nil {
		return nil, err
	}

	if amount > 0 {
		entity.Amount = amount
	}
	if alertAt > 0 && alertAt <= 100 {
		entity.AlertAt = alertAt
	}
	entity.UpdatedAt = pkg.SetTimestamps()

	if err := s.Repository.Update(ctx, entity); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	return entity, nil
}

func (s *Service) Delete(ctx context.Context, userID, budgetID ulid.ULID) error {
	if _, err := s.getBudget(ctx, budgetID, userID); err != nil {
		return err
	}
	if err := s.Repository.Delete(ctx, budgetID, userID); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// ListWithSpending devolve os orçamentos do período com o gasto realizado de
// cada categoria. Despesa de crédito conta no mês do vencimento da fatura,
// não no mês da compra: é quando o dinheiro sai.
func (s *Service) ListWithSpending(ctx context.Context, userID ulid.ULID, year, month int) ([]*Budget, error) {
	budgets, err := s.Repository.ListByUserAndPeriod(ctx, userID, year, month)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	if len(budgets) == 0 {
		return budgets, nil
	}

	transactions, err := s.TransactionRepo.ListByUser(ctx, userID, nil)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	categories, err := s.CategoryRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	namesById := make(map[ulid.ULID]string, len(categories))
	for _, c := range categories {
		namesById[c.Id] = c.Name
	}

	period := billing.Period{Year: year, Month: time.Month(month)}
	spentByCategory := spendingByCategory(transactions, period)

	for _, b := range budgets {
		b.CategoryName = namesById[b.CategoryId]
		b.Spent = spentByCategory[b.CategoryId]
	}

	return budgets, nil
}

func spendingByCategory(transactions []*transaction.Transaction, period billing.Period) map[ulid.ULID]float64 {
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

	result := make(map[ulid.ULID]float64, len(sums))
	for id, sum := range sums {
		result[id] = sum.Round(2).InexactFloat64()
	}
	return result
}

func (s *Service) getBudget(ctx context.Context, budgetID, userID ulid.ULID) (*Budget, error) {
	entity, err := s.Repository.GetByIdAndUser(ctx, budgetID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrBudgetNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return entity, nil
}
