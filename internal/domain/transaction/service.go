package transaction

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"

	"github.com/robsonsvicero/financassimples/internal/domain/shared"
	appErrors "github.com/robsonsvicero/financassimples/internal/errors"
	"github.com/robsonsvicero/financassimples/internal/pkg"
)

// Service cuida das transações comuns (dinheiro, débito, PIX e receitas).
// Compras no crédito passam pelo billing.Service, que resolve vencimento e
// parcelamento antes de persistir.
type Service struct {
	Repository  Repository
	UserChecker *shared.UserCheckerService
}

func NewService(repo Repository, userChecker *shared.UserCheckerService) *Service {
	return &Service{Repository: repo, UserChecker: userChecker}
}

type CreateTransactionRequest struct {
	UserId        ulid.ULID
	Description   string
	Amount        float64
	Date          time.Time
	Type          Types
	ExpenseType   ExpenseType
	CategoryId    ulid.ULID
	PaymentMethod PaymentMethod
}

type UpdateTransactionRequest struct {
	Description *string
	Amount      *float64
	Date        *time.Time
	CategoryId  *ulid.ULID
	ExpenseType *ExpenseType
}

func (s *Service) CreateTransaction(ctx context.Context, req *CreateTransactionRequest) (*Transaction, error) {
	if err := s.UserChecker.EnsureUserExists(ctx, req.UserId); err != nil {
		return nil, err
	}

	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	if req.Type == Expense && req.PaymentMethod == MethodCredit {
		return nil, appErrors.NewValidationError("payment_method", "compra no crédito deve ser registrada pela fatura do cartão")
	}

	// Dinheiro, débito, PIX e receitas liquidam no ato.
	now := time.Now()
	entity := &Transaction{
		Id:            pkg.GenerateULIDObject(),
		UserId:        req.UserId,
		Description:   strings.TrimSpace(req.Description),
		Amount:        req.Amount,
		Date:          req.Date,
		Type:          req.Type,
		CategoryId:    req.CategoryId,
		PaymentMethod: req.PaymentMethod,
		IsPaid:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.Type == Expense {
		entity.ExpenseType = req.ExpenseType
	}

	if err := s.Repository.Create(ctx, entity); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return entity, nil
}

func (s *Service) UpdateTransaction(ctx context.Context, transactionID, userID ulid.ULID, req *UpdateTransactionRequest) (*Transaction, error) {
	entity, err := s.GetTransactionById(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, appErrors.NewValidationError("description", "não pode ser vazia")
		}
		entity.Description = description
	}

	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, appErrors.NewValidationError("amount", "deve ser maior que zero")
		}
		entity.Amount = *req.Amount
	}

	if req.Date != nil && !req.Date.IsZero() {
		entity.Date = *req.Date
	}

	if req.CategoryId != nil && !pkg.IsEmptyULID(*req.CategoryId) {
		entity.CategoryId = *req.CategoryId
	}

	if req.ExpenseType != nil {
		if entity.Type != Expense {
			return nil, appErrors.NewValidationError("expense_type", "só se aplica a despesas")
		}
		if !req.ExpenseType.IsValid() {
			return nil, appErrors.NewValidationError("expense_type", "deve ser FIXED ou VARIABLE")
		}
		entity.ExpenseType = *req.ExpenseType
	}

	entity.UpdatedAt = time.Now()

	if err := s.Repository.Update(ctx, entity); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return entity, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, transactionID, userID ulid.ULID) error {
	if _, err := s.GetTransactionById(ctx, transactionID, userID); err != nil {
		return err
	}
	return s.Repository.Delete(ctx, transactionID, userID)
}

func (s *Service) GetTransactionById(ctx context.Context, transactionID, userID ulid.ULID) (*Transaction, error) {
	entity, err := s.Repository.GetByIdAndUser(ctx, transactionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrTransactionNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return entity, nil
}

func (s *Service) ListTransactions(ctx context.Context, userID ulid.ULID, filter *ListFilter, pagination *pkg.PaginationParams) ([]*Transaction, int64, error) {
	transactions, total, err := s.Repository.ListPaged(ctx, userID, filter, pagination)
	if err != nil {
		return nil, 0, appErrors.NewDatabaseError(err)
	}
	return transactions, total, nil
}

// SetPaid alterna o estado de pagamento de um único registro. O estado da
// fatura derivada muda sozinho na próxima agregação.
func (s *Service) SetPaid(ctx context.Context, transactionID, userID ulid.ULID, isPaid bool) (*Transaction, error) {
	entity, err := s.GetTransactionById(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}

	if entity.IsPaid == isPaid {
		return entity, nil
	}

	if err := s.Repository.SetPaid(ctx, transactionID, userID, isPaid); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	entity.IsPaid = isPaid
	return entity, nil
}

func validateCreateRequest(req *CreateTransactionRequest) error {
	if strings.TrimSpace(req.Description) == "" {
		return appErrors.NewValidationError("description", "é obrigatória")
	}
	if req.Amount <= 0 {
		return appErrors.NewValidationError("amount", "deve ser maior que zero")
	}
	if req.Date.IsZero() {
		return appErrors.NewValidationError("date", "é obrigatória")
	}
	if !req.Type.IsValid() {
		return appErrors.NewValidationError("type", "deve ser INCOME ou EXPENSE")
	}
	if !req.PaymentMethod.IsValid() {
		return appErrors.NewValidationError("payment_method", "forma de pagamento inválida")
	}
	if req.Type == Expense && req.ExpenseType != "" && !req.ExpenseType.IsValid() {
		return appErrors.NewValidationError("expense_type", "deve ser FIXED ou VARIABLE")
	}
	return nil
}
