package billing

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/robsonsvicero/financassimples/internal/domain/card"
	"github.com/robsonsvicero/financassimples/internal/domain/shared"
	"github.com/robsonsvicero/financassimples/internal/domain/transaction"
	appErrors "github.com/robsonsvicero/financassimples/internal/errors"
	"github.com/robsonsvicero/financassimples/internal/logger"
	"github.com/robsonsvicero/financassimples/internal/pkg"
)

// Service liga o motor puro de faturas à persistência: registra compras no
// crédito, monta extratos agregados e aplica os lotes de baixa e de
// recálculo. O motor em si (cycle.go, installments.go, statement.go,
// recalculate.go) não toca banco.
type Service struct {
	Repository     transaction.Repository
	CardRepository card.Repository
	UserChecker    *shared.UserCheckerService
}

func NewService(repo transaction.Repository, cardRepo card.Repository, userChecker *shared.UserCheckerService) *Service {
	return &Service{
		Repository:     repo,
		CardRepository: cardRepo,
		UserChecker:    userChecker,
	}
}

type PurchaseRequest struct {
	UserId       ulid.ULID
	CreditCardId ulid.ULID
	Description  string
	Amount       float64
	Date         time.Time
	CategoryId   ulid.ULID
	ExpenseType  transaction.ExpenseType
	Installments int
}

// BatchResult relata uma operação em lote. Ids em Failed não foram gravados;
// como baixa e recálculo são idempotentes, repetir a operação converge.
type BatchResult struct {
	Updated int         `json:"updated"`
	Failed  []ulid.ULID `json:"failed,omitempty"`
}

// RegisterPurchase grava uma compra no crédito como N registros
// independentes, um por parcela, cada qual com o próprio vencimento.
func (s *Service) RegisterPurchase(ctx context.Context, req *PurchaseRequest) ([]*transaction.Transaction, error) {
	if err := s.UserChecker.EnsureUserExists(ctx, req.UserId); err != nil {
		return nil, err
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, appErrors.NewValidationError("description", "é obrigatória")
	}
	if req.Date.IsZero() {
		return nil, appErrors.NewValidationError("date", "é obrigatória")
	}
	if req.Installments < 1 {
		req.Installments = 1
	}

	cardEntity, err := s.getCard(ctx, req.CreditCardId, req.UserId)
	if err != nil {
		return nil, err
	}

	installments, err := SplitInstallments(req.Amount, req.Installments, req.Date, cardEntity)
	if err != nil {
		return nil, err
	}

	var parentId *ulid.ULID
	if len(installments) > 1 {
		generated := pkg.GenerateULIDObject()
		parentId = &generated
	}

	now := time.Now()
	purchaseDate := Noon(req.Date)
	entities := make([]*transaction.Transaction, 0, len(installments))
	for _, inst := range installments {
		dueDate := inst.DueDate
		entity := &transaction.Transaction{
			Id:            pkg.GenerateULIDObject(),
			UserId:        req.UserId,
			Description:   description,
			Amount:        inst.Amount,
			Date:          purchaseDate,
			DueDate:       &dueDate,
			Type:          transaction.Expense,
			ExpenseType:   req.ExpenseType,
			CategoryId:    req.CategoryId,
			PaymentMethod: transaction.MethodCredit,
			CreditCardId:  &req.CreditCardId,
			ParentId:      parentId,
			IsPaid:        false,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if inst.Number > 0 {
			number, of := inst.Number, inst.Of
			entity.InstallmentCurrent = &number
			entity.InstallmentTotal = &of
		}
		entities = append(entities, entity)
	}

	if err := s.Repository.CreateBatch(ctx, entities); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return entities, nil
}

// Statement devolve a listagem do período com as despesas de crédito
// dobradas em faturas, pronta para exibição.
func (s *Service) Statement(ctx context.Context, userID ulid.ULID, period Period, filter *transaction.ListFilter) ([]DisplayItem, error) {
	transactions, cards, err := s.load(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return Aggregate(transactions, cards, period), nil
}

// CardInvoice devolve a fatura de um único cartão no período, ou nil quando o
// período não tem compras.
func (s *Service) CardInvoice(ctx context.Context, userID, cardID ulid.ULID, period Period) (*Invoice, error) {
	if _, err := s.getCard(ctx, cardID, userID); err != nil {
		return nil, err
	}

	transactions, cards, err := s.load(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	for _, item := range Aggregate(transactions, cards, period) {
		if item.Invoice != nil && item.Invoice.CardId == cardID {
			return item.Invoice, nil
		}
	}
	return nil, nil
}

// SetInvoicePaid aplica a baixa em massa da fatura (cartão, vencimento):
// normaliza todos os membros para pago, ou para em aberto quando a fatura já
// estava integralmente paga. Cada membro é gravado individualmente; falhas
// parciais voltam em BatchResult.Failed para nova tentativa.
func (s *Service) SetInvoicePaid(ctx context.Context, userID, cardID ulid.ULID, dueDate time.Time) (*BatchResult, error) {
	transactions, err := s.Repository.ListByUser(ctx, userID, nil)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	members := InvoiceTargets(transactions, cardID, dueDate)
	if len(members) == 0 {
		return nil, appErrors.ErrNotFound.WithDetails(map[string]interface{}{
			"cardId":  cardID.String(),
			"dueDate": Noon(dueDate).Format("2006-01-02"),
		})
	}

	newState := NextPaidState(members)

	result := &BatchResult{}
	for _, member := range members {
		if member.IsPaid == newState {
			continue
		}
		if err := s.Repository.SetPaid(ctx, member.Id, userID, newState); err != nil {
			logger.Warn().
				Err(err).
				Str("transaction_id", member.Id.String()).
				Msg("Falha ao atualizar pagamento de membro da fatura")
			result.Failed = append(result.Failed, member.Id)
			continue
		}
		result.Updated++
	}

	return result, nil
}

// RecalculateDueDates refaz o vencimento de todas as despesas de crédito do
// usuário após mudança nos parâmetros dos cartões, gravando somente o
// subconjunto divergente.
func (s *Service) RecalculateDueDates(ctx context.Context, userID ulid.ULID) (*BatchResult, error) {
	transactions, cards, err := s.load(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	changed := RecalculateDueDates(transactions, cards)

	result := &BatchResult{}
	for _, t := range changed {
		if err := s.Repository.SetDueDate(ctx, t.Id, userID, *t.DueDate); err != nil {
			logger.Warn().
				Err(err).
				Str("transaction_id", t.Id.String()).
				Msg("Falha ao gravar vencimento recalculado")
			result.Failed = append(result.Failed, t.Id)
			continue
		}
		result.Updated++
	}

	logger.Info().
		Str("user_id", userID.String()).
		Int("updated", result.Updated).
		Int("failed", len(result.Failed)).
		Msg("Recálculo de vencimentos concluído")

	return result, nil
}

func (s *Service) load(ctx context.Context, userID ulid.ULID, filter *transaction.ListFilter) ([]*transaction.Transaction, []*card.CreditCard, error) {
	transactions, err := s.Repository.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, nil, appErrors.NewDatabaseError(err)
	}
	cards, err := s.CardRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, appErrors.NewDatabaseError(err)
	}
	return transactions, cards, nil
}

func (s *Service) getCard(ctx context.Context, cardID, userID ulid.ULID) (*card.CreditCard, error) {
	entity, err := s.CardRepository.GetByIdAndUser(ctx, cardID, userID)
	if err != nil {
		return nil, appErrors.ErrCardNotFound.WithError(err)
	}
	return entity, nil
}
