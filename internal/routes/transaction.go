package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"github.com/robsonsvicero/financassimples/internal/contracts"
	"github.com/robsonsvicero/financassimples/internal/domain/billing"
	"github.com/robsonsvicero/financassimples/internal/domain/transaction"
	appErrors "github.com/robsonsvicero/financassimples/internal/errors"
	"github.com/robsonsvicero/financassimples/internal/pkg"
)

func (h *Handler) CreateTransaction(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req contracts.TransactionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	categoryID, err := parseOptionalULID(req.CategoryId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("categoryId", "formato inválido"))
		return
	}

	entity, err := h.TransactionService.CreateTransaction(c.Request.Context(), &transaction.CreateTransactionRequest{
		UserId:        userID,
		Description:   req.Description,
		Amount:        req.Amount,
		Date:          req.Date,
		Type:          transaction.Types(req.Type),
		ExpenseType:   transaction.ExpenseType(req.ExpenseType),
		CategoryId:    categoryID,
		PaymentMethod: transaction.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.TransactionResponse{Transaction: entity})
}

// CreateCreditPurchase registra uma compra no crédito: o motor de faturas
// resolve vencimento e parcelas.
func (h *Handler) CreateCreditPurchase(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req contracts.CreditPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	cardID, err := pkg.ParseULID(req.CreditCardId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("creditCardId", "formato inválido"))
		return
	}
	categoryID, err := parseOptionalULID(req.CategoryId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("categoryId", "formato inválido"))
		return
	}

	installments, err := h.BillingService.RegisterPurchase(c.Request.Context(), &billing.PurchaseRequest{
		UserId:       userID,
		CreditCardId: cardID,
		Description:  req.Description,
		Amount:       req.Amount,
		Date:         req.Date,
		CategoryId:   categoryID,
		ExpenseType:  transaction.ExpenseType(req.ExpenseType),
		Installments: req.Installments,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.CreditPurchaseResponse{
		Message:      "Compra registrada",
		Installments: installments,
	})
}

func (h *Handler) GetTransactions(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	filter := &transaction.ListFilter{
		Search: c.Query("search"),
		Type:   transaction.Types(c.Query("type")),
	}
	pagination := h.parsePagination(c)

	transactions, total, err := h.TransactionService.ListTransactions(c.Request.Context(), userID, filter, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.TransactionListResponse{
		Transactions: transactions,
		Total:        total,
		Page:         pagination.Page,
		Limit:        pagination.Limit,
	})
}

// GetStatement devolve a listagem do período com as despesas de crédito
// agrupadas em faturas.
func (h *Handler) GetStatement(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	month, year := h.parsePeriod(c)
	filter := &transaction.ListFilter{
		Search: c.Query("search"),
		Type:   transaction.Types(c.Query("type")),
	}

	items, err := h.BillingService.Statement(c.Request.Context(), userID, billing.Period{
		Year:  year,
		Month: time.Month(month),
	}, filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.StatementResponse{Items: items, Month: month, Year: year})
}

func (h *Handler) GetTransaction(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	entity, err := h.TransactionService.GetTransactionById(c.Request.Context(), transactionID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.TransactionResponse{Transaction: entity})
}

func (h *Handler) UpdateTransaction(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var req contracts.TransactionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	var categoryID *ulid.ULID
	if req.CategoryId != nil {
		parsed, err := pkg.ParseULID(*req.CategoryId)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("categoryId", "formato inválido"))
			return
		}
		categoryID = &parsed
	}

	var expenseType *transaction.ExpenseType
	if req.ExpenseType != nil {
		et := transaction.ExpenseType(*req.ExpenseType)
		expenseType = &et
	}

	entity, err := h.TransactionService.UpdateTransaction(c.Request.Context(), transactionID, userID, &transaction.UpdateTransactionRequest{
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		CategoryId:  categoryID,
		ExpenseType: expenseType,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.TransactionResponse{Transaction: entity})
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	if err := h.TransactionService.DeleteTransaction(c.Request.Context(), transactionID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Transação removida com sucesso"})
}

func (h *Handler) SetTransactionPaid(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var req contracts.SetPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	entity, err := h.TransactionService.SetPaid(c.Request.Context(), transactionID, userID, req.IsPaid)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.TransactionResponse{Transaction: entity})
}

func parseOptionalULID(value string) (ulid.ULID, error) {
	if value == "" {
		return ulid.ULID{}, nil
	}
	return pkg.ParseULID(value)
}
