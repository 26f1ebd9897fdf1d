package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/robsonsvicero/financassimples/internal/contracts"
	"github.com/robsonsvicero/financassimples/internal/domain/billing"
	"github.com/robsonsvicero/financassimples/internal/domain/card"
	appErrors "github.com/robsonsvicero/financassimples/internal/errors"
	"github.com/robsonsvicero/financassimples/internal/pkg"
)

func (h *Handler) CreateCard(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req contracts.CardCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	entity, err := h.CardService.CreateCard(c.Request.Context(), &card.CreateCardRequest{
		UserId:     userID,
		Name:       req.Name,
		ClosingDay: req.ClosingDay,
		DueDay:     req.DueDay,
		Color:      req.Color,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.CardResponse{Card: entity})
}

func (h *Handler) ListCards(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	cards, err := h.CardService.ListCards(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CardListResponse{Cards: cards, Total: len(cards)})
}

func (h *Handler) GetCard(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	entity, err := h.CardService.GetCardById(c.Request.Context(), cardID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CardResponse{Card: entity})
}

func (h *Handler) UpdateCard(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var req contracts.CardUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	entity, err := h.CardService.UpdateCard(c.Request.Context(), cardID, userID, &card.UpdateCardRequest{
		Name:       req.Name,
		ClosingDay: req.ClosingDay,
		DueDay:     req.DueDay,
		Color:      req.Color,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CardResponse{Card: entity})
}

func (h *Handler) DeleteCard(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	if err := h.CardService.DeleteCard(c.Request.Context(), cardID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Cartão removido com sucesso"})
}

// GetCardInvoice devolve a fatura do cartão no período pedido (mês corrente
// por omissão).
func (h *Handler) GetCardInvoice(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	month, year := h.parsePeriod(c)
	invoice, err := h.BillingService.CardInvoice(c.Request.Context(), userID, cardID, billing.Period{
		Year:  year,
		Month: time.Month(month),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.InvoiceResponse{Invoice: invoice})
}

// PayCardInvoice alterna o estado de pagamento da fatura inteira.
func (h *Handler) PayCardInvoice(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var req contracts.InvoicePayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	result, err := h.BillingService.SetInvoicePaid(c.Request.Context(), userID, cardID, req.DueDate)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.BatchResultResponse{
		Message: "Fatura atualizada",
		Result:  result,
	})
}

// RecalculateDueDates refaz os vencimentos das despesas de crédito após
// mudanças nos parâmetros dos cartões.
func (h *Handler) RecalculateDueDates(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.BillingService.RecalculateDueDates(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.BatchResultResponse{
		Message: "Vencimentos recalculados",
		Result:  result,
	})
}
