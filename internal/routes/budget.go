package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/robsonsvicero/financassimples/internal/contracts"
	"github.com/robsonsvicero/financassimples/internal/domain/budget"
	appErrors "github.com/robsonsvicero/financassimples/internal/errors"
	"github.com/robsonsvicero/financassimples/internal/pkg"
)

func (h *Handler) CreateBudget(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req contracts.BudgetCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	categoryID, err := pkg.ParseULID(req.CategoryId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("categoryId", "formato inválido"))
		return
	}

	entity, err := h.BudgetService.Create(c.Request.Context(), &budget.CreateBudgetRequest{
		UserId:     userID,
		CategoryId: categoryID,
		Amount:     req.Amount,
		Month:      req.Month,
		Year:       req.Year,
		AlertAt:    req.AlertAt,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.BudgetResponse{Budget: entity})
}

func (h *Handler) ListBudgets(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	month, year := h.parsePeriod(c)
	budgets, err := h.BudgetService.ListWithSpending(c.Request.Context(), userID, year, month)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.BudgetListResponse{Budgets: budgets, Total: len(budgets)})
}

func (h *Handler) UpdateBudget(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	budgetID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var req contracts.BudgetUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	entity, err := h.BudgetService.Update(c.Request.Context(), userID, budgetID, req.Amount, req.AlertAt)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.BudgetResponse{Budget: entity})
}

func (h *Handler) DeleteBudget(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	budgetID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	if err := h.BudgetService.Delete(c.Request.Context(), userID, budgetID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Orçamento removido com sucesso"})
}
