package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/robsonsvicero/financassimples/internal/errors"
	"github.com/robsonsvicero/financassimples/internal/pkg"
)

func (h *Handler) GetMonthlyReport(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	month, year := h.parsePeriod(c)
	report, err := h.ReportService.GetMonthlyReport(c.Request.Context(), userID, month, year)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) GetYearlyReport(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	year, err := pkg.ParseInt(c.Query("year"))
	if err != nil || year <= 0 {
		h.respondError(c, appErrors.NewValidationError("year", "é obrigatório"))
		return
	}

	report, err := h.ReportService.GetYearlyReport(c.Request.Context(), userID, year)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
