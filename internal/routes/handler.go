package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"github.com/robsonsvicero/financassimples/internal/domain/auth"
	"github.com/robsonsvicero/financassimples/internal/domain/billing"
	"github.com/robsonsvicero/financassimples/internal/domain/budget"
	"github.com/robsonsvicero/financassimples/internal/domain/card"
	"github.com/robsonsvicero/financassimples/internal/domain/category"
	"github.com/robsonsvicero/financassimples/internal/domain/dashboard"
	"github.com/robsonsvicero/financassimples/internal/domain/report"
	"github.com/robsonsvicero/financassimples/internal/domain/transaction"
	"github.com/robsonsvicero/financassimples/internal/domain/user"
	appErrors "github.com/robsonsvicero/financassimples/internal/errors"
	"github.com/robsonsvicero/financassimples/internal/logger"
	"github.com/robsonsvicero/financassimples/internal/middleware"
	"github.com/robsonsvicero/financassimples/internal/pkg"
)

type Handler struct {
	UserService        *user.Service
	AuthService        *auth.Service
	JwtService         *middleware.JwtService
	CardService        *card.Service
	CategoryService    *category.Service
	TransactionService *transaction.Service
	BillingService     *billing.Service
	BudgetService      *budget.Service
	DashboardService   *dashboard.Service
	ReportService      *report.Service
}

func (h *Handler) GetUserIDFromContext(c *gin.Context) (ulid.ULID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return ulid.ULID{}, appErrors.ErrUnauthorized
	}

	userID, err := pkg.ParseULID(userIDStr.(string))
	if err != nil {
		return ulid.ULID{}, appErrors.ErrUnauthorized.WithError(err)
	}

	return userID, nil
}

func (h *Handler) parsePagination(c *gin.Context) *pkg.PaginationParams {
	page := c.DefaultQuery("page", "1")
	limit := c.DefaultQuery("limit", "10")

	pageNum := 1
	if p, err := pkg.ParseInt(page); err == nil && p > 0 {
		pageNum = p
	}

	limitNum := 10
	if l, err := pkg.ParseInt(limit); err == nil && l > 0 {
		limitNum = l
	}

	params := &pkg.PaginationParams{Page: pageNum, Limit: limitNum}
	params.Normalize()
	return params
}

// parsePeriod lê month/year da query, mês corrente quando ausentes.
func (h *Handler) parsePeriod(c *gin.Context) (month, year int) {
	now := pkg.SetTimestamps()
	month = int(now.Month())
	year = now.Year()

	if m, err := pkg.ParseInt(c.Query("month")); err == nil && m >= 1 && m <= 12 {
		month = m
	}
	if y, err := pkg.ParseInt(c.Query("year")); err == nil && y > 0 {
		year = y
	}
	return month, year
}

func (h *Handler) respondError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	event := logger.Error().Str("code", appErr.Code).Str("path", c.FullPath())
	if appErr.Err != nil {
		event = event.Err(appErr.Err)
	}
	event.Msg("request_error")

	payload := gin.H{
		"error":   appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Details) > 0 {
		payload["details"] = appErr.Details
	}
	c.JSON(appErr.StatusCode, payload)
}
