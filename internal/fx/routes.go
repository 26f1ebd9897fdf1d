package fx

import (
	"time"

	"go.uber.org/fx"

	"github.com/robsonsvicero/financassimples/internal/domain/auth"
	"github.com/robsonsvicero/financassimples/internal/domain/billing"
	"github.com/robsonsvicero/financassimples/internal/domain/budget"
	"github.com/robsonsvicero/financassimples/internal/domain/card"
	"github.com/robsonsvicero/financassimples/internal/domain/category"
	"github.com/robsonsvicero/financassimples/internal/domain/dashboard"
	"github.com/robsonsvicero/financassimples/internal/domain/report"
	"github.com/robsonsvicero/financassimples/internal/domain/transaction"
	"github.com/robsonsvicero/financassimples/internal/domain/user"
	"github.com/robsonsvicero/financassimples/internal/middleware"
	"github.com/robsonsvicero/financassimples/internal/routes"
)

// RoutesModule fornece o handler HTTP e o rate limiter
var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
		newRateLimiter,
	),
)

func newHandler(
	userSvc *user.Service,
	authSvc *auth.Service,
	jwtSvc *middleware.JwtService,
	cardSvc *card.Service,
	categorySvc *category.Service,
	transactionSvc *transaction.Service,
	billingSvc *billing.Service,
	budgetSvc *budget.Service,
	dashboardSvc *dashboard.Service,
	reportSvc *report.Service,
) *routes.Handler {
	return &routes.Handler{
		UserService:        userSvc,
		AuthService:        authSvc,
		JwtService:         jwtSvc,
		CardService:        cardSvc,
		CategoryService:    categorySvc,
		TransactionService: transactionSvc,
		BillingService:     billingSvc,
		BudgetService:      budgetSvc,
		DashboardService:   dashboardSvc,
		ReportService:      reportSvc,
	}
}

func newRateLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(100, time.Minute)
}
