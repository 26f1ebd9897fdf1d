package fx

import (
	"go.uber.org/fx"

	"github.com/robsonsvicero/financassimples/config"
	"github.com/robsonsvicero/financassimples/internal/domain/auth"
	"github.com/robsonsvicero/financassimples/internal/domain/billing"
	"github.com/robsonsvicero/financassimples/internal/domain/budget"
	"github.com/robsonsvicero/financassimples/internal/domain/card"
	"github.com/robsonsvicero/financassimples/internal/domain/category"
	"github.com/robsonsvicero/financassimples/internal/domain/dashboard"
	"github.com/robsonsvicero/financassimples/internal/domain/report"
	"github.com/robsonsvicero/financassimples/internal/domain/shared"
	"github.com/robsonsvicero/financassimples/internal/domain/transaction"
	"github.com/robsonsvicero/financassimples/internal/domain/user"
	"github.com/robsonsvicero/financassimples/internal/infrastructure"
	"github.com/robsonsvicero/financassimples/internal/logger"
)

// DomainModule fornece todos os services do domínio
var DomainModule = fx.Module("domain",
	fx.Provide(
		newUserService,
		newUserCheckerService,

		newCategoryService,

		// Auth service (requer GoogleClientID)
		newGoogleClientID,
		newAuthService,

		newCardService,
		newTransactionService,

		// Billing depende de transaction e card, nunca o contrário
		newBillingService,

		newBudgetService,
		newDashboardService,
		newReportService,
	),
)

func newUserService(repo *infrastructure.UserRepository) *user.Service {
	return user.NewService(repo)
}

func newUserCheckerService(userSvc *user.Service) *shared.UserCheckerService {
	return shared.NewUserCheckerService(userSvc)
}

func newCategoryService(
	repo *infrastructure.CategoryRepository,
	userChecker *shared.UserCheckerService,
) *category.Service {
	return category.NewService(repo, userChecker)
}

func newGoogleClientID(cfg *config.Config) string {
	googleClientID := ""
	if cfg.GoogleOAuth.Enabled {
		if cfg.GoogleOAuth.ClientID == "" {
			logger.Warn().
				Msg("GOOGLE_OAUTH_ENABLED=true mas GOOGLE_OAUTH_CLIENT_ID está vazio. Verifique se a variável está definida no arquivo .env")
		} else {
			googleClientID = cfg.GoogleOAuth.ClientID
			clientIDPreview := googleClientID
			if len(clientIDPreview) > 20 {
				clientIDPreview = clientIDPreview[:20] + "..."
			}
			logger.Info().
				Str("client_id_preview", clientIDPreview).
				Msg("Google OAuth habilitado - o Client ID precisa ser o mesmo usado no frontend")
		}
	} else {
		logger.Info().Msg("Google OAuth desabilitado (GOOGLE_OAUTH_ENABLED não está definido como 'true')")
	}
	return googleClientID
}

func newAuthService(
	repo *infrastructure.UserRepository,
	userSvc *user.Service,
	categorySvc *category.Service,
	googleClientID string,
) *auth.Service {
	return auth.NewService(repo, userSvc, categorySvc, googleClientID)
}

func newCardService(
	repo *infrastructure.CardRepository,
	userChecker *shared.UserCheckerService,
) *card.Service {
	return card.NewService(repo, userChecker)
}

func newTransactionService(
	repo *infrastructure.TransactionRepository,
	userChecker *shared.UserCheckerService,
) *transaction.Service {
	return transaction.NewService(repo, userChecker)
}

func newBillingService(
	repo *infrastructure.TransactionRepository,
	cardRepo *infrastructure.CardRepository,
	userChecker *shared.UserCheckerService,
) *billing.Service {
	return billing.NewService(repo, cardRepo, userChecker)
}

func newBudgetService(
	repo *infrastructure.BudgetRepository,
	categoryRepo *infrastructure.CategoryRepository,
	transactionRepo *infrastructure.TransactionRepository,
	userChecker *shared.UserCheckerService,
) *budget.Service {
	return budget.NewService(repo, categoryRepo, transactionRepo, userChecker)
}

func newDashboardService(
	transactionRepo *infrastructure.TransactionRepository,
	cardRepo *infrastructure.CardRepository,
	categoryRepo *infrastructure.CategoryRepository,
	budgetSvc *budget.Service,
) *dashboard.Service {
	return dashboard.NewService(transactionRepo, cardRepo, categoryRepo, budgetSvc)
}

func newReportService(
	transactionRepo *infrastructure.TransactionRepository,
	cardRepo *infrastructure.CardRepository,
	categoryRepo *infrastructure.CategoryRepository,
	userChecker *shared.UserCheckerService,
) *report.Service {
	return report.NewService(transactionRepo, cardRepo, categoryRepo, userChecker)
}
