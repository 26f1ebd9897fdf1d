package fx

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"github.com/robsonsvicero/financassimples/config"
	docs "github.com/robsonsvicero/financassimples/docs"
	"github.com/robsonsvicero/financassimples/internal/logger"
	"github.com/robsonsvicero/financassimples/internal/middleware"
	"github.com/robsonsvicero/financassimples/internal/routes"
)

// ServerModule fornece a configuração do servidor HTTP
var ServerModule = fx.Module("server",
	fx.Provide(
		newRouter,
	),
	fx.Invoke(
		setupRoutes,
	),
)

func newRouter() *gin.Engine {
	return gin.Default()
}

func setupRoutes(
	lc fx.Lifecycle,
	cfg *config.Config,
	router *gin.Engine,
	handler *routes.Handler,
	jwtSvc *middleware.JwtService,
	rateLimiter *middleware.RateLimiter,
) {
	router.Use(middleware.CORSMiddleware())

	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := router.Group("/api")
	public.Use(middleware.RateLimit(rateLimiter))
	{
		public.POST("/auth/login", handler.Authenticate)
		public.POST("/auth/register", handler.Registration)
		public.POST("/auth/google", handler.GoogleAuth)
	}

	private := router.Group("/api")
	private.Use(jwtSvc.AuthMiddleware())
	private.Use(middleware.RateLimit(rateLimiter))
	{
		private.GET("/auth/me", handler.GetMe)
		private.GET("/dashboard", handler.GetDashboard)

		users := private.Group("/users")
		{
			users.PATCH("/me", handler.UpdateUserName)
			users.PATCH("/me/password", handler.UpdateUserPassword)
			users.DELETE("/me", handler.DeleteUser)
		}

		transactions := private.Group("/transactions")
		{
			transactions.POST("", handler.CreateTransaction)
			transactions.POST("/credit", handler.CreateCreditPurchase)
			transactions.GET("", handler.GetTransactions)
			transactions.GET("/statement", handler.GetStatement)
			transactions.GET("/:id", handler.GetTransaction)
			transactions.PATCH("/:id", handler.UpdateTransaction)
			transactions.PATCH("/:id/paid", handler.SetTransactionPaid)
			transactions.DELETE("/:id", handler.DeleteTransaction)
		}

		categories := private.Group("/categories")
		{
			categories.POST("", handler.CreateCategory)
			categories.GET("", handler.ListCategories)
			categories.PATCH("/:id", handler.UpdateCategory)
			categories.DELETE("/:id", handler.DeleteCategory)
		}

		creditCards := private.Group("/credit-cards")
		{
			creditCards.POST("", handler.CreateCard)
			creditCards.GET("", handler.ListCards)
			creditCards.POST("/recalculate-due-dates", handler.RecalculateDueDates)
			creditCards.GET("/:id", handler.GetCard)
			creditCards.PATCH("/:id", handler.UpdateCard)
			creditCards.DELETE("/:id", handler.DeleteCard)
			creditCards.GET("/:id/invoice", handler.GetCardInvoice)
			creditCards.POST("/:id/invoices/pay", handler.PayCardInvoice)
		}

		budgets := private.Group("/budgets")
		{
			budgets.POST("", handler.CreateBudget)
			budgets.GET("", handler.ListBudgets)
			budgets.PATCH("/:id", handler.UpdateBudget)
			budgets.DELETE("/:id", handler.DeleteBudget)
		}

		reports := private.Group("/reports")
		{
			reports.GET("/monthly", handler.GetMonthlyReport)
			reports.GET("/yearly", handler.GetYearlyReport)
		}
	}

	serverAddr := ":" + cfg.Server.Port
	logger.Info().
		Str("address", serverAddr).
		Str("environment", cfg.App.Environment).
		Msg("Servidor iniciando")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := router.Run(serverAddr); err != nil {
					logger.Fatal().Err(err).Msg("Falha ao iniciar servidor")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			rateLimiter.Stop()
			logger.Info().Msg("Servidor parando...")
			return nil
		},
	})
}
