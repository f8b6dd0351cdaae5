package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amora/backend/internal/config"
	"github.com/amora/backend/internal/handlers"
	"github.com/amora/backend/internal/middleware"
	"github.com/amora/backend/internal/services/balance"
	"github.com/amora/backend/internal/services/gift"
	"github.com/amora/backend/internal/services/registry"
	"github.com/amora/backend/internal/services/subscription"
	"github.com/amora/backend/internal/services/transaction"
	"github.com/amora/backend/internal/services/withdrawal"
	"github.com/amora/backend/internal/utils"
)

// Services bundles the service layer the router wires handlers onto.
type Services struct {
	Registry     *registry.Service
	Balance      *balance.Service
	Transaction  *transaction.Service
	Withdrawal   *withdrawal.Service
	Subscription *subscription.Service
	Gift         *gift.Service
}

// SetupRouter builds the gin engine with all routes registered.
func SetupRouter(db *gorm.DB, cfg *config.Config, svcs Services, rateLimiter *middleware.RateLimiter) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Admin-OTP"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(rateLimiter.IPRateLimiterMiddleware())

	audit := utils.NewAuditLogger(db)

	authHandler := handlers.NewAuthHandler(db)
	registryHandler := handlers.NewRegistryHandler(svcs.Registry, audit)
	transactionHandler := handlers.NewTransactionHandler(svcs.Transaction)
	adminTransactionHandler := handlers.NewAdminTransactionHandler(svcs.Transaction, audit)
	balanceHandler := handlers.NewBalanceHandler(svcs.Balance, svcs.Withdrawal)
	adminFinancialHandler := handlers.NewAdminFinancialHandler(svcs.Withdrawal, audit)
	subscriptionHandler := handlers.NewSubscriptionHandler(svcs.Subscription, audit)
	giftHandler := handlers.NewGiftHandler(svcs.Gift)
	adminMFAHandler := handlers.NewAdminMFAHandler(db, audit)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	api := router.Group("/api")
	{
		api.GET("/countries", registryHandler.ListCountries)
		api.GET("/countries/:id/payment-methods", registryHandler.ListCountryMethods)
		api.GET("/subscriptions/packages", subscriptionHandler.ListPackages)
		api.GET("/gifts/catalog", giftHandler.Catalog)
	}

	authGroup := router.Group("/api/auth")
	authGroup.Use(rateLimiter.AuthRateLimiterMiddleware())
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	// Authenticated user routes
	user := router.Group("/api")
	user.Use(middleware.AuthMiddleware())
	{
		user.POST("/transactions/initiate", transactionHandler.Initiate)
		user.GET("/transactions", transactionHandler.ListMine)
		user.GET("/transactions/:id", transactionHandler.Get)
		user.POST("/transactions/:id/submit-reference", transactionHandler.SubmitReference)

		user.GET("/balance", balanceHandler.Get)
		user.GET("/balance/history", balanceHandler.History)
		user.POST("/balance/withdraw", balanceHandler.Withdraw)
		user.GET("/balance/withdrawals", balanceHandler.MyWithdrawals)

		user.GET("/subscriptions/me", subscriptionHandler.Current)
		user.POST("/subscriptions/purchase-with-balance", subscriptionHandler.PurchaseWithBalance)

		user.POST("/gifts/send", giftHandler.Send)
		user.POST("/gifts/initiate", giftHandler.InitiatePending)
		user.POST("/gifts/:id/redeem", giftHandler.Redeem)
		user.GET("/gifts", giftHandler.List)
	}

	// Back-office routes
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		// MFA enrollment stays outside the OTP gate so admins can enroll.
		admin.POST("/mfa/setup", adminMFAHandler.Setup)
		admin.POST("/mfa/verify", adminMFAHandler.Verify)

		gated := admin.Group("")
		gated.Use(middleware.AdminOTPMiddleware(db))
		{
			gated.GET("/transactions/pending-verification", adminTransactionHandler.ListPendingVerification)
			gated.PUT("/transactions/:id/verify", adminTransactionHandler.Verify)

			gated.GET("/financials/withdrawal-requests", adminFinancialHandler.ListWithdrawalRequests)
			gated.PUT("/financials/withdrawal-requests/:id", adminFinancialHandler.UpdateWithdrawalStatus)

			gated.POST("/payment-method-types", registryHandler.CreateMethodType)
			gated.PUT("/countries/:id/payment-methods", registryHandler.UpsertCountryMethod)
			gated.DELETE("/countries/:id/payment-methods/:methodId", registryHandler.DeleteCountryMethod)

			gated.POST("/subscriptions/packages", subscriptionHandler.CreatePackage)
			gated.PUT("/subscriptions/packages/:id", subscriptionHandler.UpdatePackage)
		}
	}

	return router
}
