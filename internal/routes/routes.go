// Package routes assembles the services, handlers and middleware into the
// application router.
package routes

import (
	"finance/internal/handlers"
	"finance/internal/middleware"
	"finance/internal/quote"
	"finance/internal/services"
	"finance/internal/validator"
	"finance/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "finance/internal/docs" // Import swagger docs
)

// Deps are the collaborators the router is built from.
type Deps struct {
	DB       *gorm.DB
	Quotes   quote.Provider
	SeedCash decimal.Decimal
	Sessions *middleware.SessionManager
}

// New wires every service and handler and returns the router.
func New(d Deps) *gin.Engine {
	validator.Register()

	// Services
	userService := services.NewUserService(d.DB, d.SeedCash)
	quoteService := services.NewQuoteService(d.Quotes)
	portfolioService := services.NewPortfolioService(d.DB, userService, quoteService)
	tradeService := services.NewTradeService(d.DB, quoteService)
	ledgerService := services.NewLedgerService(d.DB)
	auditService := services.NewAuditService(d.DB)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, d.Sessions, auditService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	tradeHandler := handlers.NewTradeHandler(tradeService, ledgerService, auditService)
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	historyHandler := handlers.NewHistoryHandler(ledgerService)
	apiHandler := handlers.NewAPIHandler(quoteService, portfolioService, ledgerService, tradeService, auditService)

	router := gin.New()
	router.SetHTMLTemplate(web.MustTemplates())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.NoCache())
	router.Use(middleware.ErrorHandler())
	router.Use(d.Sessions.Middleware())
	router.NoRoute(middleware.NotFound())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public pages
	router.GET("/login", authHandler.LoginForm)
	router.POST("/login", authHandler.Login)
	router.GET("/register", authHandler.RegisterForm)
	router.POST("/register", authHandler.Register)

	// Protected pages
	pages := router.Group("/")
	pages.Use(middleware.RequireUser())
	pages.GET("", portfolioHandler.Index)
	pages.GET("/quote", quoteHandler.Form)
	pages.POST("/quote", quoteHandler.Lookup)
	pages.GET("/buy", tradeHandler.BuyForm)
	pages.POST("/buy", tradeHandler.Buy)
	pages.GET("/sell", tradeHandler.SellForm)
	pages.POST("/sell", tradeHandler.Sell)
	pages.GET("/history", historyHandler.History)
	pages.GET("/history.xlsx", historyHandler.Export)
	pages.GET("/logout", authHandler.Logout)
	pages.GET("/password", authHandler.PasswordForm)
	pages.POST("/password", authHandler.ChangePassword)

	// Health check endpoint
	router.GET("/api/health", handlers.Health)

	// API v1 group
	v1 := router.Group("/api/v1")
	v1.Use(middleware.RequireUser())
	v1.GET("/quote/:symbol", apiHandler.Quote)
	v1.GET("/portfolio", apiHandler.Portfolio)
	v1.GET("/history", apiHandler.History)
	v1.POST("/buy", apiHandler.Buy)
	v1.POST("/sell", apiHandler.Sell)

	return router
}
