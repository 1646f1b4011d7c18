// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/workshop-backend/internal/config"
	"github.com/your-org/workshop-backend/internal/domain/subscription"
	"github.com/your-org/workshop-backend/internal/infrastructure/database/redis"
	"github.com/your-org/workshop-backend/internal/interfaces/http/handlers"
	"github.com/your-org/workshop-backend/internal/interfaces/http/middleware"
)

// SetupRoutes wires every API route group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, cache *redis.Client, cfg *config.Config) {
	subscriptionService := subscription.NewService(db, cfg, cache)

	setupAuthRoutes(rg, db, cache, cfg)
	setupSubscriptionRoutes(rg, db, cache, cfg)
	setupChatbotRoutes(rg, cfg)

	// Everything below requires a valid token AND an active subscription.
	protected := rg.Group("")
	protected.Use(middleware.AuthMiddleware(cfg))
	protected.Use(middleware.SubscriptionGate(cfg, subscriptionService))
	{
		setupTeamRoutes(protected, db, cfg)
		setupClientRoutes(protected, db, cfg)
		setupCatalogRoutes(protected, db, cfg)
		setupSupplierRoutes(protected, db, cfg)
		setupInvoiceRoutes(protected, db, cfg)
		setupBudgetRoutes(protected, db, cfg)
		setupServiceOrderRoutes(protected, db, cfg)
		setupScheduleRoutes(protected, db, cfg)
		setupFinanceRoutes(protected, db, cfg)
	}
}

// setupAuthRoutes sets up authentication related routes
func setupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cache *redis.Client, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cache, cfg)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		// Protected auth endpoints. These stay outside the subscription
		// gate so a blocked workshop can still reach its own account.
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/profile", authHandler.UpdateProfile)
			protected.PUT("/password", authHandler.ChangePassword)
			protected.GET("/validate", authHandler.ValidateToken)
		}
	}
}

// setupSubscriptionRoutes sets up plan and billing routes. Not behind the
// subscription gate: blocked workshops must be able to see their status
// and register a payment.
func setupSubscriptionRoutes(rg *gin.RouterGroup, db *gorm.DB, cache *redis.Client, cfg *config.Config) {
	subscriptionHandler := handlers.NewSubscriptionHandler(db, cache, cfg)

	plans := rg.Group("/plans")
	{
		plans.GET("", subscriptionHandler.ListPlans)
	}

	sub := rg.Group("/subscription")
	sub.Use(middleware.AuthMiddleware(cfg))
	{
		sub.GET("", subscriptionHandler.GetSubscription)
		sub.GET("/status", subscriptionHandler.GetStatus)

		admin := sub.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("/extend", subscriptionHandler.Extend)
			admin.PUT("/plan", subscriptionHandler.ChangePlan)
			admin.DELETE("", subscriptionHandler.Cancel)
		}
	}
}

// setupChatbotRoutes sets up the public chat endpoint
func setupChatbotRoutes(rg *gin.RouterGroup, cfg *config.Config) {
	chatbotHandler := handlers.NewChatbotHandler(cfg)

	chatbot := rg.Group("/chatbot")
	{
		chatbot.POST("/ask", chatbotHandler.Ask)
	}
}

// setupTeamRoutes sets up workshop staff management routes
func setupTeamRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	teamHandler := handlers.NewTeamHandler(db, cfg)

	team := rg.Group("/team")
	team.Use(middleware.AdminMiddleware())
	{
		team.GET("", teamHandler.ListMembers)
		team.POST("", teamHandler.CreateMember)
		team.PUT("/:id/active", teamHandler.SetMemberActive)
	}
}

// setupClientRoutes sets up client and vehicle routes
func setupClientRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	clientHandler := handlers.NewClientHandler(db, cfg)

	clients := rg.Group("/clients")
	{
		clients.GET("", clientHandler.ListClients)
		clients.POST("", clientHandler.CreateClient)
		clients.GET("/:id", clientHandler.GetClient)
		clients.PUT("/:id", clientHandler.UpdateClient)
		clients.DELETE("/:id", clientHandler.DeleteClient)
	}

	vehicles := rg.Group("/vehicles")
	{
		vehicles.GET("", clientHandler.ListVehicles)
		vehicles.POST("", clientHandler.CreateVehicle)
		vehicles.PUT("/:id", clientHandler.UpdateVehicle)
		vehicles.DELETE("/:id", clientHandler.DeleteVehicle)
	}
}

// setupCatalogRoutes sets up item and stock routes
func setupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	catalogHandler := handlers.NewCatalogHandler(db, cfg)

	catalog := rg.Group("/catalog")
	{
		catalog.GET("/items", catalogHandler.ListItems)
		catalog.POST("/items", catalogHandler.CreateItem)
		catalog.GET("/items/:id", catalogHandler.GetItem)
		catalog.PUT("/items/:id", catalogHandler.UpdateItem)
		catalog.DELETE("/items/:id", catalogHandler.DeactivateItem)

		catalog.POST("/stock/movements", catalogHandler.RecordMovement)
		catalog.GET("/items/:id/movements", catalogHandler.ListMovements)
		catalog.GET("/stock/low", catalogHandler.ListLowStock)
	}
}

// setupSupplierRoutes sets up supplier routes
func setupSupplierRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	supplierHandler := handlers.NewSupplierHandler(db, cfg)

	suppliers := rg.Group("/suppliers")
	{
		suppliers.GET("", supplierHandler.ListSuppliers)
		suppliers.POST("", supplierHandler.CreateSupplier)
		suppliers.GET("/:id", supplierHandler.GetSupplier)
		suppliers.PUT("/:id", supplierHandler.UpdateSupplier)
		suppliers.DELETE("/:id", supplierHandler.DeleteSupplier)
	}
}

// setupInvoiceRoutes sets up NFe invoice import routes
func setupInvoiceRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	invoiceHandler := handlers.NewInvoiceImportHandler(db, cfg)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("/import", invoiceHandler.ImportNFe)
	}
}

// setupBudgetRoutes sets up budget routes
func setupBudgetRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	budgetHandler := handlers.NewBudgetHandler(db, cfg)

	budgets := rg.Group("/budgets")
	{
		budgets.GET("", budgetHandler.ListBudgets)
		budgets.POST("", budgetHandler.CreateBudget)
		budgets.GET("/:id", budgetHandler.GetBudget)
		budgets.DELETE("/:id", budgetHandler.DeleteBudget)
		budgets.PUT("/:id/approve", budgetHandler.Approve)
		budgets.PUT("/:id/reject", budgetHandler.Reject)
		budgets.GET("/:id/pdf", budgetHandler.DownloadPDF)
		budgets.POST("/:id/send", budgetHandler.SendToClient)
	}
}

// setupServiceOrderRoutes sets up service order routes
func setupServiceOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	orderHandler := handlers.NewServiceOrderHandler(db, cfg)

	orders := rg.Group("/service-orders")
	{
		orders.GET("", orderHandler.ListOrders)
		orders.POST("", orderHandler.CreateOrder)
		orders.POST("/from-budget/:id", orderHandler.CreateFromBudget)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PUT("/:id", orderHandler.UpdateOrder)
		orders.PUT("/:id/start", orderHandler.Start)
		orders.PUT("/:id/finish", orderHandler.Finish)
		orders.PUT("/:id/deliver", orderHandler.Deliver)
		orders.PUT("/:id/cancel", orderHandler.Cancel)
		orders.GET("/:id/pdf", orderHandler.DownloadPDF)
	}
}

// setupScheduleRoutes sets up appointment routes
func setupScheduleRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	scheduleHandler := handlers.NewScheduleHandler(db, cfg)

	appointments := rg.Group("/appointments")
	{
		appointments.GET("", scheduleHandler.ListAppointments)
		appointments.POST("", scheduleHandler.CreateAppointment)
		appointments.GET("/:id", scheduleHandler.GetAppointment)
		appointments.PUT("/:id", scheduleHandler.UpdateAppointment)
		appointments.PUT("/:id/status", scheduleHandler.SetStatus)
	}
}

// setupFinanceRoutes sets up receivable and payable routes. Mechanics do
// not see the money side.
func setupFinanceRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	financeHandler := handlers.NewFinanceHandler(db, cfg)

	finance := rg.Group("/finance")
	finance.Use(middleware.RoleMiddleware("admin", "manager"))
	{
		finance.GET("/transactions", financeHandler.ListTransactions)
		finance.POST("/transactions", financeHandler.CreateTransaction)
		finance.GET("/transactions/:id", financeHandler.GetTransaction)
		finance.PUT("/transactions/:id/pay", financeHandler.MarkPaid)
		finance.PUT("/transactions/:id/cancel", financeHandler.CancelTransaction)
		finance.GET("/summary", financeHandler.GetSummary)
	}
}
