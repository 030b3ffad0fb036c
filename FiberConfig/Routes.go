package FiberConfig

import (
	"Munshi/Controllers"
	"Munshi/Models"
	"Munshi/middleware"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	vendorController := Controllers.NewVendorController(db)
	vendorTransactions := Controllers.NewVendorTransactionController(db)
	vendorPayments := Controllers.NewVendorPaymentController(db)
	customerController := Controllers.NewCustomerController(db)
	customerTransactions := Controllers.NewCustomerTransactionController(db)
	customerPayments := Controllers.NewCustomerPaymentController(db)
	balanceController := Controllers.NewBalanceController(db)
	summaryController := Controllers.NewSummaryController(db)
	reportController := Controllers.NewReportController(db)

	// API group
	api := app.Group("/api")

	// Vendor routes
	vendors := api.Group("/vendors", middleware.Verify(1))
	vendors.Get("/", vendorController.GetVendors)
	vendors.Post("/", vendorController.CreateVendor)
	vendors.Get("/:id", vendorController.GetVendor)
	vendors.Put("/:id", vendorController.UpdateVendor)
	vendors.Delete("/:id", vendorController.DeleteVendor)
	vendors.Get("/:id/balance", vendorController.GetVendorBalance)

	// Purchase and payment routes under vendors
	vendors.Get("/:vendor_id/transactions", vendorTransactions.GetVendorTransactions)
	vendors.Post("/:vendor_id/transactions", vendorTransactions.CreateTransaction)
	vendors.Get("/:vendor_id/payments", vendorPayments.GetVendorPayments)
	vendors.Post("/:vendor_id/payments", vendorPayments.CreatePayment)

	// Direct vendor transaction routes
	vendorTx := api.Group("/vendor-transactions", middleware.Verify(1))
	vendorTx.Get("/:id", vendorTransactions.GetTransaction)
	vendorTx.Put("/:id", vendorTransactions.UpdateTransaction)
	vendorTx.Delete("/:id", vendorTransactions.DeleteTransaction)

	// Direct vendor payment routes
	vendorPay := api.Group("/vendor-payments", middleware.Verify(1))
	vendorPay.Get("/", vendorPayments.GetAllPayments)
	vendorPay.Put("/:id", vendorPayments.UpdatePayment)
	vendorPay.Delete("/:id", vendorPayments.DeletePayment)

	// Customer routes
	customers := api.Group("/customers", middleware.Verify(1))
	customers.Get("/", customerController.GetCustomers)
	customers.Post("/", customerController.CreateCustomer)
	customers.Get("/:id", customerController.GetCustomer)
	customers.Put("/:id", customerController.UpdateCustomer)
	customers.Delete("/:id", customerController.DeleteCustomer)
	customers.Get("/:id/balance", customerController.GetCustomerBalance)

	// Sale routes under customers
	customers.Get("/:customer_id/transactions", customerTransactions.GetCustomerTransactions)
	customers.Post("/:customer_id/transactions", customerTransactions.CreateTransaction)

	// Direct customer transaction routes
	customerTx := api.Group("/customer-transactions", middleware.Verify(1))
	customerTx.Get("/:id", customerTransactions.GetTransaction)
	customerTx.Put("/:id", customerTransactions.UpdateTransaction)
	customerTx.Delete("/:id", customerTransactions.DeleteTransaction)

	// Payments against a specific sale
	customerTx.Post("/:id/payments", customerPayments.CreatePayment)
	api.Delete("/customer-payments/:id", middleware.Verify(1), customerPayments.DeletePayment)

	// Balance routes
	balances := api.Group("/balances", middleware.Verify(1))
	balances.Get("/vendors", balanceController.VendorPortfolio)
	balances.Get("/customers", balanceController.CustomerPortfolio)

	// Summary routes
	summaries := api.Group("/summaries", middleware.Verify(1))
	summaries.Get("/:year/:month", summaryController.GetSummary)
	summaries.Post("/:year/:month/recompute", summaryController.RecomputeSummary)

	// Report routes
	reports := api.Group("/reports", middleware.Verify(1))
	reports.Get("/monthly/:year/:month", reportController.MonthlyReport)
	reports.Get("/monthly/:year/:month/preview", reportController.MonthlyReportPreview)
}

func FiberConfig() {
	fmt.Println("Server Up...")
	engine := html.New("./Templates", ".html")
	// Html Template engine
	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*", // Allow all origins
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true, // Important for cookies
		MaxAge:           300,  // Max age for preflight requests caching (5 minutes)
	}))

	SetupRoutes(app, Models.DB)
	app.Post("/api/Register", Controllers.Register)
	app.Post("/api/Login", Controllers.Login)
	app.Use("/api/User", middleware.Verify(1), Controllers.User)
	app.Use("/api/Logout", Controllers.Logout)
	app.Post("/api/UpdateToken", middleware.Verify(1), Controllers.UpdateToken)

	app.Listen(":3001")
}
