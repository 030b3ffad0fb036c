package Controllers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Munshi/Ledger"
	"Munshi/Models"
)

// SummaryController serves the monthly summary cache
type SummaryController struct {
	DB *gorm.DB
}

// NewSummaryController creates a new SummaryController
func NewSummaryController(db *gorm.DB) *SummaryController {
	return &SummaryController{DB: db}
}

// buildCompileInput loads a user's complete activity for the compiler. It
// reads each table once instead of querying per entity. Any read failure
// aborts the load.
func buildCompileInput(db *gorm.DB, userID uint, year, month int) (Ledger.CompileInput, error) {
	input := Ledger.CompileInput{Year: year, Month: month}

	var vendors []Models.Vendor
	if err := db.Where("user_id = ?", userID).Order("id ASC").Find(&vendors).Error; err != nil {
		return input, err
	}
	var vendorTransactions []Models.VendorTransaction
	if err := db.Where("user_id = ?", userID).Find(&vendorTransactions).Error; err != nil {
		return input, err
	}
	transactionsByVendor := make(map[uint][]Ledger.DatedAmount)
	for _, tx := range vendorTransactions {
		transactionsByVendor[tx.VendorID] = append(transactionsByVendor[tx.VendorID],
			Ledger.DatedAmount{Date: tx.Date, Amount: tx.TotalAmount})
	}
	for _, vendor := range vendors {
		input.Vendors = append(input.Vendors, Ledger.EntityLedger{
			EntityID:     vendor.ID,
			Name:         vendor.Name,
			Transactions: transactionsByVendor[vendor.ID],
		})
	}

	var customers []Models.Customer
	if err := db.Where("user_id = ?", userID).Order("id ASC").Find(&customers).Error; err != nil {
		return input, err
	}
	var customerTransactions []Models.CustomerTransaction
	if err := db.Where("user_id = ?", userID).Find(&customerTransactions).Error; err != nil {
		return input, err
	}
	var customerPayments []Models.CustomerPayment
	if err := db.Where("user_id = ?", userID).Find(&customerPayments).Error; err != nil {
		return input, err
	}

	customerOfTransaction := make(map[uint]uint, len(customerTransactions))
	transactionsByCustomer := make(map[uint][]Ledger.DatedAmount)
	for _, tx := range customerTransactions {
		customerOfTransaction[tx.ID] = tx.CustomerID
		transactionsByCustomer[tx.CustomerID] = append(transactionsByCustomer[tx.CustomerID],
			Ledger.DatedAmount{Date: tx.Date, Amount: tx.TotalAmount})
	}
	paymentsByCustomer := make(map[uint][]Ledger.DatedAmount)
	for _, payment := range customerPayments {
		customerID, ok := customerOfTransaction[payment.TransactionID]
		if !ok {
			continue
		}
		paymentsByCustomer[customerID] = append(paymentsByCustomer[customerID],
			Ledger.DatedAmount{Date: payment.Date, Amount: payment.Amount})
	}
	for _, customer := range customers {
		input.Customers = append(input.Customers, Ledger.EntityLedger{
			EntityID:     customer.ID,
			Name:         customer.Name,
			Transactions: transactionsByCustomer[customer.ID],
			Payments:     paymentsByCustomer[customer.ID],
		})
	}

	var vendorPayments []Models.VendorPayment
	if err := db.Where("user_id = ?", userID).Find(&vendorPayments).Error; err != nil {
		return input, err
	}
	for _, payment := range vendorPayments {
		input.VendorPayments = append(input.VendorPayments,
			Ledger.DatedAmount{Date: payment.Date, Amount: payment.Amount})
	}

	return input, nil
}

// RecomputeMonthlySummary rebuilds the summary row for one month from a fresh
// scan and stores it with the dirty flag cleared.
func RecomputeMonthlySummary(db *gorm.DB, userID uint, year, month int) (Models.MonthlySummary, error) {
	input, err := buildCompileInput(db, userID, year, month)
	if err != nil {
		return Models.MonthlySummary{}, err
	}

	compiled := Ledger.Compile(input)

	topVendors, err := json.Marshal(compiled.TopVendors)
	if err != nil {
		return Models.MonthlySummary{}, err
	}
	topCustomers, err := json.Marshal(compiled.TopCustomers)
	if err != nil {
		return Models.MonthlySummary{}, err
	}

	var summary Models.MonthlySummary
	err = db.Where("user_id = ? AND period = ?", userID, Models.PeriodKey(year, month)).First(&summary).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return Models.MonthlySummary{}, err
	}

	summary.UserID = userID
	summary.Year = year
	summary.Month = month
	summary.Period = Models.PeriodKey(year, month)
	summary.MonthlyIncome = compiled.MonthlyIncome
	summary.MonthlyExpenses = compiled.MonthlyExpenses
	summary.NetBalance = compiled.NetBalance
	summary.VendorTransactionCount = compiled.VendorTransactionCount
	summary.CustomerTransactionCount = compiled.CustomerTransactionCount
	summary.VendorPaymentCount = compiled.VendorPaymentCount
	summary.CustomerPaymentCount = compiled.CustomerPaymentCount
	summary.TopVendors = topVendors
	summary.TopCustomers = topCustomers
	summary.Dirty = false

	if err := db.Save(&summary).Error; err != nil {
		return Models.MonthlySummary{}, err
	}
	return summary, nil
}

// LoadOrComputeSummary serves a cached summary when it is present and clean,
// otherwise recomputes it. A month with no activity yields an all-zero
// summary, not an error.
func LoadOrComputeSummary(db *gorm.DB, userID uint, year, month int) (Models.MonthlySummary, error) {
	var summary Models.MonthlySummary
	err := db.Where("user_id = ? AND period = ?", userID, Models.PeriodKey(year, month)).First(&summary).Error
	if err == nil && !summary.Dirty {
		return summary, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return Models.MonthlySummary{}, err
	}
	return RecomputeMonthlySummary(db, userID, year, month)
}

func parseYearMonth(ctx *fiber.Ctx) (int, int, error) {
	year, err := strconv.Atoi(ctx.Params("year"))
	if err != nil || year < 1 {
		return 0, 0, errors.New("invalid year")
	}
	month, err := strconv.Atoi(ctx.Params("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, errors.New("invalid month")
	}
	return year, month, nil
}

// GetSummary returns the summary for one month, recomputing when the cache is
// missing or dirty.
// GET /api/summaries/:year/:month
func (c *SummaryController) GetSummary(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID

	year, month, err := parseYearMonth(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	summary, err := LoadOrComputeSummary(c.DB, userID, year, month)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute summary"})
	}

	return ctx.JSON(summary)
}

// RecomputeSummary forces a rebuild regardless of cache state.
// POST /api/summaries/:year/:month/recompute
func (c *SummaryController) RecomputeSummary(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID

	year, month, err := parseYearMonth(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	summary, err := RecomputeMonthlySummary(c.DB, userID, year, month)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to recompute summary"})
	}

	return ctx.JSON(summary)
}
