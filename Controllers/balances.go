package Controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Munshi/Ledger"
	"Munshi/Models"
)

// BalanceController rolls outstanding balances up across the whole portfolio
// of vendors or customers.
type BalanceController struct {
	DB *gorm.DB
}

// NewBalanceController creates a new BalanceController
func NewBalanceController(db *gorm.DB) *BalanceController {
	return &BalanceController{DB: db}
}

type entitySum struct {
	ID     uint
	Name   string
	Amount float64
}

// vendorBalances computes every vendor's unclamped balance in two grouped
// queries. Any read failure aborts the reduction and returns the error.
func vendorBalances(db *gorm.DB, userID uint) ([]Ledger.EntityBalance, error) {
	var totals []entitySum
	err := db.Model(&Models.Vendor{}).
		Select("vendors.id AS id, vendors.name AS name, COALESCE(SUM(t.total_amount), 0) AS amount").
		Joins("LEFT JOIN vendor_transactions t ON t.vendor_id = vendors.id AND t.deleted_at IS NULL").
		Where("vendors.user_id = ?", userID).
		Group("vendors.id, vendors.name").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	var payments []entitySum
	err = db.Model(&Models.VendorPayment{}).
		Select("vendor_id AS id, COALESCE(SUM(amount), 0) AS amount").
		Where("user_id = ?", userID).
		Group("vendor_id").
		Scan(&payments).Error
	if err != nil {
		return nil, err
	}

	paid := make(map[uint]float64, len(payments))
	for _, p := range payments {
		paid[p.ID] = p.Amount
	}

	balances := make([]Ledger.EntityBalance, 0, len(totals))
	for _, t := range totals {
		balances = append(balances, Ledger.EntityBalance{
			EntityID: t.ID,
			Name:     t.Name,
			Balance:  t.Amount - paid[t.ID],
		})
	}
	return balances, nil
}

// customerBalances mirrors vendorBalances for the customer side, where
// payments hang off transactions instead of the entity.
func customerBalances(db *gorm.DB, userID uint) ([]Ledger.EntityBalance, error) {
	var totals []entitySum
	err := db.Model(&Models.Customer{}).
		Select("customers.id AS id, customers.name AS name, COALESCE(SUM(t.total_amount), 0) AS amount").
		Joins("LEFT JOIN customer_transactions t ON t.customer_id = customers.id AND t.deleted_at IS NULL").
		Where("customers.user_id = ?", userID).
		Group("customers.id, customers.name").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	var payments []entitySum
	err = db.Model(&Models.CustomerPayment{}).
		Select("t.customer_id AS id, COALESCE(SUM(customer_payments.amount), 0) AS amount").
		Joins("JOIN customer_transactions t ON t.id = customer_payments.transaction_id").
		Where("customer_payments.user_id = ? AND customer_payments.deleted_at IS NULL", userID).
		Group("t.customer_id").
		Scan(&payments).Error
	if err != nil {
		return nil, err
	}

	paid := make(map[uint]float64, len(payments))
	for _, p := range payments {
		paid[p.ID] = p.Amount
	}

	balances := make([]Ledger.EntityBalance, 0, len(totals))
	for _, t := range totals {
		balances = append(balances, Ledger.EntityBalance{
			EntityID: t.ID,
			Name:     t.Name,
			Balance:  t.Amount - paid[t.ID],
		})
	}
	return balances, nil
}

// VendorPortfolio reports how much is owed across all vendors. Each vendor's
// contribution is clamped at zero, so overpayments never offset other debts.
// GET /api/balances/vendors
func (c *BalanceController) VendorPortfolio(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID

	balances, err := vendorBalances(c.DB, userID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute balances"})
	}

	return ctx.JSON(fiber.Map{
		"outstanding": Ledger.PortfolioOutstanding(balances),
		"vendors":     balances,
	})
}

// CustomerPortfolio reports how much is due across all customers.
// GET /api/balances/customers
func (c *BalanceController) CustomerPortfolio(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID

	balances, err := customerBalances(c.DB, userID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute balances"})
	}

	return ctx.JSON(fiber.Map{
		"outstanding": Ledger.PortfolioOutstanding(balances),
		"customers":   balances,
	})
}
