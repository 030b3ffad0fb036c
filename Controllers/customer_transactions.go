package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Munshi/Ledger"
	"Munshi/Models"
)

// CustomerTransactionController handles customer sale endpoints
type CustomerTransactionController struct {
	DB *gorm.DB
}

// NewCustomerTransactionController creates a new CustomerTransactionController
func NewCustomerTransactionController(db *gorm.DB) *CustomerTransactionController {
	return &CustomerTransactionController{DB: db}
}

// transactionOutstanding computes what remains unpaid on one sale.
func transactionOutstanding(transaction Models.CustomerTransaction) float64 {
	payments := make([]Ledger.DatedAmount, 0, len(transaction.Payments))
	for _, p := range transaction.Payments {
		payments = append(payments, Ledger.DatedAmount{Date: p.Date, Amount: p.Amount})
	}
	return Ledger.Outstanding(transaction.TotalAmount, payments)
}

func preloadSale(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_order ASC")
	}).Preload("Payments", func(db *gorm.DB) *gorm.DB {
		return db.Order("date ASC")
	})
}

// GetCustomerTransactions retrieves all sales for a specific customer, each
// with its outstanding amount.
func (c *CustomerTransactionController) GetCustomerTransactions(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID
	customerID, err := strconv.Atoi(ctx.Params("customer_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var customer Models.Customer
	if result := c.DB.Where("user_id = ?", userID).First(&customer, customerID); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	var transactions []Models.CustomerTransaction
	result := preloadSale(c.DB.Where("customer_id = ?", customer.ID)).
		Order("date DESC").Find(&transactions)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve transactions"})
	}

	type saleWithOutstanding struct {
		Models.CustomerTransaction
		OutstandingAmount float64 `json:"outstanding_amount"`
	}

	response := make([]saleWithOutstanding, 0, len(transactions))
	for _, transaction := range transactions {
		response = append(response, saleWithOutstanding{
			CustomerTransaction: transaction,
			OutstandingAmount:   transactionOutstanding(transaction),
		})
	}

	return ctx.JSON(response)
}

// GetTransaction retrieves a single sale by ID with its outstanding amount
func (c *CustomerTransactionController) GetTransaction(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var transaction Models.CustomerTransaction
	result := preloadSale(c.DB.Where("user_id = ?", userID)).First(&transaction, id)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}

	return ctx.JSON(fiber.Map{
		"data":               transaction,
		"outstanding_amount": transactionOutstanding(transaction),
	})
}

// CreateTransaction records a sale. Sales carry no transport charge, so the
// total equals the material amount.
func (c *CustomerTransactionController) CreateTransaction(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID
	customerID, err := strconv.Atoi(ctx.Params("customer_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var customer Models.Customer
	if result := c.DB.Where("user_id = ?", userID).First(&customer, customerID); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	var input Models.TransactionRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date is a required field"})
	}
	if !validDate(input.Date) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
	}

	material := Ledger.MaterialAmount(ledgerItems(input.Items), input.MaterialAmount)

	transaction := Models.CustomerTransaction{
		UserID:         userID,
		CustomerID:     customer.ID,
		Date:           input.Date,
		MaterialAmount: material,
		TotalAmount:    Ledger.CustomerTotal(material),
	}

	tx := c.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Transaction error"})
	}
	if err := tx.Create(&transaction).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create transaction"})
	}
	if err := createItems(tx, Models.ParentCustomerTransaction, transaction.ID, input.Items); err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create transaction items"})
	}
	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to commit transaction"})
	}

	Models.MarkSummaryDirty(c.DB, userID, transaction.Date)

	preloadSale(c.DB).First(&transaction, transaction.ID)

	return ctx.Status(fiber.StatusCreated).JSON(transaction)
}

// UpdateTransaction applies a partial update to a sale. The total is
// recomputed only when the patch touches items or the material amount.
func (c *CustomerTransactionController) UpdateTransaction(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var transaction Models.CustomerTransaction
	if result := c.DB.Where("user_id = ?", userID).First(&transaction, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}

	var input struct {
		Date           string                `json:"date"`
		Items          *[]Models.ItemRequest `json:"items"`
		MaterialAmount *float64              `json:"material_amount"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if input.Date != "" && !validDate(input.Date) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
	}

	previousDate := transaction.Date

	tx := c.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Transaction error"})
	}

	if input.Date != "" {
		transaction.Date = input.Date
	}

	if input.Items != nil {
		if err := tx.Where("parent_type = ? AND parent_id = ?", Models.ParentCustomerTransaction, transaction.ID).
			Delete(&Models.TransactionItem{}).Error; err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to replace transaction items"})
		}
		if err := createItems(tx, Models.ParentCustomerTransaction, transaction.ID, *input.Items); err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create transaction items"})
		}
		transaction.MaterialAmount = Ledger.MaterialAmount(ledgerItems(*input.Items), input.MaterialAmount)
		transaction.TotalAmount = Ledger.CustomerTotal(transaction.MaterialAmount)
	} else if input.MaterialAmount != nil {
		transaction.MaterialAmount = *input.MaterialAmount
		transaction.TotalAmount = Ledger.CustomerTotal(transaction.MaterialAmount)
	}

	if err := tx.Save(&transaction).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update transaction"})
	}
	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to commit transaction"})
	}

	Models.MarkSummaryDirty(c.DB, userID, previousDate)
	if transaction.Date != previousDate {
		Models.MarkSummaryDirty(c.DB, userID, transaction.Date)
	}

	preloadSale(c.DB).First(&transaction, transaction.ID)

	return ctx.JSON(transaction)
}

// DeleteTransaction deletes a sale together with its items and payments
func (c *CustomerTransactionController) DeleteTransaction(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var transaction Models.CustomerTransaction
	if result := c.DB.Where("user_id = ?", userID).First(&transaction, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}

	// Payment dates drive income months, so collect them before the cascade
	var payments []Models.CustomerPayment
	if err := c.DB.Where("transaction_id = ?", transaction.ID).Find(&payments).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load payments"})
	}

	tx := c.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Transaction error"})
	}
	if err := tx.Where("parent_type = ? AND parent_id = ?", Models.ParentCustomerTransaction, transaction.ID).
		Delete(&Models.TransactionItem{}).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete transaction items"})
	}
	if err := tx.Where("transaction_id = ?", transaction.ID).Delete(&Models.CustomerPayment{}).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete payments"})
	}
	if err := tx.Delete(&transaction).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete transaction"})
	}
	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to commit transaction"})
	}

	Models.MarkSummaryDirty(c.DB, userID, transaction.Date)
	for _, payment := range payments {
		Models.MarkSummaryDirty(c.DB, userID, payment.Date)
	}

	return ctx.JSON(fiber.Map{"message": "Transaction deleted successfully"})
}
