package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Munshi/Models"
)

// CustomerPaymentController handles payments received against customer sales
type CustomerPaymentController struct {
	DB *gorm.DB
}

// NewCustomerPaymentController creates a new CustomerPaymentController
func NewCustomerPaymentController(db *gorm.DB) *CustomerPaymentController {
	return &CustomerPaymentController{DB: db}
}

// CreatePayment records a payment against one sale and returns the sale's new
// outstanding amount.
// POST /api/customer-transactions/:id/payments
func (c *CustomerPaymentController) CreatePayment(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID
	transactionID, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var transaction Models.CustomerTransaction
	if result := c.DB.Where("user_id = ?", userID).First(&transaction, transactionID); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}

	var input Models.PaymentRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date and amount are required fields"})
	}
	if !validDate(input.Date) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
	}

	payment := Models.CustomerPayment{
		UserID:        userID,
		TransactionID: transaction.ID,
		Date:          input.Date,
		Amount:        *input.Amount,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
	}

	if result := c.DB.Create(&payment); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create payment"})
	}

	Models.MarkSummaryDirty(c.DB, userID, payment.Date)

	preloadSale(c.DB).First(&transaction, transaction.ID)

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"payment":            payment,
		"outstanding_amount": transactionOutstanding(transaction),
	})
}

// DeletePayment removes a payment from a sale and returns the sale's new
// outstanding amount.
// DELETE /api/customer-payments/:id
func (c *CustomerPaymentController) DeletePayment(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment ID"})
	}

	var payment Models.CustomerPayment
	if result := c.DB.Where("user_id = ?", userID).First(&payment, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}

	if result := c.DB.Delete(&payment); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete payment"})
	}

	Models.MarkSummaryDirty(c.DB, userID, payment.Date)

	var transaction Models.CustomerTransaction
	preloadSale(c.DB).First(&transaction, payment.TransactionID)

	return ctx.JSON(fiber.Map{
		"message":            "Payment deleted successfully",
		"outstanding_amount": transactionOutstanding(transaction),
	})
}
