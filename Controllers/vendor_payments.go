package Controllers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Munshi/Models"
	"Munshi/Notifications"
)

// VendorPaymentController handles payments made to vendors
type VendorPaymentController struct {
	DB *gorm.DB
}

// NewVendorPaymentController creates a new VendorPaymentController
func NewVendorPaymentController(db *gorm.DB) *VendorPaymentController {
	return &VendorPaymentController{DB: db}
}

// GetAllPayments lists every vendor payment for the caller, newest first
// GET /api/vendor-payments
func (c *VendorPaymentController) GetAllPayments(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID

	var payments []Models.VendorPayment
	result := c.DB.Where("user_id = ?", userID).Order("date DESC").Find(&payments)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve payments"})
	}

	return ctx.JSON(payments)
}

// GetVendorPayments lists payments recorded against one vendor
func (c *VendorPaymentController) GetVendorPayments(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID
	vendorID, err := strconv.Atoi(ctx.Params("vendor_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vendor ID"})
	}

	var vendor Models.Vendor
	if result := c.DB.Where("user_id = ?", userID).First(&vendor, vendorID); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor not found"})
	}

	var payments []Models.VendorPayment
	result := c.DB.Where("vendor_id = ?", vendor.ID).Order("date DESC").Find(&payments)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve payments"})
	}

	return ctx.JSON(payments)
}

// CreatePayment records a payment to a vendor. The vendor's
// last_payment_amount denormalized field and the month's summary cache are
// updated alongside.
func (c *VendorPaymentController) CreatePayment(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID
	vendorID, err := strconv.Atoi(ctx.Params("vendor_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vendor ID"})
	}

	var vendor Models.Vendor
	if result := c.DB.Where("user_id = ?", userID).First(&vendor, vendorID); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor not found"})
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

	payment := Models.VendorPayment{
		UserID:        userID,
		VendorID:      vendor.ID,
		VendorName:    vendor.Name,
		Date:          input.Date,
		Amount:        *input.Amount,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
	}

	tx := c.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Transaction error"})
	}
	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create payment"})
	}
	if err := tx.Model(&vendor).Update("last_payment_amount", payment.Amount).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update vendor"})
	}
	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to commit transaction"})
	}

	Models.MarkSummaryDirty(c.DB, userID, payment.Date)

	if err := Notifications.SendPaymentRecorded(c.DB, userID, vendor.Name, payment.Amount); err != nil {
		log.Printf("Failed to send payment notification: %v", err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(payment)
}

// refreshLastPayment recomputes the vendor's denormalized last_payment_amount
// from the most recent remaining payment, zero when none are left.
func refreshLastPayment(db *gorm.DB, vendorID uint) error {
	var latest Models.VendorPayment
	err := db.Where("vendor_id = ?", vendorID).Order("date DESC, id DESC").First(&latest).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	return db.Model(&Models.Vendor{}).Where("id = ?", vendorID).
		Update("last_payment_amount", latest.Amount).Error
}

// UpdatePayment updates a vendor payment
func (c *VendorPaymentController) UpdatePayment(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment ID"})
	}

	var payment Models.VendorPayment
	if result := c.DB.Where("user_id = ?", userID).First(&payment, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
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

	previousDate := payment.Date

	payment.Date = input.Date
	payment.Amount = *input.Amount
	payment.PaymentMethod = input.PaymentMethod
	payment.Notes = input.Notes

	if result := c.DB.Save(&payment); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update payment"})
	}
	if err := refreshLastPayment(c.DB, payment.VendorID); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update vendor"})
	}

	Models.MarkSummaryDirty(c.DB, userID, previousDate)
	if payment.Date != previousDate {
		Models.MarkSummaryDirty(c.DB, userID, payment.Date)
	}

	return ctx.JSON(payment)
}

// DeletePayment deletes a vendor payment
func (c *VendorPaymentController) DeletePayment(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment ID"})
	}

	var payment Models.VendorPayment
	if result := c.DB.Where("user_id = ?", userID).First(&payment, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}

	if result := c.DB.Delete(&payment); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete payment"})
	}
	if err := refreshLastPayment(c.DB, payment.VendorID); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update vendor"})
	}

	Models.MarkSummaryDirty(c.DB, userID, payment.Date)

	return ctx.JSON(fiber.Map{"message": "Payment deleted successfully"})
}
