package Controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Munshi/Models"
)

// VendorController handles vendor-related API endpoints
type VendorController struct {
	DB *gorm.DB
}

// NewVendorController creates a new VendorController
func NewVendorController(db *gorm.DB) *VendorController {
	return &VendorController{DB: db}
}

// GetVendors retrieves the caller's vendors, optionally filtered by a
// lowercase name prefix, with pagination.
// GET /api/vendors?search=&page=1&limit=20
func (c *VendorController) GetVendors(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID

	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := c.DB.Model(&Models.Vendor{}).Where("user_id = ?", userID)
	if search := strings.ToLower(ctx.Query("search")); search != "" {
		query = query.Where("name_lower LIKE ?", search+"%")
	}

	var total int64
	query.Count(&total)

	var vendors []Models.Vendor
	result := query.Order("name_lower ASC").Offset(offset).Limit(limit).Find(&vendors)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve vendors"})
	}

	return ctx.JSON(fiber.Map{
		"data": vendors,
		"pagination": fiber.Map{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

// GetVendor retrieves a single vendor by ID
func (c *VendorController) GetVendor(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vendor ID"})
	}

	var vendor Models.Vendor
	result := c.DB.Where("user_id = ?", userID).First(&vendor, id)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor not found"})
	}

	return ctx.JSON(vendor)
}

// CreateVendor creates a new vendor
func (c *VendorController) CreateVendor(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID

	var input Models.EntityRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Vendor name is required"})
	}

	vendor := Models.Vendor{
		UserID:    userID,
		Name:      input.Name,
		NameLower: strings.ToLower(input.Name),
		Phone:     input.Phone,
		Address:   input.Address,
	}

	if result := c.DB.Create(&vendor); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create vendor"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(vendor)
}

// UpdateVendor updates an existing vendor. NameLower follows Name on every
// rename.
func (c *VendorController) UpdateVendor(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vendor ID"})
	}

	var vendor Models.Vendor
	if result := c.DB.Where("user_id = ?", userID).First(&vendor, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor not found"})
	}

	var input Models.EntityRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Vendor name is required"})
	}

	vendor.Name = input.Name
	vendor.NameLower = strings.ToLower(input.Name)
	vendor.Phone = input.Phone
	vendor.Address = input.Address

	if result := c.DB.Save(&vendor); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update vendor"})
	}

	return ctx.JSON(vendor)
}

// DeleteVendor deletes a vendor and cascades to its transactions, items and
// payments.
func (c *VendorController) DeleteVendor(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vendor ID"})
	}

	var vendor Models.Vendor
	if result := c.DB.Where("user_id = ?", userID).First(&vendor, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor not found"})
	}

	tx := c.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Transaction error"})
	}

	var transactionIDs []uint
	tx.Model(&Models.VendorTransaction{}).Where("vendor_id = ?", vendor.ID).Pluck("id", &transactionIDs)

	if len(transactionIDs) > 0 {
		if err := tx.Where("parent_type = ? AND parent_id IN ?", Models.ParentVendorTransaction, transactionIDs).
			Delete(&Models.TransactionItem{}).Error; err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete transaction items"})
		}
	}
	if err := tx.Where("vendor_id = ?", vendor.ID).Delete(&Models.VendorTransaction{}).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete transactions"})
	}
	if err := tx.Where("vendor_id = ?", vendor.ID).Delete(&Models.VendorPayment{}).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete payments"})
	}
	if err := tx.Delete(&vendor).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete vendor"})
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to commit transaction"})
	}

	// The removed activity may span any number of months
	Models.MarkAllSummariesDirty(c.DB, userID)

	return ctx.JSON(fiber.Map{"message": "Vendor deleted successfully"})
}

// GetVendorBalance reports the vendor's outstanding balance: transaction
// totals minus payments. The single-vendor figure is unclamped, so an overpaid
// vendor shows a negative balance here.
func (c *VendorController) GetVendorBalance(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vendor ID"})
	}

	var vendor Models.Vendor
	if result := c.DB.Where("user_id = ?", userID).First(&vendor, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor not found"})
	}

	balance, err := vendorOutstanding(c.DB, userID, vendor.ID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute balance"})
	}

	return ctx.JSON(fiber.Map{
		"vendor_id": vendor.ID,
		"name":      vendor.Name,
		"balance":   balance,
	})
}

// vendorOutstanding sums the vendor's transaction totals and subtracts its
// payments. Any read failure aborts the whole reduction.
func vendorOutstanding(db *gorm.DB, userID, vendorID uint) (float64, error) {
	var totals, payments float64

	err := db.Model(&Models.VendorTransaction{}).
		Where("user_id = ? AND vendor_id = ?", userID, vendorID).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&totals).Error
	if err != nil {
		return 0, err
	}

	err = db.Model(&Models.VendorPayment{}).
		Where("user_id = ? AND vendor_id = ?", userID, vendorID).
		Select("COALESCE(SUM(amount), 0)").Scan(&payments).Error
	if err != nil {
		return 0, err
	}

	return totals - payments, nil
}
