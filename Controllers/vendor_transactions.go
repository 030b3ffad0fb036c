package Controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Munshi/Ledger"
	"Munshi/Models"
)

// VendorTransactionController handles vendor purchase endpoints
type VendorTransactionController struct {
	DB *gorm.DB
}

// NewVendorTransactionController creates a new VendorTransactionController
func NewVendorTransactionController(db *gorm.DB) *VendorTransactionController {
	return &VendorTransactionController{DB: db}
}

func ledgerItems(items []Models.ItemRequest) []Ledger.Item {
	out := make([]Ledger.Item, 0, len(items))
	for _, item := range items {
		out = append(out, Ledger.Item{Quantity: item.Quantity, UnitPrice: item.UnitPrice})
	}
	return out
}

func validDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// GetVendorTransactions retrieves all transactions for a specific vendor
func (c *VendorTransactionController) GetVendorTransactions(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID
	vendorID, err := strconv.Atoi(ctx.Params("vendor_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vendor ID"})
	}

	var vendor Models.Vendor
	if result := c.DB.Where("user_id = ?", userID).First(&vendor, vendorID); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor not found"})
	}

	var transactions []Models.VendorTransaction
	result := c.DB.Where("vendor_id = ?", vendor.ID).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("item_order ASC")
		}).
		Order("date DESC").Find(&transactions)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve transactions"})
	}

	return ctx.JSON(transactions)
}

// GetTransaction retrieves a single vendor transaction by ID
func (c *VendorTransactionController) GetTransaction(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var transaction Models.VendorTransaction
	result := c.DB.Where("user_id = ?", userID).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("item_order ASC")
		}).
		First(&transaction, id)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}

	return ctx.JSON(transaction)
}

// CreateTransaction creates a purchase for a vendor. The material amount is
// the item sum unless the request carries an explicit override; the total adds
// the transport charge.
func (c *VendorTransactionController) CreateTransaction(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID
	vendorID, err := strconv.Atoi(ctx.Params("vendor_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vendor ID"})
	}

	var vendor Models.Vendor
	if result := c.DB.Where("user_id = ?", userID).First(&vendor, vendorID); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor not found"})
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
	transport := 0.0
	if input.TransportCharge != nil {
		transport = *input.TransportCharge
	}

	transaction := Models.VendorTransaction{
		UserID:          userID,
		VendorID:        vendor.ID,
		Date:            input.Date,
		MaterialAmount:  material,
		TransportCharge: transport,
		TotalAmount:     Ledger.VendorTotal(material, transport),
	}

	tx := c.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Transaction error"})
	}

	if err := tx.Create(&transaction).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create transaction"})
	}
	if err := createItems(tx, Models.ParentVendorTransaction, transaction.ID, input.Items); err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create transaction items"})
	}
	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to commit transaction"})
	}

	Models.MarkSummaryDirty(c.DB, userID, transaction.Date)

	c.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_order ASC")
	}).First(&transaction, transaction.ID)

	return ctx.Status(fiber.StatusCreated).JSON(transaction)
}

// UpdateTransaction applies a partial update. Totals are recomputed only when
// the patch touches items, the material amount or the transport charge; a
// date-only patch keeps the stored amounts.
func (c *VendorTransactionController) UpdateTransaction(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var transaction Models.VendorTransaction
	if result := c.DB.Where("user_id = ?", userID).First(&transaction, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}

	var input struct {
		Date            string                `json:"date"`
		Items           *[]Models.ItemRequest `json:"items"`
		MaterialAmount  *float64              `json:"material_amount"`
		TransportCharge *float64              `json:"transport_charge"`
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

	recompute := input.Items != nil || input.MaterialAmount != nil || input.TransportCharge != nil
	if input.Items != nil {
		if err := tx.Where("parent_type = ? AND parent_id = ?", Models.ParentVendorTransaction, transaction.ID).
			Delete(&Models.TransactionItem{}).Error; err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to replace transaction items"})
		}
		if err := createItems(tx, Models.ParentVendorTransaction, transaction.ID, *input.Items); err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create transaction items"})
		}
		transaction.MaterialAmount = Ledger.MaterialAmount(ledgerItems(*input.Items), input.MaterialAmount)
	} else if input.MaterialAmount != nil {
		transaction.MaterialAmount = *input.MaterialAmount
	}
	if input.TransportCharge != nil {
		transaction.TransportCharge = *input.TransportCharge
	}
	if recompute {
		transaction.TotalAmount = Ledger.VendorTotal(transaction.MaterialAmount, transaction.TransportCharge)
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

	c.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_order ASC")
	}).First(&transaction, transaction.ID)

	return ctx.JSON(transaction)
}

// DeleteTransaction deletes a vendor transaction and its items
func (c *VendorTransactionController) DeleteTransaction(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var transaction Models.VendorTransaction
	if result := c.DB.Where("user_id = ?", userID).First(&transaction, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}

	tx := c.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Transaction error"})
	}
	if err := tx.Where("parent_type = ? AND parent_id = ?", Models.ParentVendorTransaction, transaction.ID).
		Delete(&Models.TransactionItem{}).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete transaction items"})
	}
	if err := tx.Delete(&transaction).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete transaction"})
	}
	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to commit transaction"})
	}

	Models.MarkSummaryDirty(c.DB, userID, transaction.Date)

	return ctx.JSON(fiber.Map{"message": "Transaction deleted successfully"})
}

// createItems inserts line items in request order, skipping fully empty rows.
func createItems(tx *gorm.DB, parentType string, parentID uint, items []Models.ItemRequest) error {
	for i, item := range items {
		if item.Name == "" && item.Quantity == 0 && item.UnitPrice == 0 {
			continue
		}
		row := Models.TransactionItem{
			ParentID:   parentID,
			ParentType: parentType,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			ItemOrder:  i + 1,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
