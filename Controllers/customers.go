package Controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Munshi/Models"
)

// CustomerController handles customer-related API endpoints
type CustomerController struct {
	DB *gorm.DB
}

// NewCustomerController creates a new CustomerController
func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// GetCustomers retrieves the caller's customers with prefix search and
// pagination.
// GET /api/customers?search=&page=1&limit=20
func (c *CustomerController) GetCustomers(ctx *fiber.Ctx) error {
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

	query := c.DB.Model(&Models.Customer{}).Where("user_id = ?", userID)
	if search := strings.ToLower(ctx.Query("search")); search != "" {
		query = query.Where("name_lower LIKE ?", search+"%")
	}

	var total int64
	query.Count(&total)

	var customers []Models.Customer
	result := query.Order("name_lower ASC").Offset(offset).Limit(limit).Find(&customers)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve customers"})
	}

	return ctx.JSON(fiber.Map{
		"data": customers,
		"pagination": fiber.Map{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

// GetCustomer retrieves a single customer by ID
func (c *CustomerController) GetCustomer(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var customer Models.Customer
	if result := c.DB.Where("user_id = ?", userID).First(&customer, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	return ctx.JSON(customer)
}

// CreateCustomer creates a new customer
func (c *CustomerController) CreateCustomer(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID

	var input Models.EntityRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Customer name is required"})
	}

	customer := Models.Customer{
		UserID:    userID,
		Name:      input.Name,
		NameLower: strings.ToLower(input.Name),
		Phone:     input.Phone,
		Address:   input.Address,
	}

	if result := c.DB.Create(&customer); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create customer"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(customer)
}

// UpdateCustomer updates an existing customer
func (c *CustomerController) UpdateCustomer(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var customer Models.Customer
	if result := c.DB.Where("user_id = ?", userID).First(&customer, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	var input Models.EntityRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Customer name is required"})
	}

	customer.Name = input.Name
	customer.NameLower = strings.ToLower(input.Name)
	customer.Phone = input.Phone
	customer.Address = input.Address

	if result := c.DB.Save(&customer); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update customer"})
	}

	return ctx.JSON(customer)
}

// DeleteCustomer deletes a customer and cascades to its transactions, items
// and payments.
func (c *CustomerController) DeleteCustomer(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var customer Models.Customer
	if result := c.DB.Where("user_id = ?", userID).First(&customer, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	tx := c.DB.Begin()
	if tx.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Transaction error"})
	}

	var transactionIDs []uint
	tx.Model(&Models.CustomerTransaction{}).Where("customer_id = ?", customer.ID).Pluck("id", &transactionIDs)

	if len(transactionIDs) > 0 {
		if err := tx.Where("parent_type = ? AND parent_id IN ?", Models.ParentCustomerTransaction, transactionIDs).
			Delete(&Models.TransactionItem{}).Error; err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete transaction items"})
		}
		if err := tx.Where("transaction_id IN ?", transactionIDs).Delete(&Models.CustomerPayment{}).Error; err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete payments"})
		}
	}
	if err := tx.Where("customer_id = ?", customer.ID).Delete(&Models.CustomerTransaction{}).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete transactions"})
	}
	if err := tx.Delete(&customer).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete customer"})
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to commit transaction"})
	}

	// The removed activity may span any number of months
	Models.MarkAllSummariesDirty(c.DB, userID)

	return ctx.JSON(fiber.Map{"message": "Customer deleted successfully"})
}

// GetCustomerBalance reports the customer's outstanding balance: the sum of
// per-transaction outstanding amounts, unclamped.
func (c *CustomerController) GetCustomerBalance(ctx *fiber.Ctx) error {
	userID := CurrentUser(ctx).ID
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var customer Models.Customer
	if result := c.DB.Where("user_id = ?", userID).First(&customer, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	balance, err := customerOutstanding(c.DB, userID, customer.ID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute balance"})
	}

	return ctx.JSON(fiber.Map{
		"customer_id": customer.ID,
		"name":        customer.Name,
		"balance":     balance,
	})
}

// customerOutstanding sums transaction totals and subtracts the payments
// recorded against those transactions. Any read failure aborts the whole
// reduction.
func customerOutstanding(db *gorm.DB, userID, customerID uint) (float64, error) {
	var totals, payments float64

	err := db.Model(&Models.CustomerTransaction{}).
		Where("user_id = ? AND customer_id = ?", userID, customerID).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&totals).Error
	if err != nil {
		return 0, err
	}

	err = db.Model(&Models.CustomerPayment{}).
		Where("transaction_id IN (?)",
			db.Model(&Models.CustomerTransaction{}).Select("id").
				Where("user_id = ? AND customer_id = ?", userID, customerID)).
		Select("COALESCE(SUM(amount), 0)").Scan(&payments).Error
	if err != nil {
		return 0, err
	}

	return totals - payments, nil
}
