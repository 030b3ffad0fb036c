package Controllers

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Munshi/Models"
)

// A sale's payments can fall in months other than the sale itself. Deleting
// the sale must invalidate those months too, or their cached income goes
// stale.
func TestDeleteTransactionInvalidatesPaymentMonths(t *testing.T) {
	db := newTestDB(t)
	user := testUser(t, db)

	customer := Models.Customer{UserID: user.ID, Name: "Acme", NameLower: "acme"}
	require.NoError(t, db.Create(&customer).Error)

	sale := Models.CustomerTransaction{
		UserID:         user.ID,
		CustomerID:     customer.ID,
		Date:           "2025-03-10",
		MaterialAmount: 1000,
		TotalAmount:    1000,
	}
	require.NoError(t, db.Create(&sale).Error)
	payment := Models.CustomerPayment{
		UserID:        user.ID,
		TransactionID: sale.ID,
		Date:          "2025-04-05",
		Amount:        400,
	}
	require.NoError(t, db.Create(&payment).Error)

	april, err := RecomputeMonthlySummary(db, user.ID, 2025, 4)
	require.NoError(t, err)
	require.Equal(t, 400.0, april.MonthlyIncome)

	app := fiber.New()
	controller := NewCustomerTransactionController(db)
	app.Delete("/customer-transactions/:id", withUser(user, controller.DeleteTransaction))

	req := httptest.NewRequest(fiber.MethodDelete, fmt.Sprintf("/customer-transactions/%d", sale.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	april, err = LoadOrComputeSummary(db, user.ID, 2025, 4)
	require.NoError(t, err)
	assert.Equal(t, 0.0, april.MonthlyIncome)
	assert.Equal(t, 0, april.CustomerPaymentCount)

	march, err := LoadOrComputeSummary(db, user.ID, 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, march.CustomerTransactionCount)
}
