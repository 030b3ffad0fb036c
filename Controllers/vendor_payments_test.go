package Controllers

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Munshi/Models"
)

func seedVendorPayments(t *testing.T) (*fiber.App, *Models.Vendor, Models.VendorPayment, Models.VendorPayment, *VendorPaymentController) {
	t.Helper()
	db := newTestDB(t)
	user := testUser(t, db)

	vendor := Models.Vendor{UserID: user.ID, Name: "Steelworks", NameLower: "steelworks", LastPaymentAmount: 250}
	require.NoError(t, db.Create(&vendor).Error)

	earlier := Models.VendorPayment{UserID: user.ID, VendorID: vendor.ID, VendorName: vendor.Name, Date: "2025-03-01", Amount: 100}
	require.NoError(t, db.Create(&earlier).Error)
	latest := Models.VendorPayment{UserID: user.ID, VendorID: vendor.ID, VendorName: vendor.Name, Date: "2025-03-20", Amount: 250}
	require.NoError(t, db.Create(&latest).Error)

	controller := NewVendorPaymentController(db)
	app := fiber.New()
	app.Put("/vendor-payments/:id", withUser(user, controller.UpdatePayment))
	app.Delete("/vendor-payments/:id", withUser(user, controller.DeletePayment))
	return app, &vendor, earlier, latest, controller
}

// Deleting the newest payment must roll last_payment_amount back to the
// previous one.
func TestDeletePaymentRefreshesLastPaymentAmount(t *testing.T) {
	app, vendor, _, latest, controller := seedVendorPayments(t)

	req := httptest.NewRequest(fiber.MethodDelete, fmt.Sprintf("/vendor-payments/%d", latest.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reloaded Models.Vendor
	require.NoError(t, controller.DB.First(&reloaded, vendor.ID).Error)
	assert.Equal(t, 100.0, reloaded.LastPaymentAmount)
}

func TestUpdatePaymentRefreshesLastPaymentAmount(t *testing.T) {
	app, vendor, _, latest, controller := seedVendorPayments(t)

	body := strings.NewReader(`{"date":"2025-03-20","amount":300}`)
	req := httptest.NewRequest(fiber.MethodPut, fmt.Sprintf("/vendor-payments/%d", latest.ID), body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reloaded Models.Vendor
	require.NoError(t, controller.DB.First(&reloaded, vendor.ID).Error)
	assert.Equal(t, 300.0, reloaded.LastPaymentAmount)
}
