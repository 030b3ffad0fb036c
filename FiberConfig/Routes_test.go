package FiberConfig

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"Munshi/Models"
	"Munshi/middleware"
)

func routedApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	// Named in-memory database so every pooled connection sees the same data
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&Models.User{}, &Models.Vendor{}, &Models.Customer{},
		&Models.VendorTransaction{}, &Models.CustomerTransaction{},
		&Models.TransactionItem{}, &Models.VendorPayment{},
		&Models.CustomerPayment{}, &Models.MonthlySummary{},
	))
	Models.DB = db

	app := fiber.New()
	SetupRoutes(app, db)
	return app, db
}

func loginCookie(t *testing.T, userID uint) *http.Cookie {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Issuer:    strconv.Itoa(int(userID)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(middleware.SecretKey()))
	require.NoError(t, err)
	return &http.Cookie{Name: "jwt", Value: token}
}

// Recording a payment against a sale through the routed path must reach the
// handler and report the reduced outstanding amount.
func TestCreateCustomerPaymentRoute(t *testing.T) {
	app, db := routedApp(t)

	user := Models.User{Name: "Asha", Email: "asha@example.com", Password: []byte("x"), Permission: 1, Currency: "$"}
	require.NoError(t, db.Create(&user).Error)
	customer := Models.Customer{UserID: user.ID, Name: "Acme", NameLower: "acme"}
	require.NoError(t, db.Create(&customer).Error)
	sale := Models.CustomerTransaction{
		UserID:         user.ID,
		CustomerID:     customer.ID,
		Date:           "2025-03-01",
		MaterialAmount: 1000,
		TotalAmount:    1000,
	}
	require.NoError(t, db.Create(&sale).Error)

	body := strings.NewReader(`{"date":"2025-03-12","amount":400}`)
	req := httptest.NewRequest(fiber.MethodPost, fmt.Sprintf("/api/customer-transactions/%d/payments", sale.ID), body)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(loginCookie(t, user.ID))

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out struct {
		OutstandingAmount float64 `json:"outstanding_amount"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 600.0, out.OutstandingAmount)

	var count int64
	require.NoError(t, db.Model(&Models.CustomerPayment{}).Where("transaction_id = ?", sale.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
