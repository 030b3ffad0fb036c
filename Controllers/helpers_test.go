package Controllers

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"Munshi/Models"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func testUser(t *testing.T, db *gorm.DB) Models.User {
	t.Helper()
	user := Models.User{Name: "Asha", Email: "asha@example.com", Password: []byte("x"), Permission: 1, Currency: "$"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// withUser stands in for the auth middleware in handler tests.
func withUser(user Models.User, handler fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", user)
		return handler(c)
	}
}
