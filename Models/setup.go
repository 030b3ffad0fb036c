package Models

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the database configured through the DB_* environment
// variables and runs migrations. DB_DRIVER selects postgres, mysql or
// sqlite; sqlite is the default and needs no other configuration.
func Connect() {
	driver := os.Getenv("DB_DRIVER")

	var connection *gorm.DB
	var err error

	switch driver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))
		connection, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
			os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"), os.Getenv("DB_NAME"))
		connection, err = gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	default:
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "database.db"
		}
		connection, err = gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	}

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	DB = connection

	// 1. Base entities with no dependencies
	DB.AutoMigrate(
		&User{},
		&FCMToken{},
		&Vendor{},
		&Customer{},
	)

	// 2. Models referencing vendors/customers
	DB.AutoMigrate(
		&VendorTransaction{},
		&CustomerTransaction{},
		&VendorPayment{},
	)

	// 3. Models referencing transactions, plus the summary cache
	DB.AutoMigrate(
		&TransactionItem{},
		&CustomerPayment{},
		&MonthlySummary{},
	)
}
