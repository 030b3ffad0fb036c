package Models

import (
	"fmt"
	"strconv"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MonthlySummary is a cached aggregation over one calendar month of
// transactions and payments. It is a materialized view: writes that touch the
// month flip Dirty, and reads recompute the row when it is missing or dirty.
type MonthlySummary struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"not null;uniqueIndex:idx_user_period"`
	Year   int  `json:"year" gorm:"not null"`
	Month  int  `json:"month" gorm:"not null"`
	// Period is "{year}_{month}", e.g. "2025_3"
	Period string `json:"period" gorm:"size:16;not null;uniqueIndex:idx_user_period"`

	MonthlyIncome   float64 `json:"monthly_income" gorm:"default:0"`
	MonthlyExpenses float64 `json:"monthly_expenses" gorm:"default:0"`
	NetBalance      float64 `json:"net_balance" gorm:"default:0"`

	VendorTransactionCount   int `json:"vendor_transaction_count" gorm:"default:0"`
	CustomerTransactionCount int `json:"customer_transaction_count" gorm:"default:0"`
	VendorPaymentCount       int `json:"vendor_payment_count" gorm:"default:0"`
	CustomerPaymentCount     int `json:"customer_payment_count" gorm:"default:0"`

	TopVendors   datatypes.JSON `json:"top_vendors"`
	TopCustomers datatypes.JSON `json:"top_customers"`

	Dirty bool `json:"dirty" gorm:"default:false"`
}

// PeriodKey formats the summary document key for a year and month.
func PeriodKey(year, month int) string {
	return fmt.Sprintf("%d_%d", year, month)
}

// MarkSummaryDirty flags the cached summary covering the given ISO date so the
// next read recomputes it. A missing row needs no flag since missing rows are
// recomputed anyway.
func MarkSummaryDirty(db *gorm.DB, userID uint, date string) {
	if len(date) < 7 {
		return
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return
	}
	month, err := strconv.Atoi(date[5:7])
	if err != nil {
		return
	}
	db.Model(&MonthlySummary{}).
		Where("user_id = ? AND period = ?", userID, PeriodKey(year, month)).
		Update("dirty", true)
}

// MarkAllSummariesDirty flags every cached summary for a user. Used when a
// cascade delete removes activity spread over an unknown set of months.
func MarkAllSummariesDirty(db *gorm.DB, userID uint) {
	db.Model(&MonthlySummary{}).
		Where("user_id = ?", userID).
		Update("dirty", true)
}
