package Ledger

import (
	"fmt"
	"sort"
	"time"
)

// EntityLedger is one vendor's or customer's activity as loaded for summary
// compilation: transaction totals and payments, each with their dates.
type EntityLedger struct {
	EntityID     uint
	Name         string
	Transactions []DatedAmount
	Payments     []DatedAmount
}

// CompileInput is everything the monthly compiler needs, pre-loaded from the
// store by the caller.
type CompileInput struct {
	Year  int
	Month int

	Vendors        []EntityLedger
	Customers      []EntityLedger
	VendorPayments []DatedAmount
}

// TopEntry is one row of a monthly leaderboard.
type TopEntry struct {
	EntityID uint    `json:"entity_id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
}

// Summary is the compiled result for one calendar month.
type Summary struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	MonthlyIncome   float64 `json:"monthly_income"`
	MonthlyExpenses float64 `json:"monthly_expenses"`
	NetBalance      float64 `json:"net_balance"`

	VendorTransactionCount   int `json:"vendor_transaction_count"`
	CustomerTransactionCount int `json:"customer_transaction_count"`
	VendorPaymentCount       int `json:"vendor_payment_count"`
	CustomerPaymentCount     int `json:"customer_payment_count"`

	TopVendors   []TopEntry `json:"top_vendors"`
	TopCustomers []TopEntry `json:"top_customers"`
}

// TopN is how many entities each monthly leaderboard keeps.
const TopN = 3

// MonthWindow returns the inclusive ISO date range covering a calendar month.
func MonthWindow(year, month int) (start, end string) {
	start = fmt.Sprintf("%04d-%02d-01", year, month)
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	end = fmt.Sprintf("%04d-%02d-%02d", year, month, lastDay)
	return start, end
}

// InWindow reports whether an ISO date falls inside the inclusive range.
func InWindow(date, start, end string) bool {
	return date >= start && date <= end
}

// Compile builds the summary for one month from a full scan of the input.
// It is deterministic and rebuilds the whole document every time, so
// recomputation is idempotent. Expenses come from vendor transaction dates;
// income comes from customer payment dates, not the dates of the sales they
// pay down.
func Compile(input CompileInput) Summary {
	start, end := MonthWindow(input.Year, input.Month)

	summary := Summary{
		Year:         input.Year,
		Month:        input.Month,
		TopVendors:   []TopEntry{},
		TopCustomers: []TopEntry{},
	}

	vendorTotals := make([]TopEntry, 0, len(input.Vendors))
	for _, vendor := range input.Vendors {
		var subtotal float64
		for _, tx := range vendor.Transactions {
			if !InWindow(tx.Date, start, end) {
				continue
			}
			summary.MonthlyExpenses += tx.Amount
			summary.VendorTransactionCount++
			subtotal += tx.Amount
		}
		if subtotal > 0 {
			vendorTotals = append(vendorTotals, TopEntry{EntityID: vendor.EntityID, Name: vendor.Name, Amount: subtotal})
		}
	}

	customerTotals := make([]TopEntry, 0, len(input.Customers))
	for _, customer := range input.Customers {
		for _, tx := range customer.Transactions {
			if InWindow(tx.Date, start, end) {
				summary.CustomerTransactionCount++
			}
		}
		var subtotal float64
		for _, payment := range customer.Payments {
			if !InWindow(payment.Date, start, end) {
				continue
			}
			summary.MonthlyIncome += payment.Amount
			summary.CustomerPaymentCount++
			subtotal += payment.Amount
		}
		if subtotal > 0 {
			customerTotals = append(customerTotals, TopEntry{EntityID: customer.EntityID, Name: customer.Name, Amount: subtotal})
		}
	}

	for _, payment := range input.VendorPayments {
		if InWindow(payment.Date, start, end) {
			summary.VendorPaymentCount++
		}
	}

	summary.NetBalance = summary.MonthlyIncome - summary.MonthlyExpenses
	summary.TopVendors = topEntries(vendorTotals)
	summary.TopCustomers = topEntries(customerTotals)
	return summary
}

// topEntries keeps the TopN largest amounts. The sort is stable, so ties keep
// the original iteration order.
func topEntries(entries []TopEntry) []TopEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Amount > entries[j].Amount
	})
	if len(entries) > TopN {
		entries = entries[:TopN]
	}
	return entries
}
