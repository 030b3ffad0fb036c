package Ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthWindow(t *testing.T) {
	tests := []struct {
		year, month int
		start, end  string
	}{
		{2025, 3, "2025-03-01", "2025-03-31"},
		{2025, 4, "2025-04-01", "2025-04-30"},
		{2024, 2, "2024-02-01", "2024-02-29"},
		{2025, 2, "2025-02-01", "2025-02-28"},
		{2025, 12, "2025-12-01", "2025-12-31"},
	}

	for _, tt := range tests {
		start, end := MonthWindow(tt.year, tt.month)
		assert.Equal(t, tt.start, start)
		assert.Equal(t, tt.end, end)
	}
}

func TestInWindow(t *testing.T) {
	start, end := MonthWindow(2025, 3)
	assert.True(t, InWindow("2025-03-01", start, end))
	assert.True(t, InWindow("2025-03-31", start, end))
	assert.False(t, InWindow("2025-02-28", start, end))
	assert.False(t, InWindow("2025-04-01", start, end))
}

func TestCompile(t *testing.T) {
	input := CompileInput{
		Year:  2025,
		Month: 3,
		Vendors: []EntityLedger{
			{
				EntityID: 1,
				Name:     "Steel Traders",
				Transactions: []DatedAmount{
					{Date: "2025-03-05", Amount: 300},
					// outside the window, must not count
					{Date: "2025-02-20", Amount: 900},
				},
			},
		},
		Customers: []EntityLedger{
			{
				EntityID: 7,
				Name:     "Sharma Builders",
				Transactions: []DatedAmount{
					{Date: "2025-03-02", Amount: 1000},
				},
				Payments: []DatedAmount{
					{Date: "2025-03-12", Amount: 200},
					// payment against a March sale but dated April: income is
					// recognized by payment date
					{Date: "2025-04-02", Amount: 500},
				},
			},
		},
		VendorPayments: []DatedAmount{
			{Date: "2025-03-18", Amount: 150},
			{Date: "2025-05-01", Amount: 80},
		},
	}

	summary := Compile(input)

	assert.Equal(t, 300.0, summary.MonthlyExpenses)
	assert.Equal(t, 200.0, summary.MonthlyIncome)
	assert.Equal(t, -100.0, summary.NetBalance)
	assert.Equal(t, 1, summary.VendorTransactionCount)
	assert.Equal(t, 1, summary.CustomerTransactionCount)
	assert.Equal(t, 1, summary.VendorPaymentCount)
	assert.Equal(t, 1, summary.CustomerPaymentCount)

	require.Len(t, summary.TopVendors, 1)
	assert.Equal(t, TopEntry{EntityID: 1, Name: "Steel Traders", Amount: 300}, summary.TopVendors[0])
	require.Len(t, summary.TopCustomers, 1)
	assert.Equal(t, TopEntry{EntityID: 7, Name: "Sharma Builders", Amount: 200}, summary.TopCustomers[0])
}

func TestCompileEmptyMonth(t *testing.T) {
	summary := Compile(CompileInput{Year: 2025, Month: 6})

	assert.Zero(t, summary.MonthlyIncome)
	assert.Zero(t, summary.MonthlyExpenses)
	assert.Zero(t, summary.NetBalance)
	assert.Zero(t, summary.VendorTransactionCount)
	assert.Zero(t, summary.CustomerTransactionCount)
	assert.Zero(t, summary.VendorPaymentCount)
	assert.Zero(t, summary.CustomerPaymentCount)
	assert.Empty(t, summary.TopVendors)
	assert.Empty(t, summary.TopCustomers)
}

func TestCompileIsIdempotent(t *testing.T) {
	input := CompileInput{
		Year:  2025,
		Month: 3,
		Vendors: []EntityLedger{
			{EntityID: 1, Name: "A", Transactions: []DatedAmount{{Date: "2025-03-01", Amount: 10}}},
			{EntityID: 2, Name: "B", Transactions: []DatedAmount{{Date: "2025-03-02", Amount: 30}}},
		},
	}

	first := Compile(input)
	second := Compile(input)
	assert.Equal(t, first, second)
}

func TestCompileTopThreeLeaderboard(t *testing.T) {
	vendors := []EntityLedger{
		{EntityID: 1, Name: "A", Transactions: []DatedAmount{{Date: "2025-03-01", Amount: 100}}},
		{EntityID: 2, Name: "B", Transactions: []DatedAmount{{Date: "2025-03-01", Amount: 400}}},
		{EntityID: 3, Name: "C", Transactions: []DatedAmount{{Date: "2025-03-01", Amount: 100}}},
		{EntityID: 4, Name: "D", Transactions: []DatedAmount{{Date: "2025-03-01", Amount: 250}}},
		{EntityID: 5, Name: "E", Transactions: []DatedAmount{{Date: "2025-02-01", Amount: 999}}},
	}

	summary := Compile(CompileInput{Year: 2025, Month: 3, Vendors: vendors})

	require.Len(t, summary.TopVendors, 3)
	assert.Equal(t, uint(2), summary.TopVendors[0].EntityID)
	assert.Equal(t, uint(4), summary.TopVendors[1].EntityID)
	// A and C tie at 100; the stable sort keeps A first
	assert.Equal(t, uint(1), summary.TopVendors[2].EntityID)
}
