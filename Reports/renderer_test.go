package Reports

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Munshi/Ledger"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "0.00"},
		{5, "5.00"},
		{999.9, "999.90"},
		{1000, "1,000.00"},
		{1234567.89, "1,234,567.89"},
		{-4500, "-4,500.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.amount))
	}
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "March", MonthName(3))
	assert.Equal(t, "December", MonthName(12))
	assert.Equal(t, "", MonthName(0))
	assert.Equal(t, "", MonthName(13))
}

func TestRenderMonthly(t *testing.T) {
	data := MonthlyReportData{
		Year:                   2025,
		Month:                  3,
		Currency:               "$",
		MonthlyIncome:          200,
		MonthlyExpenses:        300,
		NetBalance:             -100,
		VendorTransactionCount: 1,
		CustomerPaymentCount:   1,
		TopVendors: []Ledger.TopEntry{
			{EntityID: 1, Name: "Steel Traders", Amount: 300},
		},
	}

	html, err := Render(ReportTypeMonthly, data)
	require.NoError(t, err)

	assert.Contains(t, html, "Monthly Report - March 2025")
	assert.Contains(t, html, "$200.00")
	assert.Contains(t, html, "$300.00")
	assert.Contains(t, html, "$-100.00")
	assert.Contains(t, html, "Steel Traders")
	// no customers paid this month, so the customer leaderboard is omitted
	assert.NotContains(t, html, "Top Customers")
}

func TestRenderEscapesNames(t *testing.T) {
	data := MonthlyReportData{
		Year: 2025, Month: 1, Currency: "$",
		TopVendors: []Ledger.TopEntry{{Name: "<script>alert(1)</script>", Amount: 10}},
	}

	html, err := Render(ReportTypeMonthly, data)
	require.NoError(t, err)
	assert.False(t, strings.Contains(html, "<script>alert(1)</script>"))
}

func TestRenderUnknownType(t *testing.T) {
	_, err := Render("yearly", MonthlyReportData{})
	assert.Error(t, err)
}
