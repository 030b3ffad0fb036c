package Ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutstanding(t *testing.T) {
	payments := []DatedAmount{
		{Date: "2025-03-01", Amount: 400},
		{Date: "2025-03-10", Amount: 350},
	}

	// total 1000 with payments 400 + 350 leaves 250 outstanding
	assert.Equal(t, 250.0, Outstanding(1000, payments))

	// adding a payment of amount a decreases outstanding by exactly a
	more := append(payments, DatedAmount{Date: "2025-03-15", Amount: 100})
	assert.Equal(t, 150.0, Outstanding(1000, more))

	// overpayment shows through as a negative balance at transaction level
	assert.Equal(t, -50.0, Outstanding(700, more))
}

func TestLatestDate(t *testing.T) {
	assert.Equal(t, "", LatestDate(nil))
	assert.Equal(t, "2025-03-10", LatestDate([]DatedAmount{
		{Date: "2025-03-10", Amount: 1},
		{Date: "2025-01-22", Amount: 2},
		{Date: "2024-12-31", Amount: 3},
	}))
}

func TestPortfolioOutstanding(t *testing.T) {
	tests := []struct {
		name     string
		balances []EntityBalance
		want     float64
	}{
		{
			name: "overpaid entities contribute zero",
			balances: []EntityBalance{
				{EntityID: 1, Name: "V1", Balance: 500},
				{EntityID: 2, Name: "V2", Balance: -100},
			},
			want: 500,
		},
		{
			name: "all positive balances sum",
			balances: []EntityBalance{
				{Balance: 100}, {Balance: 250.5}, {Balance: 0},
			},
			want: 350.5,
		},
		{
			name: "empty portfolio is zero",
			want: 0,
		},
		{
			name:     "all overpaid is zero, never negative",
			balances: []EntityBalance{{Balance: -10}, {Balance: -20}},
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PortfolioOutstanding(tt.balances)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}
