package Ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaterialAmount(t *testing.T) {
	override := 125.0

	tests := []struct {
		name     string
		items    []Item
		override *float64
		want     float64
	}{
		{
			name:  "sums quantity times unit price",
			items: []Item{{Quantity: 10, UnitPrice: 5}, {Quantity: 2, UnitPrice: 7.5}},
			want:  65,
		},
		{
			name: "empty item list is zero",
			want: 0,
		},
		{
			name:     "override wins regardless of items",
			items:    []Item{{Quantity: 10, UnitPrice: 5}},
			override: &override,
			want:     125,
		},
		{
			name:  "non-finite inputs are coerced to zero",
			items: []Item{{Quantity: math.NaN(), UnitPrice: 5}, {Quantity: 3, UnitPrice: math.Inf(1)}, {Quantity: 2, UnitPrice: 4}},
			want:  8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaterialAmount(tt.items, tt.override))
		})
	}
}

func TestVendorTotal(t *testing.T) {
	// items [{qty:10, price:5}], transport charge 20 => material 50, total 70
	material := MaterialAmount([]Item{{Quantity: 10, UnitPrice: 5}}, nil)
	assert.Equal(t, 50.0, material)
	assert.Equal(t, 70.0, VendorTotal(material, 20))

	// transport charge defaults to 0
	assert.Equal(t, 50.0, VendorTotal(material, 0))
}

func TestCustomerTotal(t *testing.T) {
	assert.Equal(t, 50.0, CustomerTotal(50))
	assert.Equal(t, 0.0, CustomerTotal(math.NaN()))
}
