// Package Ledger holds the pure bookkeeping arithmetic: transaction totals,
// payment aggregation, outstanding balances and monthly summary compilation.
// Everything here operates on plain values so it can be exercised without a
// database.
package Ledger

import (
	"math"
)

// Item is a transaction line item as seen by the totals calculator.
type Item struct {
	Quantity  float64
	UnitPrice float64
}

// MaterialAmount returns the material cost of a transaction. An explicit
// override wins regardless of the item list; otherwise it is the sum of
// quantity times unit price over all items. An empty list with no override
// yields zero.
func MaterialAmount(items []Item, override *float64) float64 {
	if override != nil {
		return sanitize(*override)
	}
	var total float64
	for _, item := range items {
		total += sanitize(item.Quantity) * sanitize(item.UnitPrice)
	}
	return total
}

// VendorTotal is the full amount owed for a vendor transaction.
func VendorTotal(material, transport float64) float64 {
	return sanitize(material) + sanitize(transport)
}

// CustomerTotal is the full amount due for a customer transaction. Sales carry
// no surcharge, so the total is the material amount alone.
func CustomerTotal(material float64) float64 {
	return sanitize(material)
}

// sanitize coerces non-finite input to zero so malformed values never
// propagate into stored totals.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
