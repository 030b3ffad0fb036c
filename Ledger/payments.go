package Ledger

// DatedAmount is a payment or transaction total paired with its ISO date
// (YYYY-MM-DD). Dates compare lexicographically.
type DatedAmount struct {
	Date   string
	Amount float64
}

// Sum totals a list of amounts.
func Sum(amounts []DatedAmount) float64 {
	var total float64
	for _, a := range amounts {
		total += a.Amount
	}
	return total
}

// LatestDate returns the most recent date in the list, or "" for an empty
// list.
func LatestDate(amounts []DatedAmount) string {
	latest := ""
	for _, a := range amounts {
		if a.Date > latest {
			latest = a.Date
		}
	}
	return latest
}

// Outstanding is the unpaid remainder of a single transaction. It may be
// negative when the transaction is overpaid; clamping happens only at the
// portfolio level.
func Outstanding(total float64, payments []DatedAmount) float64 {
	return total - Sum(payments)
}
