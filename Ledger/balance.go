package Ledger

// EntityBalance is one vendor's or customer's outstanding balance.
type EntityBalance struct {
	EntityID uint    `json:"id"`
	Name     string  `json:"name"`
	Balance  float64 `json:"balance"`
}

// PortfolioOutstanding rolls a set of entity balances up into one figure.
// Overpaid entities contribute zero rather than offsetting what others owe,
// so the portfolio total is never negative. Single-entity queries report the
// unclamped balance; the clamp applies only here.
func PortfolioOutstanding(balances []EntityBalance) float64 {
	var total float64
	for _, b := range balances {
		if b.Balance > 0 {
			total += b.Balance
		}
	}
	return total
}
