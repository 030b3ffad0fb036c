// Package Reports renders aggregated bookkeeping data into exportable
// documents: an HTML report for sharing and an Excel workbook for
// spreadsheet users.
package Reports

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"Munshi/Ledger"
)

const ReportTypeMonthly = "monthly"

// MonthlyReportData is everything the monthly report template needs,
// pre-aggregated by the summary compiler.
type MonthlyReportData struct {
	Year      int
	Month     int
	MonthName string
	Currency  string

	MonthlyIncome   float64
	MonthlyExpenses float64
	NetBalance      float64

	VendorTransactionCount   int
	CustomerTransactionCount int
	VendorPaymentCount       int
	CustomerPaymentCount     int

	TopVendors   []Ledger.TopEntry
	TopCustomers []Ledger.TopEntry
}

// FormatAmount renders an amount with thousands separators and two decimals,
// e.g. 1234567.5 -> "1,234,567.50".
func FormatAmount(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := strconv.FormatFloat(amount, 'f', 2, 64)
	parts := strings.SplitN(s, ".", 2)

	integer := parts[0]
	var grouped strings.Builder
	for i, digit := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	out := grouped.String() + "." + parts[1]
	if negative {
		out = "-" + out
	}
	return out
}

// MonthName returns the English month name for a 1-12 month number.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return time.Month(month).String()
}

var monthlyTemplate = template.Must(template.New("monthly").Funcs(template.FuncMap{
	"money": func(currency string, amount float64) string {
		return currency + FormatAmount(amount)
	},
	"add": func(a, b int) int { return a + b },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Monthly Report - {{.MonthName}} {{.Year}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 24px; color: #222; }
h1 { font-size: 20px; }
table { border-collapse: collapse; width: 100%; margin-bottom: 24px; }
th, td { border: 1px solid #ccc; padding: 8px; text-align: left; }
th { background: #f2f2f2; }
.amount { text-align: right; }
.negative { color: #c0392b; }
</style>
</head>
<body>
<h1>Monthly Report - {{.MonthName}} {{.Year}}</h1>
<table>
<tr><th>Income</th><td class="amount">{{money .Currency .MonthlyIncome}}</td></tr>
<tr><th>Expenses</th><td class="amount">{{money .Currency .MonthlyExpenses}}</td></tr>
<tr><th>Net Balance</th><td class="amount{{if lt .NetBalance 0.0}} negative{{end}}">{{money .Currency .NetBalance}}</td></tr>
</table>
<table>
<tr><th>Purchases</th><th>Sales</th><th>Payments Made</th><th>Payments Received</th></tr>
<tr>
<td>{{.VendorTransactionCount}}</td>
<td>{{.CustomerTransactionCount}}</td>
<td>{{.VendorPaymentCount}}</td>
<td>{{.CustomerPaymentCount}}</td>
</tr>
</table>
{{if .TopVendors}}
<h2>Top Vendors</h2>
<table>
<tr><th>#</th><th>Vendor</th><th>Amount</th></tr>
{{range $i, $entry := .TopVendors}}
<tr><td>{{add $i 1}}</td><td>{{$entry.Name}}</td><td class="amount">{{money $.Currency $entry.Amount}}</td></tr>
{{end}}
</table>
{{end}}
{{if .TopCustomers}}
<h2>Top Customers</h2>
<table>
<tr><th>#</th><th>Customer</th><th>Amount</th></tr>
{{range $i, $entry := .TopCustomers}}
<tr><td>{{add $i 1}}</td><td>{{$entry.Name}}</td><td class="amount">{{money $.Currency $entry.Amount}}</td></tr>
{{end}}
</table>
{{end}}
</body>
</html>
`))

// Render fills the template for the given report type and returns the HTML
// document as a string.
func Render(reportType string, data MonthlyReportData) (string, error) {
	switch reportType {
	case ReportTypeMonthly:
		if data.MonthName == "" {
			data.MonthName = MonthName(data.Month)
		}
		var out strings.Builder
		if err := monthlyTemplate.Execute(&out, data); err != nil {
			return "", err
		}
		return out.String(), nil
	default:
		return "", fmt.Errorf("unknown report type: %s", reportType)
	}
}
