package Reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// BuildMonthlyWorkbook writes the monthly summary into a spreadsheet with one
// sheet of headline figures and the two leaderboards below them.
func BuildMonthlyWorkbook(data MonthlyReportData) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	monthName := data.MonthName
	if monthName == "" {
		monthName = MonthName(data.Month)
	}

	rows := [][]interface{}{
		{fmt.Sprintf("Monthly Report - %s %d", monthName, data.Year)},
		{},
		{"Income", data.MonthlyIncome},
		{"Expenses", data.MonthlyExpenses},
		{"Net Balance", data.NetBalance},
		{},
		{"Purchases", data.VendorTransactionCount},
		{"Sales", data.CustomerTransactionCount},
		{"Payments Made", data.VendorPaymentCount},
		{"Payments Received", data.CustomerPaymentCount},
		{},
		{"Top Vendors"},
		{"Rank", "Name", "Amount"},
	}
	for i, entry := range data.TopVendors {
		rows = append(rows, []interface{}{i + 1, entry.Name, entry.Amount})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Top Customers"}, []interface{}{"Rank", "Name", "Amount"})
	for i, entry := range data.TopCustomers {
		rows = append(rows, []interface{}{i + 1, entry.Name, entry.Amount})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}
