package Controllers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Munshi/Ledger"
	"Munshi/Models"
	"Munshi/Reports"
)

// ReportController turns cached summaries into downloadable reports
type ReportController struct {
	DB *gorm.DB
}

// NewReportController creates a new ReportController
func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

func reportData(summary Models.MonthlySummary, currency string) Reports.MonthlyReportData {
	var topVendors, topCustomers []Ledger.TopEntry
	json.Unmarshal(summary.TopVendors, &topVendors)
	json.Unmarshal(summary.TopCustomers, &topCustomers)

	return Reports.MonthlyReportData{
		Year:                     summary.Year,
		Month:                    summary.Month,
		MonthName:                Reports.MonthName(summary.Month),
		Currency:                 currency,
		MonthlyIncome:            summary.MonthlyIncome,
		MonthlyExpenses:          summary.MonthlyExpenses,
		NetBalance:               summary.NetBalance,
		VendorTransactionCount:   summary.VendorTransactionCount,
		CustomerTransactionCount: summary.CustomerTransactionCount,
		VendorPaymentCount:       summary.VendorPaymentCount,
		CustomerPaymentCount:     summary.CustomerPaymentCount,
		TopVendors:               topVendors,
		TopCustomers:             topCustomers,
	}
}

// MonthlyReport renders the month's report and returns it as a downloadable
// file. ?format=excel produces a workbook, anything else the HTML document.
// GET /api/reports/monthly/:year/:month
func (c *ReportController) MonthlyReport(ctx *fiber.Ctx) error {
	user := CurrentUser(ctx)

	year, month, err := parseYearMonth(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	summary, err := LoadOrComputeSummary(c.DB, user.ID, year, month)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute summary"})
	}

	data := reportData(summary, user.Currency)

	if ctx.Query("format") == "excel" {
		workbook, err := Reports.BuildMonthlyWorkbook(data)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build workbook"})
		}

		var buffer bytes.Buffer
		if err := workbook.Write(&buffer); err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write workbook"})
		}

		ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		ctx.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="report_%d_%02d.xlsx"`, year, month))
		return ctx.Send(buffer.Bytes())
	}

	html, err := Reports.Render(Reports.ReportTypeMonthly, data)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to render report"})
	}

	ctx.Set("Content-Type", "text/html; charset=utf-8")
	ctx.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="report_%d_%02d.html"`, year, month))
	return ctx.SendString(html)
}

// MonthlyReportPreview renders the report through the view engine for viewing
// in a browser rather than downloading.
// GET /reports/monthly/:year/:month/preview
func (c *ReportController) MonthlyReportPreview(ctx *fiber.Ctx) error {
	user := CurrentUser(ctx)

	year, month, err := parseYearMonth(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	summary, err := LoadOrComputeSummary(c.DB, user.ID, year, month)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute summary"})
	}

	data := reportData(summary, user.Currency)

	return ctx.Render("report", fiber.Map{
		"Year":             data.Year,
		"MonthName":        data.MonthName,
		"Income":           data.Currency + Reports.FormatAmount(data.MonthlyIncome),
		"Expenses":         data.Currency + Reports.FormatAmount(data.MonthlyExpenses),
		"NetBalance":       data.Currency + Reports.FormatAmount(data.NetBalance),
		"PurchaseCount":    data.VendorTransactionCount,
		"SaleCount":        data.CustomerTransactionCount,
		"PaymentsMade":     data.VendorPaymentCount,
		"PaymentsReceived": data.CustomerPaymentCount,
	})
}
