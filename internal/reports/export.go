package reports

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const dayFormat = "2006-01-02"

// BuildReportXLSX renders a period report as an XLSX workbook with one sheet
// per dimension.
func BuildReportXLSX(report *PeriodReport) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	fuelSheet := "fuel"
	shopSheet := "shop"
	expenseSheet := "expenses"

	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(fuelSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(shopSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(expenseSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", "Station Report")
	_ = f.SetCellValue(summarySheet, "A3", "From")
	_ = f.SetCellValue(summarySheet, "B3", report.Period.Start.Format(dayFormat))
	_ = f.SetCellValue(summarySheet, "A4", "To")
	_ = f.SetCellValue(summarySheet, "B4", report.Period.End.Format(dayFormat))
	_ = f.SetCellValue(summarySheet, "A5", "Currency")
	_ = f.SetCellValue(summarySheet, "B5", report.Currency)
	_ = f.SetCellValue(summarySheet, "A7", "Fuel revenue")
	_ = f.SetCellValue(summarySheet, "B7", report.Summary.FuelRevenue)
	_ = f.SetCellValue(summarySheet, "A8", "Shop revenue")
	_ = f.SetCellValue(summarySheet, "B8", report.Summary.ShopRevenue)
	_ = f.SetCellValue(summarySheet, "A9", "Total expenses")
	_ = f.SetCellValue(summarySheet, "B9", report.Summary.TotalExpenses)
	_ = f.SetCellValue(summarySheet, "A10", "Net profit")
	_ = f.SetCellValue(summarySheet, "B10", report.Summary.NetProfit)
	_ = f.SetCellValue(summarySheet, "A11", "Fuel volume (L)")
	_ = f.SetCellValue(summarySheet, "B11", report.FuelVolume)

	_ = f.SetCellValue(fuelSheet, "A1", "Fuel type")
	_ = f.SetCellValue(fuelSheet, "B1", "Volume (L)")
	_ = f.SetCellValue(fuelSheet, "C1", "Revenue")
	for i, r := range report.FuelSales {
		row := i + 2
		_ = f.SetCellValue(fuelSheet, fmt.Sprintf("A%d", row), r.FuelType)
		_ = f.SetCellValue(fuelSheet, fmt.Sprintf("B%d", row), r.Volume)
		_ = f.SetCellValue(fuelSheet, fmt.Sprintf("C%d", row), r.Amount)
	}

	_ = f.SetCellValue(shopSheet, "A1", "Product")
	_ = f.SetCellValue(shopSheet, "B1", "Quantity")
	_ = f.SetCellValue(shopSheet, "C1", "Revenue")
	for i, r := range report.ShopSales {
		row := i + 2
		_ = f.SetCellValue(shopSheet, fmt.Sprintf("A%d", row), r.Name)
		_ = f.SetCellValue(shopSheet, fmt.Sprintf("B%d", row), r.Quantity)
		_ = f.SetCellValue(shopSheet, fmt.Sprintf("C%d", row), r.Revenue)
	}

	_ = f.SetCellValue(expenseSheet, "A1", "Category")
	_ = f.SetCellValue(expenseSheet, "B1", "Amount")
	for i, r := range report.Expenses {
		row := i + 2
		_ = f.SetCellValue(expenseSheet, fmt.Sprintf("A%d", row), r.Category)
		_ = f.SetCellValue(expenseSheet, fmt.Sprintf("B%d", row), r.Amount)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildReportPDF renders a period report as a printable PDF.
func BuildReportPDF(report *PeriodReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Station Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s to %s", report.Period.Start.Format(dayFormat), report.Period.End.Format(dayFormat)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Fuel revenue: %.0f %s", report.Summary.FuelRevenue, report.Currency))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Shop revenue: %.0f %s", report.Summary.ShopRevenue, report.Currency))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total expenses: %.0f %s", report.Summary.TotalExpenses, report.Currency))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Net profit: %.0f %s", report.Summary.NetProfit, report.Currency))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(60, 6, "Fuel type", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Volume (L)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Revenue", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, r := range report.FuelSales {
		pdf.CellFormat(60, 6, r.FuelType, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%.0f", r.Volume), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%.0f", r.Amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(60, 6, "Product", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Quantity", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Revenue", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, r := range report.ShopSales {
		pdf.CellFormat(60, 6, r.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%d", r.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%.0f", r.Revenue), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(80, 6, "Expense category", "1", 0, "C", false, 0, "")
	pdf.CellFormat(80, 6, "Amount", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, r := range report.Expenses {
		pdf.CellFormat(80, 6, r.Category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(80, 6, fmt.Sprintf("%.0f", r.Amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
