package interfaces

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	quoting "movequote-cloud/internal/quoting/domain"
)

// BuildQuotePDF renders a printable PDF for a quote.
func BuildQuotePDF(quote *quoting.Quote) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Moving Quote")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Quote: %s", quote.ID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Customer: %s <%s>", quote.CustomerName, quote.CustomerMail))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("From: %s (floor %d)", quote.Origin.PostalCode, quote.Origin.Floor))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("To: %s (floor %d)", quote.Destination.PostalCode, quote.Destination.Floor))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Distance: %s km / Volume: %s m3", quote.DistanceKm, quote.VolumeM3))
	pdf.Ln(5)
	if !quote.MoveDate.IsZero() {
		pdf.Cell(0, 6, fmt.Sprintf("Move date: %s", quote.MoveDate.Format("2006-01-02")))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Created: %s", quote.CreatedAt.Format(time.RFC3339)))
	pdf.Ln(8)

	result := quote.Result
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 6, "Component", "1", 0, "L", false, 0, "")
	pdf.CellFormat(45, 6, "Min", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Max", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)

	rows := []struct {
		label    string
		min, max string
	}{
		{"Volume", result.Breakdown.VolumeCost.Min.String(), result.Breakdown.VolumeCost.Max.String()},
		{"Distance", result.Breakdown.DistanceCost.Min.String(), result.Breakdown.DistanceCost.Max.String()},
		{"Labor", result.Breakdown.LaborCost.Min.String(), result.Breakdown.LaborCost.Max.String()},
		{"Floor surcharge", result.Breakdown.FloorSurcharge.Min.String(), result.Breakdown.FloorSurcharge.Max.String()},
		{"Services", result.Breakdown.ServicesCost.Min.String(), result.Breakdown.ServicesCost.Max.String()},
		{"Heavy items", result.Breakdown.HeavyItemSurcharge.String(), result.Breakdown.HeavyItemSurcharge.String()},
		{"Net", result.NetMin.String(), result.NetMax.String()},
		{fmt.Sprintf("VAT (%s)", result.VATRate.String()), result.VATMin.String(), result.VATMax.String()},
		{"Gross", result.GrossMin.String(), result.GrossMax.String()},
	}
	for _, row := range rows {
		pdf.CellFormat(70, 6, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, row.min, "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, row.max, "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.Cell(0, 6, fmt.Sprintf("Estimated duration: %s h, crew of %d", result.EstimatedHours, result.Breakdown.CrewSize))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildQuoteXLSX renders an XLSX workbook for a quote.
func BuildQuoteXLSX(quote *quoting.Quote) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	inventorySheet := "inventory"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(inventorySheet); err != nil {
		return nil, err
	}

	result := quote.Result
	_ = f.SetCellValue(summarySheet, "A1", "Moving Quote")
	_ = f.SetCellValue(summarySheet, "A3", "Quote")
	_ = f.SetCellValue(summarySheet, "B3", quote.ID)
	_ = f.SetCellValue(summarySheet, "A4", "Customer")
	_ = f.SetCellValue(summarySheet, "B4", quote.CustomerMail)
	_ = f.SetCellValue(summarySheet, "A5", "Origin")
	_ = f.SetCellValue(summarySheet, "B5", quote.Origin.PostalCode)
	_ = f.SetCellValue(summarySheet, "A6", "Destination")
	_ = f.SetCellValue(summarySheet, "B6", quote.Destination.PostalCode)
	_ = f.SetCellValue(summarySheet, "A7", "Distance (km)")
	_ = f.SetCellValue(summarySheet, "B7", quote.DistanceKm.String())
	_ = f.SetCellValue(summarySheet, "A8", "Volume (m3)")
	_ = f.SetCellValue(summarySheet, "B8", quote.VolumeM3.String())
	_ = f.SetCellValue(summarySheet, "A9", "Net min")
	_ = f.SetCellValue(summarySheet, "B9", result.NetMin.String())
	_ = f.SetCellValue(summarySheet, "A10", "Net max")
	_ = f.SetCellValue(summarySheet, "B10", result.NetMax.String())
	_ = f.SetCellValue(summarySheet, "A11", "Gross min")
	_ = f.SetCellValue(summarySheet, "B11", result.GrossMin.String())
	_ = f.SetCellValue(summarySheet, "A12", "Gross max")
	_ = f.SetCellValue(summarySheet, "B12", result.GrossMax.String())
	_ = f.SetCellValue(summarySheet, "A13", "VAT rate")
	_ = f.SetCellValue(summarySheet, "B13", result.VATRate.String())
	_ = f.SetCellValue(summarySheet, "A14", "Duration (h)")
	_ = f.SetCellValue(summarySheet, "B14", result.EstimatedHours.String())
	_ = f.SetCellValue(summarySheet, "A15", "Crew")
	_ = f.SetCellValue(summarySheet, "B15", result.Breakdown.CrewSize)

	_ = f.SetCellValue(inventorySheet, "A1", "Item")
	_ = f.SetCellValue(inventorySheet, "B1", "Category")
	_ = f.SetCellValue(inventorySheet, "C1", "Volume (m3)")
	_ = f.SetCellValue(inventorySheet, "D1", "Quantity")
	for i, item := range quote.Inventory {
		row := i + 2
		_ = f.SetCellValue(inventorySheet, fmt.Sprintf("A%d", row), item.Name)
		_ = f.SetCellValue(inventorySheet, fmt.Sprintf("B%d", row), item.Category)
		_ = f.SetCellValue(inventorySheet, fmt.Sprintf("C%d", row), item.VolumeM3.String())
		_ = f.SetCellValue(inventorySheet, fmt.Sprintf("D%d", row), item.Quantity)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
