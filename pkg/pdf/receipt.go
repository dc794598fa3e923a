package pdf

import (
	"bytes"
	"fmt"

	"github.com/dquispe/pos-backoffice/internal/domain/entity"
	"github.com/jung-kurt/gofpdf"
)

// RenderReceipt renders an order receipt as a PDF byte stream. Layout is a
// single A4 page: store header, order metadata, item table, total.
func RenderReceipt(r *entity.Receipt) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Order %s", r.OrderNumber), false)
	pdf.AddPage()

	// Store header
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, r.Header.StoreName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if r.Header.Address != "" {
		pdf.CellFormat(0, 5, r.Header.Address, "", 1, "C", false, 0, "")
	}
	if r.Header.Phone != "" {
		pdf.CellFormat(0, 5, "Tel: "+r.Header.Phone, "", 1, "C", false, 0, "")
	}
	if r.Header.TaxID != "" {
		pdf.CellFormat(0, 5, "Tax ID: "+r.Header.TaxID, "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	// Order metadata
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Order %s", r.OrderNumber), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Date: "+r.Date, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Status: "+r.Status, "", 1, "L", false, 0, "")
	if r.Customer != "" {
		pdf.CellFormat(0, 6, "Customer: "+r.Customer, "", 1, "L", false, 0, "")
	}
	if r.Salesperson != "" {
		pdf.CellFormat(0, 6, "Salesperson: "+r.Salesperson, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Item table header
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(12, 8, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Code", "1", 0, "L", true, 0, "")
	pdf.CellFormat(78, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(16, 8, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(27, 8, "Unit", "1", 0, "R", true, 0, "")
	pdf.CellFormat(27, 8, "Total", "1", 1, "R", true, 0, "")

	// Item rows
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range r.Items {
		pdf.CellFormat(12, 7, fmt.Sprintf("%d", item.ItemNo), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, item.Code, "1", 0, "L", false, 0, "")
		pdf.CellFormat(78, 7, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(16, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(27, 7, fmt.Sprintf("%.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(27, 7, fmt.Sprintf("%.2f", item.Total), "1", 1, "R", false, 0, "")
	}

	// Total
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(163, 9, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(27, 9, fmt.Sprintf("%.2f", r.Total), "1", 1, "R", false, 0, "")

	if r.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, "Notes: "+r.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render receipt %s: %w", r.OrderNumber, err)
	}
	return buf.Bytes(), nil
}
