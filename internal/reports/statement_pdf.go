package reports

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
)

// buildStatementPDF renders the monthly statement. Rows past the page
// budget are truncated with a marker so huge ledgers still produce a
// readable document.
func buildStatementPDF(userLabel, period string, entries []Entry, totalIncome, totalExpense float64) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Expense Tracker Statement")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, "Period: "+period)
	pdf.Ln(5)
	pdf.Cell(0, 6, "User: "+userLabel)
	pdf.Ln(10)

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 11)

	sumW := []float64{62, 62, 62}
	pdf.CellFormat(sumW[0], 10, "Income", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[1], 10, "Expense", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[2], 10, "Balance", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(sumW[0], 10, formatAmount(totalIncome), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[1], 10, formatAmount(totalExpense), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[2], 10, formatAmount(totalIncome-totalExpense), "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	colW := []float64{22, 26, 72, 36, 26}
	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(245, 245, 245)
		pdf.CellFormat(colW[0], 8, "TYPE", "1", 0, "C", true, 0, "")
		pdf.CellFormat(colW[1], 8, "DATE", "1", 0, "C", true, 0, "")
		pdf.CellFormat(colW[2], 8, "NAME", "1", 0, "L", true, 0, "")
		pdf.CellFormat(colW[3], 8, "CATEGORY", "1", 0, "C", true, 0, "")
		pdf.CellFormat(colW[4], 8, "AMOUNT", "1", 1, "R", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
	}
	writeHeader()
	pdf.SetTextColor(30, 30, 30)

	const maxRows = 200
	for i, e := range entries {
		if i >= maxRows {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.CellFormat(0, 8, "truncated (too many rows)", "1", 1, "C", false, 0, "")
			break
		}
		if pdf.GetY() > 270 {
			pdf.AddPage()
			writeHeader()
		}

		amt := formatAmount(e.Amount)
		if e.Type == "expense" {
			amt = "-" + amt
		}

		pdf.CellFormat(colW[0], 8, strings.ToUpper(e.Type), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[1], 8, e.Date.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[2], 8, trimTo(e.Name, 48), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[3], 8, e.Category, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[4], 8, amt, "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func trimTo(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
