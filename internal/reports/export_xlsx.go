package reports

import (
	"bytes"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Transactions"

var exportHeader = []string{"Type", "Date", "Name", "Category", "Amount", "ID"}

// buildWorkbook writes the entries into a single-sheet XLSX file.
func buildWorkbook(entries []Entry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, title); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(exportSheet, "B", "B", 12)
	_ = f.SetColWidth(exportSheet, "C", "C", 32)
	_ = f.SetColWidth(exportSheet, "D", "D", 16)
	_ = f.SetColWidth(exportSheet, "F", "F", 38)

	for row, e := range entries {
		values := []interface{}{e.Type, e.Date.Format("2006-01-02"), e.Name, e.Category, e.Amount, e.ID}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
