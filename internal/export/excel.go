package export

import (
	"context"
	"io"

	"github.com/xuri/excelize/v2"
)

type excelRenderer struct{}

func (excelRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (excelRenderer) Extension() string { return ".xlsx" }
func (excelRenderer) Inline() bool      { return false }

func (excelRenderer) Render(_ context.Context, w io.Writer, rep Report) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(rep)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	header := make([]any, len(rep.Headers))
	for i, h := range rep.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return err
	}

	for r, row := range rep.Set.Records {
		values := make([]any, len(rep.Set.Columns))
		for i, col := range rep.Set.Columns {
			values[i] = cellValue(row[col.Name])
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	if n := len(rep.Headers); n > 0 {
		last, err := excelize.ColumnNumberToName(n)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "A", last, 18); err != nil {
			return err
		}
	}

	return f.Write(w)
}

// sheetName returns the entity label, trimmed to Excel's 31 character limit.
func sheetName(rep Report) string {
	name := "Report"
	if rep.Set.Entity != nil && rep.Set.Entity.Label != "" {
		name = rep.Set.Entity.Label
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
