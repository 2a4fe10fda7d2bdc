package report

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// maxSheetName is the sheet name length limit of the xlsx format.
const maxSheetName = 31

// WriteWorkbook saves frames as one xlsx workbook, a sheet per frame. Cells
// that parse as numbers are stored as numbers.
func WriteWorkbook(path string, frames ...Frame) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, fr := range frames {
		sheet := fr.Name
		if len(sheet) > maxSheetName {
			sheet = sheet[:maxSheetName]
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("new sheet %s: %w", sheet, err)
		}

		if err := writeSheetRow(f, sheet, 1, fr.Header); err != nil {
			return err
		}
		for r, row := range fr.Rows {
			if err := writeSheetRow(f, sheet, r+2, row); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSheetRow(f *excelize.File, sheet string, row int, cells []string) error {
	values := make([]any, len(cells))
	for i, c := range cells {
		if n, err := strconv.ParseFloat(c, 64); err == nil {
			values[i] = n
			continue
		}
		values[i] = c
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
