package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"judgments/internal"
)

// ExportFileName follows the "<spider>_<YYYYMMDD>.xlsx" convention of earlier
// deliveries.
func ExportFileName(dir string, at time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("jud_gov_bn_%s.xlsx", at.Format("20060102")))
}

func ExportCollectionToXLSX(coll *internal.Collection, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, h := range coll.Columns() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, row := range coll.Rows() {
		r := i + 2
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, r)
			if err := f.SetCellStr(sheet, cell, value); err != nil {
				return fmt.Errorf("write row %d: %w", r, err)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func WriteCollectionCSV(coll *internal.Collection, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(coll.Columns()); err != nil {
		return err
	}
	if err := cw.WriteAll(coll.Rows()); err != nil {
		return err
	}
	return cw.Error()
}
