package listview

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// RowFunc renders one record as a row of cells, in header order.
type RowFunc[T any] func(item T) []string

// ExportCSV writes the given records as CSV with a header row. The
// caller passes the visible collection, so an export matches what the
// list shows after filtering and sorting.
func ExportCSV[T any](w io.Writer, headers []string, items []T, row RowFunc[T]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, item := range items {
		if err := cw.Write(row(item)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportXLSX writes the given records as a single-sheet workbook.
func ExportXLSX[T any](w io.Writer, sheet string, headers []string, items []T, row RowFunc[T]) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	writeRow := func(rowNum int, cells []string) error {
		for col, value := range cells {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeRow(1, headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	for i, item := range items {
		if err := writeRow(i+2, row(item)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
