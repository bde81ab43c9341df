// Package xlsx wraps excelize with the workbook and cell-level helpers the
// report builder needs: header resolution, typed cell access, and
// type-and-style-preserving cell copies.
package xlsx

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Open opens an .xlsx file for reading or in-place modification.
func Open(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s — check that the path is correct", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s — is this a valid .xlsx file? %w", path, err)
	}
	return f, nil
}

// NewWorkbook creates an in-memory workbook whose first sheet is named
// sheetName. The caller saves it with Save.
func NewWorkbook(sheetName string) (*excelize.File, error) {
	f := excelize.NewFile()
	if sheetName != "" {
		if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("could not name sheet %q: %w", sheetName, err)
		}
	}
	return f, nil
}

// Save writes the workbook to path, overwriting any existing file.
func Save(f *excelize.File, path string) error {
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("could not save %s: %w", path, err)
	}
	return nil
}

// SheetExists reports whether the workbook contains the named sheet.
func SheetExists(f *excelize.File, name string) bool {
	idx, err := f.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// Rows returns all rows of the named sheet as strings, formatted the way
// Excel would display them.
func Rows(f *excelize.File, sheet string) ([][]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// Header returns the header row of the named sheet. An empty sheet yields an
// empty header, not an error.
func Header(f *excelize.File, sheet string) ([]string, error) {
	rows, err := Rows(f, sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ResolveColumn finds the zero-based index of the header cell matching name,
// ignoring case and surrounding whitespace. The first match wins when headers
// are duplicated.
func ResolveColumn(header []string, name string) (int, bool) {
	target := strings.TrimSpace(name)
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), target) {
			return i, true
		}
	}
	return 0, false
}

// CellName converts zero-based column and row indices to an A1-style
// reference.
func CellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		// Only reachable with negative indices, which callers never produce.
		panic(fmt.Sprintf("xlsx: invalid cell coordinates (%d, %d): %v", col, row, err))
	}
	return name
}
