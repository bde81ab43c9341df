package xlsx

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Ref locates a single cell inside a workbook.
type Ref struct {
	File  *excelize.File
	Sheet string
	Cell  string
}

// rawValue returns the cell's stored value without number formatting applied.
func rawValue(r Ref) (string, error) {
	return r.File.GetCellValue(r.Sheet, r.Cell, excelize.Options{RawCellValue: true})
}

// NumericValue returns the cell's numeric value and true when the cell holds
// a plain or date-formatted number. Strings, booleans, formulas, errors, and
// blanks report false.
func NumericValue(r Ref) (float64, bool) {
	if formula, _ := r.File.GetCellFormula(r.Sheet, r.Cell); formula != "" {
		return 0, false
	}
	ctype, err := r.File.GetCellType(r.Sheet, r.Cell)
	if err != nil {
		return 0, false
	}
	switch ctype {
	case excelize.CellTypeNumber, excelize.CellTypeDate, excelize.CellTypeUnset:
	default:
		return 0, false
	}
	raw, err := rawValue(r)
	if err != nil || raw == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// StringValue returns the cell's text and true when the cell is string-typed.
func StringValue(r Ref) (string, bool) {
	ctype, err := r.File.GetCellType(r.Sheet, r.Cell)
	if err != nil {
		return "", false
	}
	if ctype != excelize.CellTypeSharedString && ctype != excelize.CellTypeInlineString {
		return "", false
	}
	v, err := r.File.GetCellValue(r.Sheet, r.Cell)
	if err != nil {
		return "", false
	}
	return v, true
}

// Copy transfers src's value to dst preserving its type: formula text is
// copied unevaluated, booleans stay booleans, date-formatted numbers become
// date values, other numbers stay numeric, and everything else is copied as
// text. The source style is cloned onto the destination, across workbooks if
// need be.
func Copy(src, dst Ref) error {
	if err := copyValue(src, dst); err != nil {
		return err
	}
	return copyStyle(src, dst)
}

func copyValue(src, dst Ref) error {
	formula, err := src.File.GetCellFormula(src.Sheet, src.Cell)
	if err != nil {
		return err
	}
	if formula != "" {
		return dst.File.SetCellFormula(dst.Sheet, dst.Cell, formula)
	}

	ctype, err := src.File.GetCellType(src.Sheet, src.Cell)
	if err != nil {
		return err
	}
	raw, err := rawValue(src)
	if err != nil {
		return err
	}

	switch ctype {
	case excelize.CellTypeBool:
		return dst.File.SetCellBool(dst.Sheet, dst.Cell, raw == "1")
	case excelize.CellTypeNumber, excelize.CellTypeDate, excelize.CellTypeUnset:
		if raw == "" {
			return nil
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			// Stored as text despite the type attribute; keep the text.
			return dst.File.SetCellStr(dst.Sheet, dst.Cell, raw)
		}
		if dateFormatted(src) {
			t, err := excelize.ExcelDateToTime(n, false)
			if err == nil {
				return dst.File.SetCellValue(dst.Sheet, dst.Cell, t)
			}
		}
		return dst.File.SetCellFloat(dst.Sheet, dst.Cell, n, -1, 64)
	default:
		if raw == "" {
			return nil
		}
		return dst.File.SetCellStr(dst.Sheet, dst.Cell, raw)
	}
}

func copyStyle(src, dst Ref) error {
	styleID, err := src.File.GetCellStyle(src.Sheet, src.Cell)
	if err != nil || styleID == 0 {
		return err
	}
	style, err := src.File.GetStyle(styleID)
	if err != nil {
		return err
	}
	newID, err := dst.File.NewStyle(style)
	if err != nil {
		return err
	}
	return dst.File.SetCellStyle(dst.Sheet, dst.Cell, dst.Cell, newID)
}

// dateFormatted reports whether the cell's number format marks its numeric
// value as a date or time.
func dateFormatted(r Ref) bool {
	styleID, err := r.File.GetCellStyle(r.Sheet, r.Cell)
	if err != nil || styleID == 0 {
		return false
	}
	style, err := r.File.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if isBuiltInDateFormat(style.NumFmt) {
		return true
	}
	if style.CustomNumFmt != nil {
		return customFormatIsDate(*style.CustomNumFmt)
	}
	return false
}

// isBuiltInDateFormat covers the built-in date and time number format IDs.
func isBuiltInDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}

// customFormatIsDate scans a custom number format for date tokens, skipping
// quoted literals and bracketed sections like [Red] or [$-409].
func customFormatIsDate(format string) bool {
	var inQuote, inBracket bool
	for _, c := range format {
		switch {
		case inQuote:
			if c == '"' {
				inQuote = false
			}
		case inBracket:
			if c == ']' {
				inBracket = false
			}
		case c == '"':
			inQuote = true
		case c == '[':
			inBracket = true
		case strings.ContainsRune("ymdhs", c) || strings.ContainsRune("YMDHS", c):
			return true
		}
	}
	return false
}
