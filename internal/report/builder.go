// Package report implements the spreadsheet report builder: row filtering by
// a key column, column summation with total rows, grouped per-key totals, and
// distinct key discovery. All operations work on .xlsx files through the
// internal xlsx layer and preserve cell types and styles.
package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fleetworks/haulkit/internal/xlsx"
)

// Soft conditions: the operation found nothing to do and left no partial
// output behind. Commands report these and exit cleanly instead of failing.
var (
	// ErrColumnNotFound signals that a required header column is missing.
	ErrColumnNotFound = errors.New("column not found")
	// ErrSheetNotFound signals that the requested sheet does not exist.
	ErrSheetNotFound = errors.New("sheet not found")
)

// IsSoft reports whether err is an expected no-op condition rather than an
// I/O or format failure.
func IsSoft(err error) bool {
	return errors.Is(err, ErrColumnNotFound) || errors.Is(err, ErrSheetNotFound)
}

// FilterOptions configures a row-filter pass.
type FilterOptions struct {
	Sheet       string // sheet to read from the input file
	Column      string // header name of the key column
	Value       string // value to match, case-insensitively
	OutputSheet string // sheet name in the output file
}

// FilterResult describes a completed filter pass.
type FilterResult struct {
	OutputPath string `json:"outputPath"`
	Matched    int    `json:"matched"`
	Columns    int    `json:"columns"`
}

// Filter copies the header row plus every data row whose key-column value
// equals opts.Value (ignoring case) from inputPath into a new workbook at
// outputPath. Cell types and styles are preserved. Zero matches still produce
// a header-only output file. The input file is never modified, and no output
// file is created when the key column or sheet is missing.
func Filter(inputPath, outputPath string, opts FilterOptions) (*FilterResult, error) {
	src, err := xlsx.Open(inputPath)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	rows, indices, err := resolveSheet(src, inputPath, opts.Sheet, []string{opts.Column})
	if err != nil {
		return nil, err
	}
	keyIdx := indices[0]
	header := rows[0]

	out, err := xlsx.NewWorkbook(opts.OutputSheet)
	if err != nil {
		return nil, err
	}
	defer out.Close()
	outSheet := out.GetSheetName(0)

	// Header is copied verbatim as text; data rows keep types and styles.
	for c, name := range header {
		if err := out.SetCellStr(outSheet, xlsx.CellName(c, 0), name); err != nil {
			return nil, fmt.Errorf("could not write header: %w", err)
		}
	}

	target := strings.TrimSpace(opts.Value)
	outRow := 1
	for i := 1; i < len(rows); i++ {
		if keyIdx >= len(rows[i]) {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(rows[i][keyIdx]), target) {
			continue
		}
		for c := range rows[i] {
			err := xlsx.Copy(
				xlsx.Ref{File: src, Sheet: opts.Sheet, Cell: xlsx.CellName(c, i)},
				xlsx.Ref{File: out, Sheet: outSheet, Cell: xlsx.CellName(c, outRow)},
			)
			if err != nil {
				return nil, fmt.Errorf("could not copy row %d: %w", i+1, err)
			}
		}
		outRow++
	}

	if err := xlsx.Save(out, outputPath); err != nil {
		return nil, err
	}

	return &FilterResult{
		OutputPath: outputPath,
		Matched:    outRow - 1,
		Columns:    len(header),
	}, nil
}

// SummaryOptions configures a single-group summation.
type SummaryOptions struct {
	Sheet   string   // sheet holding the filtered data
	Columns []string // numeric columns to sum
}

// SummaryResult describes an appended total row.
type SummaryResult struct {
	Rows   int                `json:"rows"`   // data rows scanned
	Row    int                `json:"row"`    // 1-based index of the appended row
	Totals map[string]float64 `json:"totals"` // column name -> sum
}

// Summarize sums the named numeric columns across all data rows of the sheet
// and appends one total row after the last existing row, rewriting the file
// in place. Non-numeric and blank cells contribute zero. Each total carries
// the style of the first numeric cell seen in its column. The file is left
// untouched when the sheet or any required column is missing.
func Summarize(path string, opts SummaryOptions) (*SummaryResult, error) {
	f, err := xlsx.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, indices, err := resolveSheet(f, path, opts.Sheet, opts.Columns)
	if err != nil {
		return nil, err
	}

	sums := make([]float64, len(indices))
	styles := make([]int, len(indices))
	for j := range styles {
		styles[j] = -1
	}

	for i := 1; i < len(rows); i++ {
		for j, idx := range indices {
			ref := xlsx.Ref{File: f, Sheet: opts.Sheet, Cell: xlsx.CellName(idx, i)}
			n, ok := xlsx.NumericValue(ref)
			if !ok {
				continue
			}
			sums[j] += n
			if styles[j] < 0 {
				if sid, err := f.GetCellStyle(opts.Sheet, ref.Cell); err == nil {
					styles[j] = sid
				}
			}
		}
	}

	totalRow := len(rows)
	for j, idx := range indices {
		cell := xlsx.CellName(idx, totalRow)
		if err := f.SetCellFloat(opts.Sheet, cell, sums[j], -1, 64); err != nil {
			return nil, fmt.Errorf("could not write total: %w", err)
		}
		if styles[j] > 0 {
			if err := f.SetCellStyle(opts.Sheet, cell, cell, styles[j]); err != nil {
				return nil, fmt.Errorf("could not style total: %w", err)
			}
		}
	}

	if err := xlsx.Save(f, path); err != nil {
		return nil, err
	}

	return &SummaryResult{
		Rows:   len(rows) - 1,
		Row:    totalRow + 1,
		Totals: totalsByColumn(opts.Columns, sums),
	}, nil
}

// GroupSummaryOptions configures a per-key grouped summation.
type GroupSummaryOptions struct {
	Sheet       string
	GroupColumn string   // column whose values bucket the rows
	Keys        []string // group keys; summary rows appear in this order
	Columns     []string // numeric columns to sum
	LabelPrefix string   // prefix for the label cell, e.g. "Total for "
}

// GroupTotals holds one group's accumulated sums.
type GroupTotals struct {
	Key    string             `json:"key"`
	Totals map[string]float64 `json:"totals"`
}

// GroupSummaryResult describes the appended per-group rows.
type GroupSummaryResult struct {
	Rows   int           `json:"rows"` // data rows scanned
	Groups []GroupTotals `json:"groups"`
}

// SummarizeGroups accumulates the named numeric columns per group key in a
// single scan, then appends one summary row per key after a blank-row gap,
// rewriting the file in place. Rows whose group value matches no key are
// ignored. Summary rows appear in the order keys were supplied, each labeled
// in the first column.
func SummarizeGroups(path string, opts GroupSummaryOptions) (*GroupSummaryResult, error) {
	f, err := xlsx.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	columns := append([]string{opts.GroupColumn}, opts.Columns...)
	rows, indices, err := resolveSheet(f, path, opts.Sheet, columns)
	if err != nil {
		return nil, err
	}
	groupIdx, sumIndices := indices[0], indices[1:]

	acc := make(map[string][]float64, len(opts.Keys))
	for _, key := range opts.Keys {
		acc[strings.TrimSpace(key)] = make([]float64, len(sumIndices))
	}

	for i := 1; i < len(rows); i++ {
		if groupIdx >= len(rows[i]) {
			continue
		}
		sums, ok := acc[strings.TrimSpace(rows[i][groupIdx])]
		if !ok {
			continue
		}
		for j, idx := range sumIndices {
			ref := xlsx.Ref{File: f, Sheet: opts.Sheet, Cell: xlsx.CellName(idx, i)}
			if n, numeric := xlsx.NumericValue(ref); numeric {
				sums[j] += n
			}
		}
	}

	prefix := opts.LabelPrefix
	if prefix == "" {
		prefix = "Total for "
	}

	// One blank row between the data and the group totals.
	row := len(rows) + 1
	result := &GroupSummaryResult{Rows: len(rows) - 1}
	for _, key := range opts.Keys {
		sums := acc[strings.TrimSpace(key)]
		label := xlsx.CellName(0, row)
		if err := f.SetCellStr(opts.Sheet, label, prefix+key); err != nil {
			return nil, fmt.Errorf("could not write group label: %w", err)
		}
		for j, idx := range sumIndices {
			cell := xlsx.CellName(idx, row)
			if err := f.SetCellFloat(opts.Sheet, cell, sums[j], -1, 64); err != nil {
				return nil, fmt.Errorf("could not write group total: %w", err)
			}
		}
		result.Groups = append(result.Groups, GroupTotals{
			Key:    key,
			Totals: totalsByColumn(opts.Columns, sums),
		})
		row++
	}

	if err := xlsx.Save(f, path); err != nil {
		return nil, err
	}
	return result, nil
}

// DistinctValues returns the sorted set of distinct, trimmed, non-empty
// string values found in the named column's data rows. Non-string cells are
// skipped.
func DistinctValues(path, sheet, column string) ([]string, error) {
	f, err := xlsx.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, indices, err := resolveSheet(f, path, sheet, []string{column})
	if err != nil {
		return nil, err
	}
	idx := indices[0]

	seen := make(map[string]struct{})
	for i := 1; i < len(rows); i++ {
		ref := xlsx.Ref{File: f, Sheet: sheet, Cell: xlsx.CellName(idx, i)}
		v, ok := xlsx.StringValue(ref)
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		seen[v] = struct{}{}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}

// resolveSheet reads the sheet and resolves every named column against its
// header row. It returns ErrSheetNotFound or ErrColumnNotFound (naming every
// missing column) before anything is modified.
func resolveSheet(f *excelize.File, path, sheet string, columns []string) ([][]string, []int, error) {
	if !xlsx.SheetExists(f, sheet) {
		return nil, nil, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, sheet, path)
	}
	rows, err := xlsx.Rows(f, sheet)
	if err != nil {
		return nil, nil, err
	}
	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}

	indices := make([]int, len(columns))
	var missing []string
	for i, name := range columns {
		idx, ok := xlsx.ResolveColumn(header, name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		indices[i] = idx
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrColumnNotFound, strings.Join(missing, ", "))
	}
	return rows, indices, nil
}

// totalsByColumn pairs column names with their accumulated sums.
func totalsByColumn(columns []string, sums []float64) map[string]float64 {
	totals := make(map[string]float64, len(columns))
	for i, name := range columns {
		totals[name] = sums[i]
	}
	return totals
}
