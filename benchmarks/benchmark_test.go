package benchmarks

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fleetworks/haulkit/internal/report"
	"github.com/fleetworks/haulkit/internal/xlsx"
)

// writeFixture builds a payroll workbook with n data rows cycling through
// four trucks.
func writeFixture(b *testing.B, path string, n int) {
	b.Helper()
	f, err := xlsx.NewWorkbook("Sheet1")
	if err != nil {
		b.Fatal(err)
	}
	defer f.Close()

	trucks := []string{"Big Red", "Blue", "Old Yeller", "Mack"}
	for c, name := range []string{"Truck", "Rate", "Gross Pay", "Total"} {
		if err := f.SetCellStr("Sheet1", xlsx.CellName(c, 0), name); err != nil {
			b.Fatal(err)
		}
	}
	for i := 1; i <= n; i++ {
		if err := f.SetCellStr("Sheet1", xlsx.CellName(0, i), trucks[i%len(trucks)]); err != nil {
			b.Fatal(err)
		}
		for c := 1; c <= 3; c++ {
			if err := f.SetCellFloat("Sheet1", xlsx.CellName(c, i), float64(i*c), -1, 64); err != nil {
				b.Fatal(err)
			}
		}
	}
	if err := xlsx.Save(f, path); err != nil {
		b.Fatal(err)
	}
}

func BenchmarkFilter(b *testing.B) {
	dir := b.TempDir()
	in := filepath.Join(dir, "payroll.xlsx")
	writeFixture(b, in, 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out := filepath.Join(dir, fmt.Sprintf("out%d.xlsx", i))
		_, err := report.Filter(in, out, report.FilterOptions{
			Sheet:       "Sheet1",
			Column:      "Truck",
			Value:       "Big Red",
			OutputSheet: "FilteredData",
		})
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSummarize(b *testing.B) {
	dir := b.TempDir()

	paths := make([]string, b.N)
	for i := range paths {
		paths[i] = filepath.Join(dir, fmt.Sprintf("payroll%d.xlsx", i))
		writeFixture(b, paths[i], 1000)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := report.Summarize(paths[i], report.SummaryOptions{
			Sheet:   "Sheet1",
			Columns: []string{"Rate", "Gross Pay", "Total"},
		})
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDistinctValues(b *testing.B) {
	dir := b.TempDir()
	in := filepath.Join(dir, "payroll.xlsx")
	writeFixture(b, in, 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := report.DistinctValues(in, "Sheet1", "Truck"); err != nil {
			b.Fatal(err)
		}
	}
}
