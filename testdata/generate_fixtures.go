//go:build ignore

// This program generates the sample payroll spreadsheet used for manual
// testing. Run from the repository root:
//
//	go run testdata/generate_fixtures.go
package main

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/fleetworks/haulkit/internal/xlsx"
)

func main() {
	if err := generatePayroll(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating sample.xlsx: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Test fixtures generated successfully.")
}

func generatePayroll() error {
	f, err := xlsx.NewWorkbook("Sheet1")
	if err != nil {
		return err
	}
	defer f.Close()

	for c, name := range []string{"Truck", "Driver", "Paid On", "Rate", "Gross Pay", "Total"} {
		if err := f.SetCellStr("Sheet1", xlsx.CellName(c, 0), name); err != nil {
			return err
		}
	}

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		return err
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return err
	}

	rows := []struct {
		truck, driver string
		paidOn        float64 // Excel date serial
		rate, gross   float64
	}{
		{"Big Red", "J. Alvarez", 45474, 0.62, 1840.50},
		{"Big Red", "J. Alvarez", 45481, 0.62, 2105.25},
		{"Blue", "M. Okafor", 45474, 0.58, 1633.00},
		{"Old Yeller", "S. Tran", 45474, 0.65, 1990.75},
		{"Blue", "M. Okafor", 45481, 0.58, 1712.40},
	}
	for i, r := range rows {
		row := i + 1
		if err := f.SetCellStr("Sheet1", xlsx.CellName(0, row), r.truck); err != nil {
			return err
		}
		if err := f.SetCellStr("Sheet1", xlsx.CellName(1, row), r.driver); err != nil {
			return err
		}
		dateCell := xlsx.CellName(2, row)
		if err := f.SetCellFloat("Sheet1", dateCell, r.paidOn, -1, 64); err != nil {
			return err
		}
		if err := f.SetCellStyle("Sheet1", dateCell, dateCell, dateStyle); err != nil {
			return err
		}
		for c, v := range []float64{r.rate, r.gross, r.gross * 1.0825} {
			cell := xlsx.CellName(c+3, row)
			if err := f.SetCellFloat("Sheet1", cell, v, -1, 64); err != nil {
				return err
			}
			if err := f.SetCellStyle("Sheet1", cell, cell, moneyStyle); err != nil {
				return err
			}
		}
	}

	return xlsx.Save(f, "testdata/sample.xlsx")
}
