// Package workbook writes scraped product listings to an xlsx spreadsheet
package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	// SheetName is the title of the single worksheet
	SheetName = "Product Details"
	// FileName is the spreadsheet the storefront scenario produces
	FileName = "Product_Details.xlsx"
)

// Header is the fixed first row
var Header = []string{"Product Name", "Product Price"}

// ProductRecord is one listing entry as displayed on the page
type ProductRecord struct {
	Name  string
	Price string
}

// ProductSheet accumulates rows in memory and writes them out once
type ProductSheet struct {
	rows [][]string
}

// NewProductSheet creates a sheet holding only the header row
func NewProductSheet() *ProductSheet {
	header := make([]string, len(Header))
	copy(header, Header)
	return &ProductSheet{rows: [][]string{header}}
}

// Append adds a record as the next row
func (s *ProductSheet) Append(r ProductRecord) {
	s.rows = append(s.rows, []string{r.Name, r.Price})
}

// Len returns the number of rows, header included
func (s *ProductSheet) Len() int {
	return len(s.rows)
}

// Save writes the sheet to path, replacing any existing file
func (s *ProductSheet) Save(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// ReadRows loads every row of the product sheet stored at path
func ReadRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", SheetName, err)
	}
	return rows, nil
}
