// Package menutable provides the row-oriented menu table and its file
// formats: CSV for the per-image and combined artifacts, XLSX as a
// convenience export.
package menutable

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/VJd357/Happyplates/internal/domain"
)

// Columns is the fixed column order of every table artifact. It mirrors the
// flattening order: item fields first, the parent category label last.
var Columns = []string{"item_name", "item_description", "item_price", "item_portion", "item_type"}

// Table is an ordered sequence of menu rows.
type Table struct {
	Rows []domain.MenuRow
}

// New creates an empty table.
func New() *Table {
	return &Table{}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Append concatenates another table's rows onto this one, preserving order.
func (t *Table) Append(other *Table) {
	if other == nil {
		return
	}
	t.Rows = append(t.Rows, other.Rows...)
}

// WriteCSV persists the table with a header row. Nil optional fields are
// written as empty cells, never as the string "null".
func (t *Table) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return domain.IOError("failed to create table file", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return domain.IOError("failed to write table header", err)
	}
	for _, row := range t.Rows {
		record := []string{
			row.ItemName,
			deref(row.ItemDescription),
			deref(row.ItemPrice),
			deref(row.ItemPortion),
			row.ItemType,
		}
		if err := w.Write(record); err != nil {
			return domain.IOError("failed to write table row", err)
		}
	}
	w.Flush()
	return w.Error()
}

// ReadCSV loads a table previously written by WriteCSV. Empty optional cells
// read back as nil, so a write/read round trip reproduces the same rows.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.IOError("failed to open table file", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, domain.ParseError("failed to parse table file", err)
	}
	if len(records) == 0 {
		return nil, domain.ParseError("table file has no header", nil)
	}
	if len(records[0]) != len(Columns) {
		return nil, domain.ParseError(fmt.Sprintf("table file has %d columns, want %d", len(records[0]), len(Columns)), nil)
	}

	t := New()
	for _, record := range records[1:] {
		t.Rows = append(t.Rows, domain.MenuRow{
			ItemName:        record[0],
			ItemDescription: ref(record[1]),
			ItemPrice:       ref(record[2]),
			ItemPortion:     ref(record[3]),
			ItemType:        record[4],
		})
	}
	return t, nil
}

// WriteXLSX exports the table as a single-sheet XLSX workbook.
func (t *Table) WriteXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Menu"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return domain.IOError("failed to create worksheet", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, h := range Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, row := range t.Rows {
		values := []string{
			row.ItemName,
			deref(row.ItemDescription),
			deref(row.ItemPrice),
			deref(row.ItemPortion),
			row.ItemType,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 28)
	_ = f.SetColWidth(sheet, "B", "B", 60)
	_ = f.SetColWidth(sheet, "E", "E", 24)

	return f.SaveAs(path)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
