package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column captions exactly as the 1C warehouse export writes them. The
// header row is not necessarily the first row of the sheet, and the export
// occasionally renames minor columns, so a row counts as the header when at
// least half of the required captions are present.
const (
	colSku       = "Артикул"
	colName      = "Наименование"
	colPrimary   = "Магазин Горького 35, можно забрать сейчас"
	colSecondary = "Основной склад, заказать самовывоз на следующий день после 16:00 (кроме воскресенья)"
	colPreOrder  = "Предзаказ"
)

var requiredColumns = []string{colSku, colName, colPrimary, colSecondary}

// Item is one parsed spreadsheet row.
type Item struct {
	Sku               string
	QuantityPrimary   int64
	QuantitySecondary int64
	PreOrder          bool
}

// RowError reports one unusable row; Row is the 1-based sheet row number.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Result carries the parsed items next to the rows that could not be used.
// A bad row never fails the whole workbook.
type Result struct {
	Items  []Item
	Errors []RowError
}

// ParseWorkbook reads the first sheet of an .xlsx stock export: locates the
// header row, maps captions to columns and extracts one Item per data row
// with a non-empty SKU.
func ParseWorkbook(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	headerIdx, columns, err := findHeader(rows)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for i := headerIdx + 1; i < len(rows); i++ {
		rowNum := i + 1
		sku := cellAt(rows[i], colIndex(columns, colSku))
		if sku == "" {
			continue
		}

		primary, err := parseQuantity(cellAt(rows[i], colIndex(columns, colPrimary)))
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Message: fmt.Sprintf("sku %s: %v", sku, err)})
			continue
		}
		secondary, err := parseQuantity(cellAt(rows[i], colIndex(columns, colSecondary)))
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Message: fmt.Sprintf("sku %s: %v", sku, err)})
			continue
		}

		item := Item{
			Sku:               sku,
			QuantityPrimary:   primary,
			QuantitySecondary: secondary,
		}
		if idx, ok := columns[colPreOrder]; ok {
			item.PreOrder = parseFlag(cellAt(rows[i], idx))
		}

		result.Items = append(result.Items, item)
	}

	return result, nil
}

// findHeader returns the header row index and a caption-to-column map.
func findHeader(rows [][]string) (int, map[string]int, error) {
	for i, row := range rows {
		matches := 0
		columns := make(map[string]int)
		for col, caption := range row {
			caption = strings.TrimSpace(caption)
			switch caption {
			case colSku, colName, colPrimary, colSecondary, colPreOrder:
				columns[caption] = col
			}
			for _, required := range requiredColumns {
				if caption == required {
					matches++
				}
			}
		}
		if matches >= len(requiredColumns)/2 {
			if _, ok := columns[colSku]; !ok {
				return 0, nil, fmt.Errorf("header row %d has no %q column", i+1, colSku)
			}
			return i, columns, nil
		}
	}
	return 0, nil, fmt.Errorf("no header row found")
}

// colIndex returns the column for a caption, or -1 when the export did not
// include it.
func colIndex(columns map[string]int, caption string) int {
	if idx, ok := columns[caption]; ok {
		return idx
	}
	return -1
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func parseQuantity(cell string) (int64, error) {
	if cell == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("quantity %q is not a number", cell)
	}
	if n < 0 {
		return 0, fmt.Errorf("quantity %q is negative", cell)
	}
	return int64(n), nil
}

func parseFlag(cell string) bool {
	switch strings.ToLower(cell) {
	case "1", "да", "true", "yes":
		return true
	}
	return false
}
