// Package importer reads purchase-request spreadsheets into raw rows for
// consolidation.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"cotacao_service/internal/domain/entities"
	"cotacao_service/internal/domain/normalize"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var (
	ErrInvalidWorkbook = fmt.Errorf("%w: invalid workbook", entities.ErrValidation)
	ErrMissingColumns  = fmt.Errorf("%w: header must name the product and quantity columns", entities.ErrValidation)
	ErrNoRows          = fmt.Errorf("%w: workbook has no data rows", entities.ErrValidation)
)

type column int

const (
	colName column = iota
	colQuantity
	colUnit
	colDeliveryTerm
)

// headerAliases are matched on normalize.NameKey, so accents and case do not
// matter.
var headerAliases = map[string]column{
	"produto":          colName,
	"descricao":        colName,
	"item":             colName,
	"material":         colName,
	"product":          colName,
	"name":             colName,
	"description":      colName,
	"quantidade":       colQuantity,
	"qtd":              colQuantity,
	"qtde":             colQuantity,
	"quantity":         colQuantity,
	"qty":              colQuantity,
	"unidade":          colUnit,
	"un":               colUnit,
	"und":              colUnit,
	"unit":             colUnit,
	"uom":              colUnit,
	"prazo de entrega": colDeliveryTerm,
	"prazo":            colDeliveryTerm,
	"entrega":          colDeliveryTerm,
	"delivery term":    colDeliveryTerm,
	"delivery":         colDeliveryTerm,
}

// XLSXRowReader reads the first sheet of a workbook. The first non-blank row
// is the header; blank rows after it are skipped.
type XLSXRowReader struct{}

func NewXLSXRowReader() *XLSXRowReader {
	return &XLSXRowReader{}
}

func (XLSXRowReader) ReadRows(r io.Reader) ([]entities.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrInvalidWorkbook
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read sheet %q: %v", ErrInvalidWorkbook, sheets[0], err)
	}

	headerAt := -1
	for i, row := range rows {
		if !blank(row) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, ErrNoRows
	}

	cols, err := mapHeader(rows[headerAt])
	if err != nil {
		return nil, err
	}

	out := make([]entities.RawRow, 0, len(rows)-headerAt-1)
	for i, row := range rows[headerAt+1:] {
		if blank(row) {
			continue
		}
		line := headerAt + i + 2
		qty, err := parseQuantity(cell(row, cols[colQuantity]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", entities.ErrValidation, line, err)
		}
		out = append(out, entities.RawRow{
			Name:         cell(row, cols[colName]),
			Quantity:     qty,
			Unit:         cell(row, cols[colUnit]),
			DeliveryTerm: cell(row, cols[colDeliveryTerm]),
		})
	}
	if len(out) == 0 {
		return nil, ErrNoRows
	}
	return out, nil
}

func mapHeader(header []string) (map[column]int, error) {
	cols := map[column]int{colName: -1, colQuantity: -1, colUnit: -1, colDeliveryTerm: -1}
	for i, h := range header {
		c, ok := headerAliases[normalize.NameKey(h)]
		if ok && cols[c] < 0 {
			cols[c] = i
		}
	}
	if cols[colName] < 0 || cols[colQuantity] < 0 {
		return nil, ErrMissingColumns
	}
	return cols, nil
}

// parseQuantity accepts "12.5", "12,5" and "1.234,5".
func parseQuantity(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return decimal.Zero, errors.New("quantity is empty")
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	q, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid quantity %q", s)
	}
	return q, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
