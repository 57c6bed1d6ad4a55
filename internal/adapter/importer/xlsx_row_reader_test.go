package importer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"cotacao_service/internal/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cellName, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestXLSXRowReader_ReadRows(t *testing.T) {
	t.Run("portuguese header with blank rows", func(t *testing.T) {
		buf := workbook(t, [][]any{
			{""},
			{"Descrição", "Qtde", "Unidade", "Prazo de Entrega"},
			{"Arroz Tipo 1", "5", "kg", "7 dias"},
			{"", "", "", ""},
			{"Feijão", "1.234,5", "KG", ""},
		})

		rows, err := NewXLSXRowReader().ReadRows(buf)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}
		if rows[0].Name != "Arroz Tipo 1" || !rows[0].Quantity.Equal(decimal.NewFromInt(5)) || rows[0].Unit != "kg" || rows[0].DeliveryTerm != "7 dias" {
			t.Fatalf("unexpected first row: %+v", rows[0])
		}
		if !rows[1].Quantity.Equal(decimal.RequireFromString("1234.5")) {
			t.Fatalf("expected 1234.5, got %s", rows[1].Quantity)
		}
	})

	t.Run("english header in any order", func(t *testing.T) {
		buf := workbook(t, [][]any{
			{"Unit", "Quantity", "Product"},
			{"box", 3, "Gloves"},
		})

		rows, err := NewXLSXRowReader().ReadRows(buf)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 1 || rows[0].Name != "Gloves" || rows[0].Unit != "box" || !rows[0].Quantity.Equal(decimal.NewFromInt(3)) {
			t.Fatalf("unexpected rows: %+v", rows)
		}
	})

	t.Run("missing quantity column", func(t *testing.T) {
		buf := workbook(t, [][]any{{"Produto", "Unidade"}, {"Arroz", "kg"}})
		_, err := NewXLSXRowReader().ReadRows(buf)
		if !errors.Is(err, ErrMissingColumns) || !errors.Is(err, entities.ErrValidation) {
			t.Fatalf("expected ErrMissingColumns, got %v", err)
		}
	})

	t.Run("bad quantity names the row", func(t *testing.T) {
		buf := workbook(t, [][]any{{"Produto", "Qtd"}, {"Arroz", "cinco"}})
		_, err := NewXLSXRowReader().ReadRows(buf)
		if !errors.Is(err, entities.ErrValidation) || !strings.Contains(err.Error(), "row 2") {
			t.Fatalf("expected validation error on row 2, got %v", err)
		}
	})

	t.Run("header only", func(t *testing.T) {
		buf := workbook(t, [][]any{{"Produto", "Qtd"}})
		if _, err := NewXLSXRowReader().ReadRows(buf); !errors.Is(err, ErrNoRows) {
			t.Fatalf("expected ErrNoRows, got %v", err)
		}
	})

	t.Run("not a workbook", func(t *testing.T) {
		if _, err := NewXLSXRowReader().ReadRows(strings.NewReader("name,qty\nrice,1\n")); !errors.Is(err, ErrInvalidWorkbook) {
			t.Fatalf("expected ErrInvalidWorkbook, got %v", err)
		}
	})
}
