package excel_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Logistica-api/internal/application/cod"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
	"github.com/jhoicas/Logistica-api/internal/infrastructure/excel"
)

func open(t *testing.T, rows []repository.CodRow) *excelize.File {
	t.Helper()
	r := excel.NewRenderer(cod.NewFormatter("₹", "en-IN", "UTC"))
	out, err := r.Render(context.Background(), cod.ReportData{Rows: rows})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestRender_HojaUnicaConCabeceraYFilas(t *testing.T) {
	f := open(t, []repository.CodRow{{
		Reference:       "R-1",
		CustomerName:    "Ana",
		CustomerPhone:   "9876543210",
		DeliveryAddress: "123 Main St, Apt 4",
		CODAmount:       decimal.RequireFromString("1250.5"),
		DeliveryFee:     decimal.Zero,
		Status:          "pending",
		DriverName:      "Unassigned",
		CreatedAt:       time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC),
	}})

	assert.Equal(t, []string{excel.SheetName}, f.GetSheetList())

	rows, err := f.GetRows(excel.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Reference", rows[0][0])
	assert.Equal(t, "Created At", rows[0][8])
	assert.Equal(t, []string{
		"R-1", "Ana", "9876543210", "123 Main St, Apt 4",
		"1250.5", "0", "pending", "Unassigned", "05/03/2026",
	}, rows[1])
}

func TestRender_AnchosFijosYCabeceraEnNegrita(t *testing.T) {
	f := open(t, nil)

	width, err := f.GetColWidth(excel.SheetName, "D")
	require.NoError(t, err)
	assert.Equal(t, 40.0, width)

	styleID, err := f.GetCellStyle(excel.SheetName, "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
	assert.Equal(t, "center", style.Alignment.Horizontal)

	rows, err := f.GetRows(excel.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "sin entregas solo queda la cabecera")
}
