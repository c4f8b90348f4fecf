package csvexport_test

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-api/internal/application/cod"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
	"github.com/jhoicas/Logistica-api/internal/infrastructure/csvexport"
)

func render(t *testing.T, rows []repository.CodRow) string {
	t.Helper()
	r := csvexport.NewRenderer(cod.NewFormatter("₹", "en-IN", "UTC"))
	out, err := r.Render(context.Background(), cod.ReportData{Rows: rows})
	require.NoError(t, err)
	return string(out)
}

func TestRender_RoundTripConComaYComillas(t *testing.T) {
	row := repository.CodRow{
		Reference:       "R-1",
		CustomerName:    `Ana "La Rápida"`,
		CustomerPhone:   "+91 98765 43210",
		DeliveryAddress: "123 Main St, Apt 4",
		CODAmount:       decimal.RequireFromString("1250.5"),
		DeliveryFee:     decimal.NewFromInt(40),
		Status:          "delivered",
		DriverName:      "Unassigned",
		CreatedAt:       time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC),
	}
	out := render(t, []repository.CodRow{row})

	assert.Contains(t, out, `"123 Main St, Apt 4"`, "el campo con coma va entre comillas")
	assert.Contains(t, out, `"Ana ""La Rápida"""`, "las comillas internas se duplican")
	assert.False(t, strings.HasSuffix(out, "\n"))

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, csvexport.Header, records[0])
	assert.Equal(t, []string{
		"R-1", `Ana "La Rápida"`, "+91 98765 43210", "123 Main St, Apt 4",
		"1250.5", "40", "delivered", "Unassigned", "05/03/2026",
	}, records[1])
}

func TestRender_SinFilasSoloCabecera(t *testing.T) {
	out := render(t, nil)

	assert.Equal(t, `"Reference","Customer Name","Customer Phone","Delivery Address","COD Amount","Delivery Fee","Status","Driver","Created At"`, out)
}

func TestRenderer_Metadatos(t *testing.T) {
	r := csvexport.NewRenderer(cod.NewFormatter("₹", "en-IN", "UTC"))
	assert.Equal(t, "text/csv", r.ContentType())
	assert.Equal(t, "csv", r.Extension())
}
