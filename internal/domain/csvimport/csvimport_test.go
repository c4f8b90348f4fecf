package csvimport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/csvimport"
)

// ──────────────────────────────────────────────────────────────────────────────
// Parse
// ──────────────────────────────────────────────────────────────────────────────

func TestParse_ContenidoVacio(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\r\n  \r"} {
		_, err := csvimport.Parse(content, csvimport.KindStatusUpdate)
		assert.ErrorIs(t, err, domain.ErrEmptyInput, "contenido %q debe ser ErrEmptyInput", content)
	}
}

func TestParse_TipoDesconocido(t *testing.T) {
	_, err := csvimport.Parse("a,b", csvimport.Kind("otro"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParse_SaltosDeLineaMixtos(t *testing.T) {
	p, err := csvimport.Parse("id,status\r\nA1,delivered\rA2,returned\n\n  A3 , pending  \n", csvimport.KindStatusUpdate)
	require.NoError(t, err)

	assert.True(t, p.HasHeader)
	require.Len(t, p.Rows, 3)
	assert.Equal(t, []string{"A3", "pending"}, p.Rows[2].Values, "los campos se recortan")
	assert.Equal(t, 0, p.Rows[0].Index)
	assert.Equal(t, 1, p.Rows[0].RowNumber)
	assert.Equal(t, 3, p.Rows[2].RowNumber)
}

func TestParse_StatusSinCabecera(t *testing.T) {
	p, err := csvimport.Parse("A1,delivered\nA2,returned", csvimport.KindStatusUpdate)
	require.NoError(t, err)

	assert.False(t, p.HasHeader, "una primera línea sin 'id' y 'status' es dato")
	assert.Len(t, p.Rows, 2)
}

func TestParse_DeliveryCabeceraPorPalabraClave(t *testing.T) {
	p, err := csvimport.Parse("Reference,Name,Tel\nR1,Ana,9876543210", csvimport.KindDeliveryBatch)
	require.NoError(t, err)

	assert.True(t, p.HasHeader)
	assert.Equal(t, []string{"Reference", "Name", "Tel"}, p.Columns)
	require.Len(t, p.Rows, 1)
	assert.Equal(t, "R1", p.Rows[0].Value(csvimport.ColReference))
}

func TestParse_DeliveryPrimeraLineaEsDato(t *testing.T) {
	p, err := csvimport.Parse("R1,Ana,9876543210,MG Road", csvimport.KindDeliveryBatch)
	require.NoError(t, err)

	assert.False(t, p.HasHeader, "más de 3 campos no vacíos sin palabras clave es un dato")
	assert.Equal(t, []string{"col1", "col2", "col3", "col4"}, p.Columns)
	require.Len(t, p.Rows, 1)
	assert.Equal(t, 0, p.Rows[0].Index)
}

func TestParse_DeliveryPocosCamposEsCabecera(t *testing.T) {
	p, err := csvimport.Parse("a,b,c\nR1,Ana,9876543210", csvimport.KindDeliveryBatch)
	require.NoError(t, err)

	assert.True(t, p.HasHeader, "3 o menos campos sin palabras clave se tratan como cabecera")
	assert.Len(t, p.Rows, 1)
}

func TestParse_SoloCabecera(t *testing.T) {
	p, err := csvimport.Parse("id,status\n", csvimport.KindStatusUpdate)
	require.NoError(t, err)
	assert.Empty(t, p.Rows)
}

// ──────────────────────────────────────────────────────────────────────────────
// AcceptStatusRows
// ──────────────────────────────────────────────────────────────────────────────

func TestAcceptStatusRows_DescartaSinMotivo(t *testing.T) {
	p, err := csvimport.Parse("id,status\nA1,delivered\nA2,bogus\nA3,returned,extra\nA4,Delivered\nA5,in_transit", csvimport.KindStatusUpdate)
	require.NoError(t, err)

	got := csvimport.AcceptStatusRows(p.Rows)

	require.Len(t, got, 2, "solo A1 y A5 son aceptadas")
	assert.Equal(t, csvimport.StatusUpdate{RowNumber: 1, ID: "A1", Status: "delivered"}, got[0])
	assert.Equal(t, "A5", got[1].ID)
	assert.Equal(t, 5, got[1].RowNumber)
}

func TestAcceptStatusRows_IdVacioSeAcepta(t *testing.T) {
	p, err := csvimport.Parse("id,status\n,delivered\nX9,delivered", csvimport.KindStatusUpdate)
	require.NoError(t, err)

	got := csvimport.AcceptStatusRows(p.Rows)

	require.Len(t, got, 2, "el id vacío no es motivo de descarte")
	assert.Equal(t, "", got[0].ID)
	assert.Equal(t, "X9", got[1].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidateDeliveryRows
// ──────────────────────────────────────────────────────────────────────────────

func parseDelivery(t *testing.T, lines string) []csvimport.Row {
	t.Helper()
	p, err := csvimport.Parse("reference,customerName,customerPhone,deliveryAddress\n"+lines, csvimport.KindDeliveryBatch)
	require.NoError(t, err)
	return p.Rows
}

func TestValidateDeliveryRows_FilaCompleta(t *testing.T) {
	rows, sum := csvimport.ValidateDeliveryRows(parseDelivery(t,
		"R1,Ana,+91 98765-43210,MG Road,box,books,EXPRESS,COD,50,1200,fragile,Warehouse 1"))

	require.Len(t, rows, 1)
	assert.True(t, rows[0].Valid, rows[0].Reason)
	assert.Empty(t, rows[0].Reason)
	assert.Equal(t, "express", rows[0].Value(csvimport.ColPriority))
	assert.Equal(t, "cod", rows[0].Value(csvimport.ColPaymentMethod))
	assert.Equal(t, csvimport.Summary{Total: 1, Valid: 1, Invalid: 0}, sum)
}

func TestValidateDeliveryRows_CamposFaltantesEnOrden(t *testing.T) {
	rows, sum := csvimport.ValidateDeliveryRows(parseDelivery(t, ",,,MG Road\nR2"))

	require.Len(t, rows, 2)
	assert.False(t, rows[0].Valid)
	assert.Equal(t, "faltan campos obligatorios: reference, customerName, customerPhone", rows[0].Reason)
	assert.Equal(t, "faltan campos obligatorios: customerName, customerPhone", rows[1].Reason,
		"las posiciones ausentes también se nombran")
	assert.Equal(t, 2, sum.Invalid)
}

func TestValidateDeliveryRows_TelefonoInvalidoSeConcatena(t *testing.T) {
	rows, _ := csvimport.ValidateDeliveryRows(parseDelivery(t, ",Ana,abc"))

	require.Len(t, rows, 1)
	assert.Equal(t, "faltan campos obligatorios: reference; teléfono inválido: abc", rows[0].Reason)
}

func TestValidateDeliveryRows_PrioridadDesconocidaSeCoerciona(t *testing.T) {
	rows, _ := csvimport.ValidateDeliveryRows(parseDelivery(t, "R1,Ana,9876543210,addr,box,desc,urgent"))

	require.True(t, rows[0].Valid)
	assert.Equal(t, "standard", rows[0].Value(csvimport.ColPriority))

	again, _ := csvimport.ValidateDeliveryRows(rows)
	assert.Equal(t, rows, again, "validar dos veces produce el mismo resultado")
}

func TestValidateDeliveryRows_MetodoDePagoInvalido(t *testing.T) {
	rows, sum := csvimport.ValidateDeliveryRows(parseDelivery(t, "R1,Ana,9876543210,addr,box,desc,standard,card"))

	assert.False(t, rows[0].Valid)
	assert.Contains(t, rows[0].Reason, "método de pago inválido: card")
	assert.Equal(t, "card", rows[0].Value(csvimport.ColPaymentMethod), "los valores originales se conservan")
	assert.Equal(t, 1, sum.Invalid)
}

func TestValidateDeliveryRows_NoModificaEntrada(t *testing.T) {
	in := parseDelivery(t, "R1,Ana,9876543210,addr,box,desc,EXPRESS")
	_, _ = csvimport.ValidateDeliveryRows(in)
	assert.Equal(t, "EXPRESS", in[0].Value(csvimport.ColPriority))
}

func TestValidPhone(t *testing.T) {
	cases := map[string]bool{
		"9876543210":       true,
		"+91 (98) 765-432": true,
		"  9876543  ":      true,
		"123456":           false,
		"98765x43210":      false,
		"+1234567890123456": false,
	}
	for phone, want := range cases {
		assert.Equal(t, want, csvimport.ValidPhone(phone), phone)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// DecodeContent
// ──────────────────────────────────────────────────────────────────────────────

func TestDecodeContent_UTF8ConBOM(t *testing.T) {
	s, err := csvimport.DecodeContent([]byte("\xEF\xBB\xBFid,status"))
	require.NoError(t, err)
	assert.Equal(t, "id,status", s)
}

func TestDecodeContent_Windows1252(t *testing.T) {
	s, err := csvimport.DecodeContent([]byte("R1,Jos\xe9,9876543210"))
	require.NoError(t, err)
	assert.Equal(t, "R1,José,9876543210", s)
}
