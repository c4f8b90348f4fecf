package cod

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter formato de montos y fechas compartido por los tres exportadores.
type Formatter struct {
	symbol  string
	printer *message.Printer
	loc     *time.Location
}

// NewFormatter construye el formateador. Un locale o zona horaria inválidos
// caen en en-IN y UTC respectivamente.
func NewFormatter(symbol, locale, timeZone string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse("en-IN")
	}
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		loc = time.UTC
	}
	return &Formatter{symbol: symbol, printer: message.NewPrinter(tag), loc: loc}
}

// Number monto con separadores de miles del locale y hasta dos decimales.
func (f *Formatter) Number(d decimal.Decimal) string {
	return f.printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.MaxFractionDigits(2)))
}

// Money monto con símbolo de moneda, ej. ₹1,250.5
func (f *Formatter) Money(d decimal.Decimal) string {
	return f.symbol + f.Number(d)
}

// Date fecha dd/mm/yyyy en la zona horaria del reporte.
func (f *Formatter) Date(t time.Time) string {
	return t.In(f.loc).Format("02/01/2006")
}

// Location zona horaria del reporte.
func (f *Formatter) Location() *time.Location {
	return f.loc
}
