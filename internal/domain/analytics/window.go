// Package analytics calcula las ventanas de comparación del dashboard:
// últimos 30 días contra los 30 días anteriores.
package analytics

import (
	"math"
	"time"
)

// WindowDays tamaño de cada ventana de comparación.
const WindowDays = 30

// Window rango semiabierto [From, To).
type Window struct {
	From time.Time
	To   time.Time
}

// Windows devuelve la ventana actual [now-30d, now) y la anterior [now-60d, now-30d).
func Windows(now time.Time) (current, previous Window) {
	span := time.Duration(WindowDays) * 24 * time.Hour
	current = Window{From: now.Add(-span), To: now}
	previous = Window{From: now.Add(-2 * span), To: now.Add(-span)}
	return current, previous
}

// PercentChange variación porcentual redondeada al entero más cercano
// (las mitades se redondean hacia +∞). Con previous = 0 devuelve 100 si
// current > 0 y 0 en otro caso.
func PercentChange(current, previous int) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	pct := float64(current-previous) / float64(previous) * 100
	return int(math.Floor(pct + 0.5))
}

// Comparison conteo actual, anterior y variación de una métrica.
type Comparison struct {
	Current  int `json:"current"`
	Previous int `json:"previous"`
	Change   int `json:"change"`
}

// Compare arma la comparación de una métrica.
func Compare(current, previous int) Comparison {
	return Comparison{Current: current, Previous: previous, Change: PercentChange(current, previous)}
}

// Counts conteos por estado dentro de una ventana.
type Counts struct {
	Delivered int
	Returned  int
	InTransit int
}

// Total suma de los conteos.
func (c Counts) Total() int {
	return c.Delivered + c.Returned + c.InTransit
}

// Stats comparación completa entre dos ventanas.
type Stats struct {
	Delivered Comparison `json:"delivered"`
	Returned  Comparison `json:"returned"`
	InTransit Comparison `json:"inTransit"`
	Total     Comparison `json:"total"`
}

// Build compara dos ventanas. La variación total se calcula sobre la suma de
// los conteos, no como promedio de las variaciones individuales.
func Build(current, previous Counts) Stats {
	return Stats{
		Delivered: Compare(current.Delivered, previous.Delivered),
		Returned:  Compare(current.Returned, previous.Returned),
		InTransit: Compare(current.InTransit, previous.InTransit),
		Total:     Compare(current.Total(), previous.Total()),
	}
}
