package dto

import (
	"time"

	"github.com/jhoicas/Logistica-api/internal/domain/analytics"
)

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
// Mine: entregas creadas por el usuario. Global: todas (solo admin).
type DashboardStatsDTO struct {
	WindowDays   int              `json:"window_days"`
	CurrentFrom  time.Time        `json:"current_from"`
	CurrentTo    time.Time        `json:"current_to"`
	PreviousFrom time.Time        `json:"previous_from"`
	Mine         analytics.Stats  `json:"mine"`
	Global       *analytics.Stats `json:"global,omitempty"`
	GeneratedAt  time.Time        `json:"generated_at"`
}
