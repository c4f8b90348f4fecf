// Package analytics contiene el caso de uso del dashboard: comparación de los
// últimos 30 días contra los 30 anteriores.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/application/ports"
	domainanalytics "github.com/jhoicas/Logistica-api/internal/domain/analytics"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
	"github.com/jhoicas/Logistica-api/pkg/logger"
)

// DashboardUseCase genera las estadísticas de ventana del dashboard.
//
// Fuente de datos: AnalyticsRepository (consultas read-only). El resultado se
// guarda en caché por usuario durante ttl.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	cache         ports.Cache
	ttl           time.Duration
	log           *logger.Logger
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, cache ports.Cache, ttl time.Duration, log *logger.Logger) *DashboardUseCase {
	if cache == nil {
		cache = ports.NopCache{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{analyticsRepo: analyticsRepo, cache: cache, ttl: ttl, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetStats devuelve la comparación de ventanas para las entregas del actor y,
// si es admin, también la global.
//
// Consultas en paralelo:
//  1. conteos del actor, ventana actual
//  2. conteos del actor, ventana anterior
//  3. y 4. lo mismo sin filtro de creador (solo admin)
func (uc *DashboardUseCase) GetStats(ctx context.Context, actor entity.Actor) (*dto.DashboardStatsDTO, error) {
	key := ports.DashboardKeyPrefix + actor.UserID
	var cached dto.DashboardStatsDTO
	if found, err := uc.cache.Get(ctx, key, &cached); err != nil {
		uc.log.Warn().Err(err).Msg("caché del dashboard no disponible")
	} else if found {
		return &cached, nil
	}

	now := uc.now()
	current, previous := domainanalytics.Windows(now)

	// ── Goroutines para paralelizar los conteos ───────────────────────────────
	type countsResult struct {
		counts domainanalytics.Counts
		err    error
	}
	count := func(createdBy string, w domainanalytics.Window) <-chan countsResult {
		ch := make(chan countsResult, 1)
		go func() {
			c, err := uc.analyticsRepo.CountByStatus(ctx, createdBy, w.From, w.To)
			ch <- countsResult{c, err}
		}()
		return ch
	}

	mineCurCh := count(actor.UserID, current)
	minePrevCh := count(actor.UserID, previous)
	var globalCurCh, globalPrevCh <-chan countsResult
	if actor.IsAdmin() {
		globalCurCh = count("", current)
		globalPrevCh = count("", previous)
	}

	mineCur, minePrev := <-mineCurCh, <-minePrevCh
	if mineCur.err != nil {
		return nil, fmt.Errorf("dashboard: ventana actual: %w", mineCur.err)
	}
	if minePrev.err != nil {
		return nil, fmt.Errorf("dashboard: ventana anterior: %w", minePrev.err)
	}

	out := &dto.DashboardStatsDTO{
		WindowDays:   domainanalytics.WindowDays,
		CurrentFrom:  current.From,
		CurrentTo:    current.To,
		PreviousFrom: previous.From,
		Mine:         domainanalytics.Build(mineCur.counts, minePrev.counts),
		GeneratedAt:  now,
	}

	if actor.IsAdmin() {
		globalCur, globalPrev := <-globalCurCh, <-globalPrevCh
		if globalCur.err != nil {
			return nil, fmt.Errorf("dashboard: ventana actual global: %w", globalCur.err)
		}
		if globalPrev.err != nil {
			return nil, fmt.Errorf("dashboard: ventana anterior global: %w", globalPrev.err)
		}
		global := domainanalytics.Build(globalCur.counts, globalPrev.counts)
		out.Global = &global
	}

	if err := uc.cache.Set(ctx, key, out, uc.ttl); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo guardar el dashboard en caché")
	}
	return out, nil
}
