// Package memstore implementa los puertos de persistencia en memoria para
// los tests de casos de uso y handlers.
package memstore

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-api/internal/application/ports"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/analytics"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var (
	_ repository.UserRepository      = (*Store)(nil)
	_ repository.DeliveryRepository  = (*Deliveries)(nil)
	_ repository.CodRepository       = (*Deliveries)(nil)
	_ repository.AnalyticsRepository = (*Deliveries)(nil)
	_ repository.CodReportRepository = (*Reports)(nil)
	_ repository.SettingsRepository  = (*Settings)(nil)
	_ ports.Cache                    = (*Cache)(nil)
)

// Store usuarios en memoria.
type Store struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

// NewStore crea un almacén de usuarios vacío.
func NewStore() *Store {
	return &Store{users: map[string]*entity.User{}}
}

func (s *Store) Create(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, x := range s.users {
		if x.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *Store) GetByID(_ context.Context, id string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s *Store) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Store) Update(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *Store) List(_ context.Context, role string, limit, offset int) ([]*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.User
	for _, u := range s.users {
		if role == "" || u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return page(out, limit, offset), nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

// Deliveries entregas en memoria. Resuelve nombres de conductor contra Users.
type Deliveries struct {
	mu    sync.Mutex
	items []*entity.Delivery
	Users *Store

	// UpdateStatusErr error a devolver al actualizar el id indicado.
	UpdateStatusErr map[string]error
	// CreateErr error a devolver al crear la referencia indicada.
	CreateErr map[string]error
}

// NewDeliveries crea un almacén vacío enlazado al de usuarios.
func NewDeliveries(users *Store) *Deliveries {
	return &Deliveries{Users: users, UpdateStatusErr: map[string]error{}, CreateErr: map[string]error{}}
}

// Seed inserta entregas sin validar unicidad.
func (s *Deliveries) Seed(ds ...*entity.Delivery) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range ds {
		cp := *d
		s.items = append(s.items, &cp)
	}
}

// All copia de todas las entregas.
func (s *Deliveries) All() []entity.Delivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Delivery, 0, len(s.items))
	for _, d := range s.items {
		out = append(out, *d)
	}
	return out
}

func (s *Deliveries) Create(_ context.Context, d *entity.Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.CreateErr[d.Reference]; err != nil {
		return err
	}
	for _, x := range s.items {
		if x.Reference == d.Reference {
			return domain.ErrDuplicate
		}
	}
	cp := *d
	s.items = append(s.items, &cp)
	return nil
}

func (s *Deliveries) find(match func(*entity.Delivery) bool) *entity.Delivery {
	for _, d := range s.items {
		if match(d) {
			return d
		}
	}
	return nil
}

func (s *Deliveries) GetByID(_ context.Context, id string) (*entity.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d := s.find(func(x *entity.Delivery) bool { return x.ID == id }); d != nil {
		cp := *d
		return &cp, nil
	}
	return nil, nil
}

func (s *Deliveries) GetByReference(_ context.Context, ref string) (*entity.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d := s.find(func(x *entity.Delivery) bool { return x.Reference == ref }); d != nil {
		cp := *d
		return &cp, nil
	}
	return nil, nil
}

func (s *Deliveries) Update(_ context.Context, d *entity.Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, x := range s.items {
		if x.ID == d.ID {
			cp := *d
			s.items[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *Deliveries) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, x := range s.items {
		if x.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Deliveries) List(_ context.Context, f repository.DeliveryFilter) ([]*entity.Delivery, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Delivery
	search := strings.ToLower(f.Search)
	for _, d := range s.items {
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		if f.CreatedByID != "" && d.CreatedByID != f.CreatedByID {
			continue
		}
		if f.AssignedDriverID != "" && (d.AssignedDriverID == nil || *d.AssignedDriverID != f.AssignedDriverID) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(d.Reference), search) &&
			!strings.Contains(strings.ToLower(d.CustomerName), search) {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, f.Limit, f.Offset), len(out), nil
}

func (s *Deliveries) UpdateStatus(_ context.Context, id, status string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.UpdateStatusErr[id]; err != nil {
		return false, err
	}
	d := s.find(func(x *entity.Delivery) bool { return x.ID == id })
	if d == nil || d.Status == status {
		return false, nil
	}
	d.Status = status
	d.UpdatedAt = time.Now()
	return true, nil
}

func (s *Deliveries) AssignDriver(_ context.Context, id, driverID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.find(func(x *entity.Delivery) bool { return x.ID == id })
	if d == nil {
		return domain.ErrNotFound
	}
	d.AssignedDriverID = &driverID
	if d.Status == entity.DeliveryStatusPending {
		d.Status = entity.DeliveryStatusAssigned
	}
	return nil
}

func (s *Deliveries) cod(f repository.CodFilter) []*entity.Delivery {
	var out []*entity.Delivery
	for _, d := range s.items {
		if d.PaymentMethod != entity.PaymentCOD {
			continue
		}
		if d.CreatedAt.Before(f.From) || d.CreatedAt.After(f.To) {
			continue
		}
		if f.CreatedByID != "" && d.CreatedByID != f.CreatedByID {
			continue
		}
		out = append(out, d)
	}
	return out
}

func (s *Deliveries) Totals(_ context.Context, f repository.CodFilter) (repository.CodTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := repository.CodTotals{
		TotalAmount: decimal.Zero, PendingAmount: decimal.Zero,
		CollectedAmount: decimal.Zero, TotalFees: decimal.Zero,
	}
	for _, d := range s.cod(f) {
		t.Count++
		t.TotalAmount = t.TotalAmount.Add(d.CODAmount)
		t.TotalFees = t.TotalFees.Add(d.DeliveryFee)
		switch d.Status {
		case entity.DeliveryStatusPending, entity.DeliveryStatusAssigned, entity.DeliveryStatusInTransit:
			t.PendingAmount = t.PendingAmount.Add(d.CODAmount)
		case entity.DeliveryStatusDelivered:
			t.CollectedAmount = t.CollectedAmount.Add(d.CODAmount)
		}
	}
	return t, nil
}

func (s *Deliveries) Rows(_ context.Context, f repository.CodFilter) ([]repository.CodRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.cod(f)
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	out := make([]repository.CodRow, 0, len(list))
	for _, d := range list {
		driver := "Unassigned"
		if d.AssignedDriverID != nil && s.Users != nil {
			if u, _ := s.Users.GetByID(context.Background(), *d.AssignedDriverID); u != nil && u.DisplayName() != "" {
				driver = u.DisplayName()
			}
		}
		out = append(out, repository.CodRow{
			Reference:       d.Reference,
			CustomerName:    d.CustomerName,
			CustomerPhone:   d.CustomerPhone,
			DeliveryAddress: d.DeliveryAddress,
			CODAmount:       d.CODAmount,
			DeliveryFee:     d.DeliveryFee,
			Status:          d.Status,
			DriverName:      driver,
			CreatedAt:       d.CreatedAt,
		})
	}
	return out, nil
}

func (s *Deliveries) CountByStatus(_ context.Context, createdBy string, from, to time.Time) (analytics.Counts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var c analytics.Counts
	for _, d := range s.items {
		if createdBy != "" && d.CreatedByID != createdBy {
			continue
		}
		if d.CreatedAt.Before(from) || !d.CreatedAt.Before(to) {
			continue
		}
		switch d.Status {
		case entity.DeliveryStatusDelivered:
			c.Delivered++
		case entity.DeliveryStatusReturned:
			c.Returned++
		case entity.DeliveryStatusInTransit:
			c.InTransit++
		}
	}
	return c, nil
}

// Reports reportes COD en memoria.
type Reports struct {
	mu    sync.Mutex
	items []*entity.CodReport
}

// NewReports crea un almacén vacío.
func NewReports() *Reports { return &Reports{} }

func (s *Reports) Create(_ context.Context, r *entity.CodReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, x := range s.items {
		if x.UserID == r.UserID && x.Name == r.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *r
	s.items = append(s.items, &cp)
	return nil
}

func (s *Reports) GetByID(_ context.Context, id string) (*entity.CodReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, x := range s.items {
		if x.ID == id {
			cp := *x
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Reports) List(_ context.Context, userID string) ([]*entity.CodReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.CodReport
	for _, x := range s.items {
		if userID == "" || x.UserID == userID {
			cp := *x
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *Reports) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, x := range s.items {
		if x.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return nil
}

// Settings documento único en memoria, creado en la primera lectura.
type Settings struct {
	mu    sync.Mutex
	doc   *entity.Settings
	Reads int
}

// NewSettings crea el almacén sin documento.
func NewSettings() *Settings { return &Settings{} }

func (s *Settings) Get(context.Context) (*entity.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reads++
	if s.doc == nil {
		d := entity.DefaultSettings()
		d.UpdatedAt = time.Now()
		s.doc = &d
	}
	cp := *s.doc
	return &cp, nil
}

func (s *Settings) Update(_ context.Context, st *entity.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *st
	s.doc = &cp
	return nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// Cache implementación de ports.Cache sobre un mapa. Serializa como JSON igual
// que la caché real, para que los tests detecten campos que no sobreviven.
type Cache struct {
	mu   sync.Mutex
	data map[string][]byte
	Hits int
	Sets int
}

// NewCache crea una caché vacía.
func NewCache() *Cache { return &Cache{data: map[string][]byte{}} }

func (c *Cache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	c.Hits++
	return true, json.Unmarshal(raw, dest)
}

func (c *Cache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.Sets++
	c.data[key] = raw
	return nil
}

func (c *Cache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *Cache) DeleteByPrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

// Has indica si la clave está guardada.
func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}
