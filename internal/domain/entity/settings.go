package entity

import "time"

// Settings configuración global del sistema. Existe exactamente una fila.
type Settings struct {
	SystemName         string
	TimeZone           string
	Language           string
	MaintenanceMode    bool
	AllowRegistration  bool
	DefaultRole        string
	DeliveryRadiusKm   int
	DeliveryHoursStart string // HH:MM
	DeliveryHoursEnd   string // HH:MM
	RealTimeTracking   bool
	AutoAssign         bool
	UpdatedAt          time.Time
}

// DefaultSettings valores con los que se crea el documento la primera vez.
func DefaultSettings() Settings {
	return Settings{
		SystemName:         "Logistica",
		TimeZone:           "Asia/Kolkata",
		Language:           "en",
		AllowRegistration:  true,
		DefaultRole:        RoleCustomer,
		DeliveryRadiusKm:   25,
		DeliveryHoursStart: "09:00",
		DeliveryHoursEnd:   "21:00",
	}
}
