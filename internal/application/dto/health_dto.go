package dto

import "time"

// HealthStatus estado del servicio.
type HealthStatus struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Uptime      float64   `json:"uptime"` // segundos
	Database    string    `json:"database"`
	Environment string    `json:"environment"`
}
