package entity

import (
	"encoding/json"
	"time"
)

// Estados de un encarte.
const (
	FlyerStatusDraft = "draft"
)

// Flyer encarte: layout libre (Configuration) opcionalmente asociado a un cliente.
// ClientName se rellena en lecturas con join.
type Flyer struct {
	ID            string
	Name          string
	ClientID      *string
	ClientName    *string
	ThumbnailURL  string
	Status        string
	Configuration json.RawMessage
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
