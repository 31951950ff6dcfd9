package entity

import "time"

// Font fuente tipográfica subida por el usuario.
type Font struct {
	ID        string
	Family    string
	Weight    string
	Style     string
	FileURL   string
	CreatedAt time.Time
}
