package entity

import "time"

// Client cliente (supermercado, loja) para el que se producen encartes.
type Client struct {
	ID        string
	Name      string
	CNPJ      string
	LogoURL   string
	Contacts  []ClientContact
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClientContact persona de contacto de un cliente (se borra en cascada con él).
type ClientContact struct {
	ID       string
	ClientID string
	Name     string
	Role     string
	Email    string
	Phone    string
}
