package entity

import "time"

// Client representa un cliente del taller o del almacén de repuestos.
type Client struct {
	ID           string
	Name         string
	Phone        string
	Email        string
	DocumentType string // CC | NIT | CE
	DocumentNum  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Vehicle representa un vehículo de un cliente. La placa es la llave de negocio.
type Vehicle struct {
	ID        string
	ClientID  string
	Plate     string
	Brand     string
	Model     string
	Year      int
	CreatedAt time.Time
	UpdatedAt time.Time
}
