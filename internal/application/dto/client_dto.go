package dto

// CreateClientRequest body para POST /api/clientes.
type CreateClientRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	DocumentType string `json:"document_type"`
	DocumentNum  string `json:"document_num"`
}

// UpdateClientRequest body para PUT /api/clientes/:id. Campos vacíos no cambian.
// El documento es inmutable: identifica al cliente.
type UpdateClientRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	DocumentType string `json:"document_type"`
	DocumentNum  string `json:"document_num"`
}

// CreateVehicleRequest body para POST /api/clientes/:id/vehiculos.
type CreateVehicleRequest struct {
	Plate string `json:"plate"`
	Brand string `json:"brand"`
	Model string `json:"model"`
	Year  int    `json:"year"`
}

// UpdateVehicleRequest body para PUT /api/clientes/:id/vehiculos/:vehicleId.
// La placa es inmutable; campos vacíos no cambian.
type UpdateVehicleRequest struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Year  int    `json:"year"`
}

// VehicleResponse vehículo en respuestas.
type VehicleResponse struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`
	Plate    string `json:"plate"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Year     int    `json:"year"`
}
