package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/wayra/taller-api/internal/application/dto"
	"github.com/wayra/taller-api/internal/domain"
	"github.com/wayra/taller-api/internal/domain/entity"
	"github.com/wayra/taller-api/internal/domain/repository"
)

// ClientUseCase casos de uso CRUD para clientes y sus vehículos.
type ClientUseCase struct {
	clientRepo  repository.ClientRepository
	vehicleRepo repository.VehicleRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(clientRepo repository.ClientRepository, vehicleRepo repository.VehicleRepository) *ClientUseCase {
	return &ClientUseCase{clientRepo: clientRepo, vehicleRepo: vehicleRepo}
}

// Create registra un cliente. El documento (tipo + número) es único.
func (uc *ClientUseCase) Create(in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" || in.DocumentType == "" || in.DocumentNum == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.clientRepo.GetByDocument(in.DocumentType, in.DocumentNum)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	client := &entity.Client{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Phone:        in.Phone,
		Email:        in.Email,
		DocumentType: in.DocumentType,
		DocumentNum:  in.DocumentNum,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente.
func (uc *ClientUseCase) GetByID(id string) (*dto.ClientResponse, error) {
	client, err := uc.clientRepo.GetByID(id)
	if err != nil || client == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// Update actualiza los datos de contacto de un cliente. El documento no cambia.
func (uc *ClientUseCase) Update(id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.clientRepo.GetByID(id)
	if err != nil || client == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		client.Name = in.Name
	}
	if in.Phone != "" {
		client.Phone = in.Phone
	}
	if in.Email != "" {
		client.Email = in.Email
	}
	client.UpdatedAt = time.Now()
	if err := uc.clientRepo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List lista clientes con paginación.
func (uc *ClientUseCase) List(page dto.PageRequest) ([]dto.ClientResponse, error) {
	page.DefaultPage()
	clients, err := uc.clientRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, *toClientResponse(c))
	}
	return out, nil
}

// AddVehicle registra un vehículo de un cliente. La placa es única.
func (uc *ClientUseCase) AddVehicle(clientID string, in dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	if in.Plate == "" {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil || client == nil {
		return nil, domain.ErrNotFound
	}
	if existing, _ := uc.vehicleRepo.GetByPlate(in.Plate); existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	vehicle := &entity.Vehicle{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		Plate:     in.Plate,
		Brand:     in.Brand,
		Model:     in.Model,
		Year:      in.Year,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.vehicleRepo.Create(vehicle); err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

// UpdateVehicle actualiza marca, modelo o año de un vehículo del cliente.
// La placa no cambia. Devuelve ErrNotFound si el vehículo no es del cliente.
func (uc *ClientUseCase) UpdateVehicle(clientID, vehicleID string, in dto.UpdateVehicleRequest) (*dto.VehicleResponse, error) {
	vehicle, err := uc.vehicleRepo.GetByID(vehicleID)
	if err != nil || vehicle == nil || vehicle.ClientID != clientID {
		return nil, domain.ErrNotFound
	}
	if in.Brand != "" {
		vehicle.Brand = in.Brand
	}
	if in.Model != "" {
		vehicle.Model = in.Model
	}
	if in.Year != 0 {
		vehicle.Year = in.Year
	}
	vehicle.UpdatedAt = time.Now()
	if err := uc.vehicleRepo.Update(vehicle); err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

// ListVehicles lista los vehículos de un cliente.
func (uc *ClientUseCase) ListVehicles(clientID string) ([]dto.VehicleResponse, error) {
	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil || client == nil {
		return nil, domain.ErrNotFound
	}
	vehicles, err := uc.vehicleRepo.ListByClient(clientID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, *toVehicleResponse(v))
	}
	return out, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:           c.ID,
		Name:         c.Name,
		Phone:        c.Phone,
		Email:        c.Email,
		DocumentType: c.DocumentType,
		DocumentNum:  c.DocumentNum,
	}
}

func toVehicleResponse(v *entity.Vehicle) *dto.VehicleResponse {
	return &dto.VehicleResponse{
		ID:       v.ID,
		ClientID: v.ClientID,
		Plate:    v.Plate,
		Brand:    v.Brand,
		Model:    v.Model,
		Year:     v.Year,
	}
}
