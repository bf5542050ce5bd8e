package repository

import (
	"context"

	"github.com/wayra/taller-api/internal/domain/entity"
)

// OrderRepository puerto de persistencia para órdenes de trabajo y sus líneas.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateService(line *entity.OrderService) error
	CreateProduct(line *entity.OrderProduct) error
	CreateExternalPart(line *entity.ExternalPart) error
	GetByID(id string) (*entity.Order, error)
	// GetWithLines carga la orden con servicios, productos y repuestos externos.
	GetWithLines(id string) (*entity.Order, error)
	Update(order *entity.Order) error
	List(status string, limit, offset int) ([]*entity.Order, error)
}

// OrderCounterRepository secuencias de códigos legibles. El upsert con
// RETURNING evita la carrera leer-último-e-incrementar bajo creación
// concurrente: la fila (scope, year, month) serializa el contador.
type OrderCounterRepository interface {
	NextSequence(ctx context.Context, scope string, year, month int) (int, error)
}

// Ámbitos de los contadores.
const (
	CounterScopeOrder   = "ORD"
	CounterScopeInvoice = "FAC"
)
