package repository

import "github.com/wayra/taller-api/internal/domain/entity"

// InventoryMovementRepository puerto para el registro append-only de movimientos.
type InventoryMovementRepository interface {
	Create(mov *entity.InventoryMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error)
	List(limit, offset int) ([]*entity.InventoryMovement, error)
}
