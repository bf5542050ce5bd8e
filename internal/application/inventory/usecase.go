package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wayra/taller-api/internal/application/dto"
	"github.com/wayra/taller-api/internal/domain"
	"github.com/wayra/taller-api/internal/domain/entity"
	"github.com/wayra/taller-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario manuales
// (ENTRADA/SALIDA) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// El stock nunca se persiste negativo: una SALIDA mayor al disponible
// revierte con ErrInsufficientStock.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.InventoryMovementRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, productRepo: productRepo, movRepo: movRepo}
}

// RegisterMovement valida y aplica un movimiento manual de inventario.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if in.ProductID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.MovementTypeEntrada && in.Type != entity.MovementTypeSalida {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	mov := &entity.InventoryMovement{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Type:      in.Type,
		UnitPrice: in.UnitPrice,
		Reason:    in.Reason,
		CreatedBy: userID,
		CreatedAt: now,
	}

	err = uc.txRunner.RunInventory(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		locked, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil || locked == nil {
			return domain.ErrNotFound
		}
		switch in.Type {
		case entity.MovementTypeEntrada:
			mov.Quantity = in.Quantity
			if err := productRepo.UpdateStock(in.ProductID, locked.Stock.Add(in.Quantity)); err != nil {
				return err
			}
		case entity.MovementTypeSalida:
			if locked.Stock.LessThan(in.Quantity) {
				return domain.ErrInsufficientStock
			}
			mov.Quantity = in.Quantity.Neg()
			if err := productRepo.UpdateStock(in.ProductID, locked.Stock.Sub(in.Quantity)); err != nil {
				return err
			}
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// ListMovements lista movimientos, opcionalmente por producto.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, productID string, page dto.PageRequest) ([]dto.MovementResponse, error) {
	page.DefaultPage()
	var (
		movs []*entity.InventoryMovement
		err  error
	)
	if productID != "" {
		movs, err = uc.movRepo.ListByProduct(productID, page.Limit, page.Offset)
	} else {
		movs, err = uc.movRepo.List(page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, *toMovementResponse(m))
	}
	return out, nil
}

func toMovementResponse(m *entity.InventoryMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		Reason:    m.Reason,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}
