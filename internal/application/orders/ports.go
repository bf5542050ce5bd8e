package orders

import (
	"context"

	"github.com/wayra/taller-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que orden, líneas, descuento de
// stock, movimientos de inventario y asientos contables se confirmen o
// reviertan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		counterRepo repository.OrderCounterRepository,
		accRepo repository.AccountingRepository,
	) error) error
}
