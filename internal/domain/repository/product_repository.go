package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/wayra/taller-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
// Stock se muta vía GetForUpdate + UpdateStock dentro de una transacción;
// los precios de venta vía UpdatePrices (recalculo) o Reprice (bulk).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	// Solo tiene sentido con un repositorio atado a una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(id string, stock decimal.Decimal) error
	UpdatePrices(id string, sale, wholesale, retail decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
	ListLowStock() ([]*entity.Product, error)
	// Reprice recalcula en bloque los precios de los productos de una
	// entidad/canal con las reglas de margen y descuento dadas. Devuelve el
	// número exacto de filas actualizadas. Canal vacío = todos los canales.
	Reprice(ctx context.Context, businessEntity, channel string, exchangeRate, marginPct, discountPct decimal.Decimal) (int64, error)
}
