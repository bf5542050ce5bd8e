package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/wayra/taller-api/internal/domain"
	"github.com/wayra/taller-api/internal/domain/entity"
	"github.com/wayra/taller-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, code, name, category, business_entity, channel,
		purchase_price, purchase_currency, sale_price, wholesale_price, retail_price,
		stock, min_stock, active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Category, &p.BusinessEntity, &p.Channel,
		&p.PurchasePrice, &p.PurchaseCurrency, &p.SalePrice, &p.WholesalePrice, &p.RetailPrice,
		&p.Stock, &p.MinStock, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Code, product.Name, product.Category, product.BusinessEntity, product.Channel,
		product.PurchasePrice, product.PurchaseCurrency, product.SalePrice, product.WholesalePrice, product.RetailPrice,
		product.Stock, product.MinStock, product.Active, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.q.QueryRow(context.Background(), query, id))
}

// GetByCode obtiene un producto por código.
func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE code = $1`
	return scanProduct(r.q.QueryRow(context.Background(), query, code))
}

// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para evitar
// condiciones de carrera en el descuento de stock. Usar dentro de una tx.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return scanProduct(r.q.QueryRow(context.Background(), query, id))
}

// Update actualiza un producto existente. Stock no se toca aquí (ver UpdateStock).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, category = $3, purchase_price = $4,
			sale_price = $5, wholesale_price = $6, retail_price = $7,
			min_stock = $8, active = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Category, product.PurchasePrice,
		product.SalePrice, product.WholesalePrice, product.RetailPrice,
		product.MinStock, product.Active, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock actualiza solo el stock del producto (usado por el motor de inventario).
func (r *ProductRepo) UpdateStock(id string, stock decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`,
		id, stock,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// UpdatePrices actualiza solo los precios de venta del producto.
func (r *ProductRepo) UpdatePrices(id string, sale, wholesale, retail decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET sale_price = $2, wholesale_price = $3, retail_price = $4, updated_at = now() WHERE id = $1`,
		id, sale, wholesale, retail,
	)
	if err != nil {
		return fmt.Errorf("update product prices: %w", err)
	}
	return nil
}

// List lista productos con paginación.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListLowStock lista productos activos con stock en o bajo el mínimo.
func (r *ProductRepo) ListLowStock() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE active AND stock <= min_stock ORDER BY stock ASC`
	return r.list(query)
}

func (r *ProductRepo) list(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Reprice recalcula en bloque los precios de venta de los productos activos de
// una entidad (y canal, si se indica) a partir del costo de compra:
//
//	venta     = costo_convertido × (1 + margen/100)
//	mayorista = venta × (1 − descuento/100)
//	detal     = venta
//
// El costo de la línea importada (canal CALAN con compra en USD) se convierte
// primero con la tasa de cambio. Devuelve el número exacto de filas
// actualizadas.
func (r *ProductRepo) Reprice(ctx context.Context, businessEntity, channel string, exchangeRate, marginPct, discountPct decimal.Decimal) (int64, error) {
	const query = `
	UPDATE products SET
	    sale_price = ROUND(
	        (CASE WHEN channel = 'CALAN' AND purchase_currency = 'USD' THEN purchase_price * $3 ELSE purchase_price END)
	        * (1 + $4 / 100), 2),
	    wholesale_price = ROUND(
	        (CASE WHEN channel = 'CALAN' AND purchase_currency = 'USD' THEN purchase_price * $3 ELSE purchase_price END)
	        * (1 + $4 / 100) * (1 - $5 / 100), 2),
	    retail_price = ROUND(
	        (CASE WHEN channel = 'CALAN' AND purchase_currency = 'USD' THEN purchase_price * $3 ELSE purchase_price END)
	        * (1 + $4 / 100), 2),
	    updated_at = now()
	WHERE active
	  AND business_entity = $1
	  AND ($2 = '' OR channel = $2)`

	cmd, err := r.q.Exec(ctx, query, businessEntity, channel, exchangeRate, marginPct, discountPct)
	if err != nil {
		return 0, fmt.Errorf("reprice products: %w", err)
	}
	return cmd.RowsAffected(), nil
}
