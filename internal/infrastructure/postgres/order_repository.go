package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wayra/taller-api/internal/domain/entity"
	"github.com/wayra/taller-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, code, client_id, vehicle_id, mechanic_id, description, status,
		labor_fee, subtotal, total, profit, created_by, created_at, updated_at`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para órdenes.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.Code, &o.ClientID, &o.VehicleID, &o.MechanicID, &o.Description, &o.Status,
		&o.LaborFee, &o.Subtotal, &o.Total, &o.Profit, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	return &o, nil
}

// Create persiste la cabecera de la orden.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Code, order.ClientID, order.VehicleID, order.MechanicID,
		order.Description, order.Status, order.LaborFee, order.Subtotal,
		order.Total, order.Profit, order.CreatedBy, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateService persiste una línea de servicio.
func (r *OrderRepo) CreateService(line *entity.OrderService) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO order_services (id, order_id, description, price) VALUES ($1, $2, $3, $4)`,
		line.ID, line.OrderID, line.Description, line.Price,
	)
	if err != nil {
		return fmt.Errorf("insert order service: %w", err)
	}
	return nil
}

// CreateProduct persiste una línea de producto.
func (r *OrderRepo) CreateProduct(line *entity.OrderProduct) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO order_products (id, order_id, product_id, quantity, unit_price, price_tier, profit)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		line.ID, line.OrderID, line.ProductID, line.Quantity, line.UnitPrice, line.PriceTier, line.Profit,
	)
	if err != nil {
		return fmt.Errorf("insert order product: %w", err)
	}
	return nil
}

// CreateExternalPart persiste una línea de repuesto externo.
func (r *OrderRepo) CreateExternalPart(line *entity.ExternalPart) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO order_external_parts (id, order_id, name, quantity, buy_price, sell_price, subtotal, profit)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		line.ID, line.OrderID, line.Name, line.Quantity, line.BuyPrice, line.SellPrice, line.Subtotal, line.Profit,
	)
	if err != nil {
		return fmt.Errorf("insert external part: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una orden.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return scanOrder(r.q.QueryRow(context.Background(), query, id))
}

// GetWithLines carga la orden con servicios, productos y repuestos externos.
func (r *OrderRepo) GetWithLines(id string) (*entity.Order, error) {
	order, err := r.GetByID(id)
	if err != nil || order == nil {
		return order, err
	}
	ctx := context.Background()

	rows, err := r.q.Query(ctx,
		`SELECT id, order_id, description, price FROM order_services WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list order services: %w", err)
	}
	for rows.Next() {
		var s entity.OrderService
		if err := rows.Scan(&s.ID, &s.OrderID, &s.Description, &s.Price); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order service: %w", err)
		}
		order.Services = append(order.Services, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.q.Query(ctx,
		`SELECT id, order_id, product_id, quantity, unit_price, price_tier, profit
		 FROM order_products WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list order products: %w", err)
	}
	for rows.Next() {
		var p entity.OrderProduct
		if err := rows.Scan(&p.ID, &p.OrderID, &p.ProductID, &p.Quantity, &p.UnitPrice, &p.PriceTier, &p.Profit); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order product: %w", err)
		}
		order.Products = append(order.Products, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.q.Query(ctx,
		`SELECT id, order_id, name, quantity, buy_price, sell_price, subtotal, profit
		 FROM order_external_parts WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list external parts: %w", err)
	}
	for rows.Next() {
		var e entity.ExternalPart
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Name, &e.Quantity, &e.BuyPrice, &e.SellPrice, &e.Subtotal, &e.Profit); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan external part: %w", err)
		}
		order.ExternalParts = append(order.ExternalParts, e)
	}
	rows.Close()
	return order, rows.Err()
}

// Update actualiza cabecera de la orden (estado, descripción, mano de obra, totales).
func (r *OrderRepo) Update(order *entity.Order) error {
	query := `
		UPDATE orders SET description = $2, status = $3, labor_fee = $4,
			subtotal = $5, total = $6, profit = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Description, order.Status, order.LaborFee,
		order.Subtotal, order.Total, order.Profit, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// List lista órdenes, opcionalmente filtradas por estado.
func (r *OrderRepo) List(status string, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}
