package postgres

import (
	"context"
	"fmt"

	"github.com/wayra/taller-api/internal/domain/repository"
)

var _ repository.OrderCounterRepository = (*OrderCounterRepo)(nil)

// OrderCounterRepo secuencias de códigos legibles (ORD/FAC) sobre PostgreSQL.
// Debe usarse con la transacción de la operación que consume el número.
type OrderCounterRepo struct {
	q Querier
}

// NewOrderCounterRepository construye el adaptador de contadores.
func NewOrderCounterRepository(q Querier) *OrderCounterRepo {
	return &OrderCounterRepo{q: q}
}

// NextSequence incrementa y devuelve el contador de (scope, year, month).
// El upsert atómico serializa creaciones concurrentes sobre la misma fila.
func (r *OrderCounterRepo) NextSequence(ctx context.Context, scope string, year, month int) (int, error) {
	query := `
		INSERT INTO order_counters (scope, year, month, seq)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (scope, year, month)
		DO UPDATE SET seq = order_counters.seq + 1
		RETURNING seq`
	var seq int
	if err := r.q.QueryRow(ctx, query, scope, year, month).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next sequence %s-%d-%d: %w", scope, year, month, err)
	}
	return seq, nil
}
