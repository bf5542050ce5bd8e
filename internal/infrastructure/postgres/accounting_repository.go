package postgres

import (
	"context"
	"fmt"

	"github.com/wayra/taller-api/internal/domain/entity"
	"github.com/wayra/taller-api/internal/domain/repository"
)

var _ repository.AccountingRepository = (*AccountingRepo)(nil)

const accountingColumns = `id, business_entity, type, concept, amount, month, year,
		order_id, created_by, created_at`

// AccountingRepo libro de ingresos y egresos por entidad de negocio.
type AccountingRepo struct {
	q Querier
}

// NewAccountingRepository construye el adaptador del libro contable.
func NewAccountingRepository(q Querier) *AccountingRepo {
	return &AccountingRepo{q: q}
}

// Create inserta un movimiento contable.
func (r *AccountingRepo) Create(mov *entity.AccountingMovement) error {
	query := `
		INSERT INTO accounting_movements (` + accountingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.BusinessEntity, mov.Type, mov.Concept, mov.Amount,
		mov.Month, mov.Year, mov.OrderID, mov.CreatedBy, mov.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert accounting movement: %w", err)
	}
	return nil
}

// List movimientos de una entidad en un año, del más reciente al más antiguo.
func (r *AccountingRepo) List(businessEntity string, year int, limit, offset int) ([]*entity.AccountingMovement, error) {
	query := `SELECT ` + accountingColumns + ` FROM accounting_movements
		WHERE business_entity = $1 AND year = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, businessEntity, year, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list accounting movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.AccountingMovement
	for rows.Next() {
		var m entity.AccountingMovement
		err := rows.Scan(&m.ID, &m.BusinessEntity, &m.Type, &m.Concept, &m.Amount,
			&m.Month, &m.Year, &m.OrderID, &m.CreatedBy, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan accounting movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// TotalsByMonth suma ingresos y egresos por mes para una entidad en el rango
// [fromMonth, toMonth] de un año. Meses sin movimientos no producen filas.
func (r *AccountingRepo) TotalsByMonth(ctx context.Context, businessEntity string, year, fromMonth, toMonth int) ([]repository.MonthlyTotals, error) {
	query := `
		SELECT month,
			COALESCE(SUM(amount) FILTER (WHERE type = 'INGRESO'), 0) AS income,
			COALESCE(SUM(amount) FILTER (WHERE type = 'EGRESO'), 0) AS expense
		FROM accounting_movements
		WHERE business_entity = $1 AND year = $2 AND month BETWEEN $3 AND $4
		GROUP BY month
		ORDER BY month`
	rows, err := r.q.Query(ctx, query, businessEntity, year, fromMonth, toMonth)
	if err != nil {
		return nil, fmt.Errorf("accounting totals by month: %w", err)
	}
	defer rows.Close()
	var totals []repository.MonthlyTotals
	for rows.Next() {
		var t repository.MonthlyTotals
		if err := rows.Scan(&t.Month, &t.Income, &t.Expense); err != nil {
			return nil, fmt.Errorf("scan monthly totals: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
