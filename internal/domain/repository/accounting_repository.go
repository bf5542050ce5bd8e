package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/wayra/taller-api/internal/domain/entity"
)

// MonthlyTotals totales de un mes del libro contable.
type MonthlyTotals struct {
	Month   int
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// AccountingRepository puerto para el libro de ingresos/egresos y sus
// agregaciones de solo lectura (reportes por período).
type AccountingRepository interface {
	Create(mov *entity.AccountingMovement) error
	List(businessEntity string, year int, limit, offset int) ([]*entity.AccountingMovement, error)
	// TotalsByMonth suma ingresos y egresos por mes para una entidad en el
	// rango [fromMonth, toMonth] de un año. Meses sin filas no aparecen.
	TotalsByMonth(ctx context.Context, businessEntity string, year, fromMonth, toMonth int) ([]MonthlyTotals, error)
}
