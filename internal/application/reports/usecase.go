package reports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wayra/taller-api/internal/application/dto"
	"github.com/wayra/taller-api/internal/domain"
	"github.com/wayra/taller-api/internal/domain/entity"
	"github.com/wayra/taller-api/internal/domain/pricing"
	"github.com/wayra/taller-api/internal/domain/repository"
)

// Tipos de reporte soportados.
const (
	ReportMensual    = "mensual"
	ReportTrimestral = "trimestral"
	ReportSemestral  = "semestral"
	ReportAnual      = "anual"
)

var hundred = decimal.NewFromInt(100)

// UseCase agregaciones de solo lectura del libro contable: totales por
// período (mes, trimestre, semestre, año) y comparativos año contra año.
type UseCase struct {
	accRepo repository.AccountingRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(accRepo repository.AccountingRepository) *UseCase {
	return &UseCase{accRepo: accRepo}
}

// monthRange devuelve el rango [desde, hasta] de meses de un tipo/período.
func monthRange(tipo string, periodo int) (int, int, error) {
	switch tipo {
	case ReportMensual:
		if periodo < 1 || periodo > 12 {
			return 0, 0, domain.ErrInvalidInput
		}
		return periodo, periodo, nil
	case ReportTrimestral:
		if periodo < 1 || periodo > 4 {
			return 0, 0, domain.ErrInvalidInput
		}
		return (periodo-1)*3 + 1, periodo * 3, nil
	case ReportSemestral:
		if periodo < 1 || periodo > 2 {
			return 0, 0, domain.ErrInvalidInput
		}
		return (periodo-1)*6 + 1, periodo * 6, nil
	case ReportAnual:
		return 1, 12, nil
	default:
		return 0, 0, domain.ErrInvalidInput
	}
}

func validEntity(businessEntity string) bool {
	for _, e := range entity.ValidAccountingEntities {
		if e == businessEntity {
			return true
		}
	}
	return false
}

// marginPct ganancia/ingreso × 100; cero cuando no hay ingresos.
func marginPct(profit, income decimal.Decimal) decimal.Decimal {
	if income.IsZero() {
		return decimal.Zero
	}
	return profit.Div(income).Mul(hundred).Round(2)
}

// GetReport agrega ingresos, egresos, ganancia y margen de una entidad para
// el período solicitado, con desglose mensual.
func (uc *UseCase) GetReport(ctx context.Context, businessEntity string, in dto.ReportRequest) (*dto.ReportResponse, error) {
	if !validEntity(businessEntity) {
		return nil, domain.ErrNotFound
	}
	if in.Year <= 0 {
		return nil, domain.ErrInvalidInput
	}
	from, to, err := monthRange(in.Tipo, in.Periodo)
	if err != nil {
		return nil, err
	}

	rows, err := uc.accRepo.TotalsByMonth(ctx, businessEntity, in.Year, from, to)
	if err != nil {
		return nil, err
	}
	byMonth := make(map[int]repository.MonthlyTotals, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = r
	}

	resp := &dto.ReportResponse{
		BusinessEntity: businessEntity,
		Tipo:           in.Tipo,
		Year:           in.Year,
		Periodo:        in.Periodo,
		Income:         decimal.Zero,
		Expense:        decimal.Zero,
	}
	for month := from; month <= to; month++ {
		totals := byMonth[month] // cero si el mes no tiene filas
		income := totals.Income
		expense := totals.Expense
		profit := income.Sub(expense)
		resp.Income = resp.Income.Add(income)
		resp.Expense = resp.Expense.Add(expense)
		resp.Breakdown = append(resp.Breakdown, dto.PeriodSummary{
			Month:   month,
			Income:  income,
			Expense: expense,
			Profit:  profit,
			Margin:  marginPct(profit, income),
		})
	}
	resp.Profit = resp.Income.Sub(resp.Expense)
	resp.Margin = marginPct(resp.Profit, resp.Income)
	return resp, nil
}

// GetComparative compara dos años completos de una entidad y calcula el
// crecimiento porcentual de año1 frente a año2 (año base). Con denominador
// cero el crecimiento es "0".
func (uc *UseCase) GetComparative(ctx context.Context, businessEntity string, in dto.ComparativeRequest) (*dto.ComparativeResponse, error) {
	if !validEntity(businessEntity) {
		return nil, domain.ErrNotFound
	}
	if in.Year1 <= 0 || in.Year2 <= 0 {
		return nil, domain.ErrInvalidInput
	}

	income1, profit1, err := uc.yearTotals(ctx, businessEntity, in.Year1)
	if err != nil {
		return nil, err
	}
	income2, profit2, err := uc.yearTotals(ctx, businessEntity, in.Year2)
	if err != nil {
		return nil, err
	}

	return &dto.ComparativeResponse{
		BusinessEntity: businessEntity,
		Year1:          in.Year1,
		Year2:          in.Year2,
		IncomeYear1:    income1,
		IncomeYear2:    income2,
		ProfitYear1:    profit1,
		ProfitYear2:    profit2,
		IncomeGrowth:   pricing.GrowthPercent(income1, income2).String(),
		ProfitGrowth:   pricing.GrowthPercent(profit1, profit2).String(),
	}, nil
}

func (uc *UseCase) yearTotals(ctx context.Context, businessEntity string, year int) (income, profit decimal.Decimal, err error) {
	rows, err := uc.accRepo.TotalsByMonth(ctx, businessEntity, year, 1, 12)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	income = decimal.Zero
	expense := decimal.Zero
	for _, r := range rows {
		income = income.Add(r.Income)
		expense = expense.Add(r.Expense)
	}
	return income, income.Sub(expense), nil
}

// RegisterMovement registra un asiento manual en el libro contable.
func (uc *UseCase) RegisterMovement(ctx context.Context, userID string, in dto.CreateAccountingMovementRequest) (*dto.AccountingMovementResponse, error) {
	if !validEntity(in.BusinessEntity) {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.AccountingTypeIngreso && in.Type != entity.AccountingTypeEgreso {
		return nil, domain.ErrInvalidInput
	}
	if in.Concept == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	month, year := in.Month, in.Year
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 || year <= 0 {
		return nil, domain.ErrInvalidInput
	}
	mov := &entity.AccountingMovement{
		ID:             uuid.New().String(),
		BusinessEntity: in.BusinessEntity,
		Type:           in.Type,
		Concept:        in.Concept,
		Amount:         in.Amount,
		Month:          month,
		Year:           year,
		CreatedBy:      userID,
		CreatedAt:      now,
	}
	if err := uc.accRepo.Create(mov); err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// ListMovements lista los asientos de una entidad y año.
func (uc *UseCase) ListMovements(ctx context.Context, businessEntity string, year int, page dto.PageRequest) ([]dto.AccountingMovementResponse, error) {
	if !validEntity(businessEntity) {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	movs, err := uc.accRepo.List(businessEntity, year, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AccountingMovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, *toMovementResponse(m))
	}
	return out, nil
}

func toMovementResponse(m *entity.AccountingMovement) *dto.AccountingMovementResponse {
	return &dto.AccountingMovementResponse{
		ID:             m.ID,
		BusinessEntity: m.BusinessEntity,
		Type:           m.Type,
		Concept:        m.Concept,
		Amount:         m.Amount,
		Month:          m.Month,
		Year:           m.Year,
		OrderID:        m.OrderID,
		CreatedAt:      m.CreatedAt.Format(time.RFC3339),
	}
}
