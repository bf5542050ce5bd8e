package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayra/taller-api/internal/application/dto"
	"github.com/wayra/taller-api/internal/application/reports"
	"github.com/wayra/taller-api/internal/domain"
	"github.com/wayra/taller-api/internal/domain/entity"
	"github.com/wayra/taller-api/internal/domain/repository"
)

// fakeAccountingRepo libro contable en memoria con la misma agregación por
// mes que hace la consulta SQL real.
type fakeAccountingRepo struct {
	movements []*entity.AccountingMovement
}

func (r *fakeAccountingRepo) Create(mov *entity.AccountingMovement) error {
	r.movements = append(r.movements, mov)
	return nil
}

func (r *fakeAccountingRepo) List(businessEntity string, year, limit, offset int) ([]*entity.AccountingMovement, error) {
	var out []*entity.AccountingMovement
	for _, m := range r.movements {
		if m.BusinessEntity == businessEntity && m.Year == year {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeAccountingRepo) TotalsByMonth(_ context.Context, businessEntity string, year, fromMonth, toMonth int) ([]repository.MonthlyTotals, error) {
	byMonth := map[int]*repository.MonthlyTotals{}
	for _, m := range r.movements {
		if m.BusinessEntity != businessEntity || m.Year != year || m.Month < fromMonth || m.Month > toMonth {
			continue
		}
		t, ok := byMonth[m.Month]
		if !ok {
			t = &repository.MonthlyTotals{Month: m.Month, Income: decimal.Zero, Expense: decimal.Zero}
			byMonth[m.Month] = t
		}
		if m.Type == entity.AccountingTypeIngreso {
			t.Income = t.Income.Add(m.Amount)
		} else {
			t.Expense = t.Expense.Add(m.Amount)
		}
	}
	// Meses sin filas no aparecen, igual que el GROUP BY real.
	var rows []repository.MonthlyTotals
	for month := fromMonth; month <= toMonth; month++ {
		if t, ok := byMonth[month]; ok {
			rows = append(rows, *t)
		}
	}
	return rows, nil
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func mov(businessEntity, tipo, concept, amount string, month, year int) *entity.AccountingMovement {
	return &entity.AccountingMovement{
		ID:             concept,
		BusinessEntity: businessEntity,
		Type:           tipo,
		Concept:        concept,
		Amount:         dec(amount),
		Month:          month,
		Year:           year,
		CreatedAt:      time.Now(),
	}
}

func build() (*reports.UseCase, *fakeAccountingRepo) {
	repo := &fakeAccountingRepo{movements: []*entity.AccountingMovement{
		mov(entity.AccountingEntityWayraTaller, entity.AccountingTypeIngreso, "orden 1", "170000", 1, 2026),
		mov(entity.AccountingEntityWayraTaller, entity.AccountingTypeEgreso, "compra repuesto", "15000", 1, 2026),
		mov(entity.AccountingEntityWayraTaller, entity.AccountingTypeIngreso, "orden 2", "80000", 3, 2026),
		mov(entity.AccountingEntityWayraTaller, entity.AccountingTypeEgreso, "arriendo", "50000", 2, 2026),
		mov(entity.AccountingEntityWayraTaller, entity.AccountingTypeIngreso, "orden vieja", "100000", 6, 2025),
		mov(entity.AccountingEntityTorniRepuestos, entity.AccountingTypeIngreso, "venta mostrador", "999999", 1, 2026),
	}}
	return reports.NewUseCase(repo), repo
}

// Reporte trimestral: suma los tres meses del trimestre y desglosa mes a mes,
// incluyendo los meses sin movimientos como ceros.
func TestGetReport_TrimestralConDesglose(t *testing.T) {
	uc, _ := build()

	resp, err := uc.GetReport(context.Background(), entity.AccountingEntityWayraTaller,
		dto.ReportRequest{Tipo: reports.ReportTrimestral, Year: 2026, Periodo: 1})
	require.NoError(t, err)

	assert.True(t, resp.Income.Equal(dec("250000")), "ingresos del trimestre, obtenido %s", resp.Income)
	assert.True(t, resp.Expense.Equal(dec("65000")))
	assert.True(t, resp.Profit.Equal(dec("185000")))
	assert.True(t, resp.Margin.Equal(dec("74")), "185000/250000 × 100")

	require.Len(t, resp.Breakdown, 3)
	enero := resp.Breakdown[0]
	assert.Equal(t, 1, enero.Month)
	assert.True(t, enero.Income.Equal(dec("170000")))
	assert.True(t, enero.Profit.Equal(dec("155000")))

	febrero := resp.Breakdown[1]
	assert.Equal(t, 2, febrero.Month)
	assert.True(t, febrero.Income.IsZero(), "febrero solo tiene egresos")
	assert.True(t, febrero.Expense.Equal(dec("50000")))
	assert.True(t, febrero.Margin.IsZero(), "margen cero cuando no hay ingresos")
}

func TestGetReport_MensualSinMovimientos(t *testing.T) {
	uc, _ := build()

	resp, err := uc.GetReport(context.Background(), entity.AccountingEntityWayraTaller,
		dto.ReportRequest{Tipo: reports.ReportMensual, Year: 2026, Periodo: 7})
	require.NoError(t, err)

	assert.True(t, resp.Income.IsZero())
	assert.True(t, resp.Expense.IsZero())
	assert.True(t, resp.Margin.IsZero())
	require.Len(t, resp.Breakdown, 1)
	assert.Equal(t, 7, resp.Breakdown[0].Month)
}

func TestGetReport_AnualIgnoraPeriodo(t *testing.T) {
	uc, _ := build()

	resp, err := uc.GetReport(context.Background(), entity.AccountingEntityWayraTaller,
		dto.ReportRequest{Tipo: reports.ReportAnual, Year: 2026})
	require.NoError(t, err)

	assert.True(t, resp.Income.Equal(dec("250000")))
	assert.Len(t, resp.Breakdown, 12)
}

func TestGetReport_EntradasInvalidas(t *testing.T) {
	uc, _ := build()
	ctx := context.Background()

	_, err := uc.GetReport(ctx, "CASA_MATRIZ", dto.ReportRequest{Tipo: reports.ReportAnual, Year: 2026})
	assert.ErrorIs(t, err, domain.ErrNotFound, "entidad contable desconocida")

	_, err = uc.GetReport(ctx, entity.AccountingEntityWayraTaller,
		dto.ReportRequest{Tipo: "quincenal", Year: 2026, Periodo: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetReport(ctx, entity.AccountingEntityWayraTaller,
		dto.ReportRequest{Tipo: reports.ReportTrimestral, Year: 2026, Periodo: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "trimestre fuera de rango")

	_, err = uc.GetReport(ctx, entity.AccountingEntityWayraTaller,
		dto.ReportRequest{Tipo: reports.ReportMensual, Periodo: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "año obligatorio")
}

// Comparativo año1 = actual, año2 = año base: crecimiento (año1 − año2)/año2 × 100.
func TestGetComparative_Crecimiento(t *testing.T) {
	uc, _ := build()

	resp, err := uc.GetComparative(context.Background(), entity.AccountingEntityWayraTaller,
		dto.ComparativeRequest{Year1: 2026, Year2: 2025})
	require.NoError(t, err)

	assert.True(t, resp.IncomeYear1.Equal(dec("250000")))
	assert.True(t, resp.IncomeYear2.Equal(dec("100000")))
	assert.Equal(t, "150", resp.IncomeGrowth)
	assert.Equal(t, "85", resp.ProfitGrowth, "100000 → 185000")
}

func TestGetComparative_DenominadorCeroDevuelveCero(t *testing.T) {
	uc, _ := build()

	// 2024 no tiene movimientos: el crecimiento no puede dividir por cero.
	resp, err := uc.GetComparative(context.Background(), entity.AccountingEntityWayraTaller,
		dto.ComparativeRequest{Year1: 2026, Year2: 2024})
	require.NoError(t, err)

	assert.Equal(t, "0", resp.IncomeGrowth)
	assert.Equal(t, "0", resp.ProfitGrowth)
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	uc, repo := build()
	ctx := context.Background()

	resp, err := uc.RegisterMovement(ctx, "u1", dto.CreateAccountingMovementRequest{
		BusinessEntity: entity.AccountingEntityTorniRepuestos,
		Type:           entity.AccountingTypeEgreso,
		Concept:        "flete importación",
		Amount:         dec("120000"),
		Month:          4,
		Year:           2026,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 4, resp.Month)
	last := repo.movements[len(repo.movements)-1]
	assert.Equal(t, "u1", last.CreatedBy)

	cases := []dto.CreateAccountingMovementRequest{
		{BusinessEntity: "OTRA", Type: entity.AccountingTypeIngreso, Concept: "x", Amount: dec("1")},
		{BusinessEntity: entity.AccountingEntityWayraTaller, Type: "TRASPASO", Concept: "x", Amount: dec("1")},
		{BusinessEntity: entity.AccountingEntityWayraTaller, Type: entity.AccountingTypeIngreso, Amount: dec("1")},
		{BusinessEntity: entity.AccountingEntityWayraTaller, Type: entity.AccountingTypeIngreso, Concept: "x", Amount: decimal.Zero},
		{BusinessEntity: entity.AccountingEntityWayraTaller, Type: entity.AccountingTypeIngreso, Concept: "x", Amount: dec("1"), Month: 13},
	}
	for _, in := range cases {
		_, err := uc.RegisterMovement(ctx, "u1", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// Sin mes ni año el asiento cae en el período actual.
func TestRegisterMovement_PeriodoPorDefecto(t *testing.T) {
	uc, _ := build()

	resp, err := uc.RegisterMovement(context.Background(), "u1", dto.CreateAccountingMovementRequest{
		BusinessEntity: entity.AccountingEntityWayraProductos,
		Type:           entity.AccountingTypeIngreso,
		Concept:        "venta productos",
		Amount:         dec("30000"),
	})
	require.NoError(t, err)

	now := time.Now()
	assert.Equal(t, int(now.Month()), resp.Month)
	assert.Equal(t, now.Year(), resp.Year)
}

func TestListMovements(t *testing.T) {
	uc, _ := build()
	ctx := context.Background()

	movs, err := uc.ListMovements(ctx, entity.AccountingEntityWayraTaller, 2026, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, movs, 4)

	_, err = uc.ListMovements(ctx, "OTRA", 2026, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
