package dto

import "github.com/shopspring/decimal"

// ReportRequest query params para GET /api/reportes/:entidad.
type ReportRequest struct {
	Tipo string `query:"tipo"`    // mensual | trimestral | semestral | anual
	Year int    `query:"año"`
	// Período dentro del año: mes 1..12, trimestre 1..4, semestre 1..2.
	// Ignorado cuando tipo = anual.
	Periodo int `query:"periodo"`
}

// PeriodSummary totales de un subperíodo (mes) del reporte.
type PeriodSummary struct {
	Month   int             `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Profit  decimal.Decimal `json:"profit"`
	Margin  decimal.Decimal `json:"margin_pct"`
}

// ReportResponse reporte agregado de una entidad para un período.
type ReportResponse struct {
	BusinessEntity string          `json:"business_entity"`
	Tipo           string          `json:"tipo"`
	Year           int             `json:"year"`
	Periodo        int             `json:"periodo,omitempty"`
	Income         decimal.Decimal `json:"income"`
	Expense        decimal.Decimal `json:"expense"`
	Profit         decimal.Decimal `json:"profit"`
	Margin         decimal.Decimal `json:"margin_pct"`
	Breakdown      []PeriodSummary `json:"breakdown"`
}

// ComparativeRequest query params para GET /api/reportes/:entidad/comparativo.
type ComparativeRequest struct {
	Year1 int `query:"año1"`
	Year2 int `query:"año2"`
}

// ComparativeResponse comparación año contra año.
// Growth se serializa como string para que el cero del denominador vacío
// llegue como "0" y no como NaN/Infinity.
type ComparativeResponse struct {
	BusinessEntity string          `json:"business_entity"`
	Year1          int             `json:"year1"`
	Year2          int             `json:"year2"`
	IncomeYear1    decimal.Decimal `json:"income_year1"`
	IncomeYear2    decimal.Decimal `json:"income_year2"`
	ProfitYear1    decimal.Decimal `json:"profit_year1"`
	ProfitYear2    decimal.Decimal `json:"profit_year2"`
	IncomeGrowth   string          `json:"income_growth_pct"`
	ProfitGrowth   string          `json:"profit_growth_pct"`
}

// CreateAccountingMovementRequest body para POST /api/contabilidad/movimientos.
type CreateAccountingMovementRequest struct {
	BusinessEntity string          `json:"business_entity"`
	Type           string          `json:"type"` // INGRESO | EGRESO
	Concept        string          `json:"concept"`
	Amount         decimal.Decimal `json:"amount"`
	Month          int             `json:"month"`
	Year           int             `json:"year"`
}

// AccountingMovementResponse fila del libro en respuestas.
type AccountingMovementResponse struct {
	ID             string          `json:"id"`
	BusinessEntity string          `json:"business_entity"`
	Type           string          `json:"type"`
	Concept        string          `json:"concept"`
	Amount         decimal.Decimal `json:"amount"`
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	OrderID        string          `json:"order_id,omitempty"`
	CreatedAt      string          `json:"created_at"`
}
