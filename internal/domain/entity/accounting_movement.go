package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento contable.
const (
	AccountingTypeIngreso = "INGRESO"
	AccountingTypeEgreso  = "EGRESO"
)

// Entidades contables sobre las que se reporta.
const (
	AccountingEntityWayraTaller    = "WAYRA_TALLER"
	AccountingEntityWayraProductos = "WAYRA_PRODUCTOS"
	AccountingEntityTorniRepuestos = "TORNI_REPUESTOS"
)

// ValidAccountingEntities entidades aceptadas en registros y reportes.
var ValidAccountingEntities = []string{
	AccountingEntityWayraTaller,
	AccountingEntityWayraProductos,
	AccountingEntityTorniRepuestos,
}

// AccountingMovement fila del libro de ingresos/egresos, etiquetada por
// entidad de negocio y período (mes/año). Alimenta los reportes agregados.
type AccountingMovement struct {
	ID             string
	BusinessEntity string // WAYRA_TALLER | WAYRA_PRODUCTOS | TORNI_REPUESTOS
	Type           string // INGRESO | EGRESO
	Concept        string
	Amount         decimal.Decimal
	Month          int // 1..12
	Year           int
	OrderID        string // opcional: orden que originó el movimiento
	CreatedBy      string
	CreatedAt      time.Time
}
