package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeEntrada = "ENTRADA"
	MovementTypeSalida  = "SALIDA"
)

// InventoryMovement registro inmutable de entrada o salida de stock.
// En ventas por orden de trabajo, Reason lleva el código de la orden.
type InventoryMovement struct {
	ID        string
	ProductID string
	Type      string
	Quantity  decimal.Decimal // positivo entrada, negativo salida
	UnitPrice decimal.Decimal
	Reason    string
	CreatedBy string
	CreatedAt time.Time
}
