package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de trabajo.
const (
	OrderStatusPendiente  = "PENDIENTE"
	OrderStatusEnProceso  = "EN_PROCESO"
	OrderStatusCompletada = "COMPLETADA"
	OrderStatusCancelada  = "CANCELADA"
)

// Order representa una orden de trabajo del taller: servicios de mano de obra,
// productos del inventario y repuestos comprados por fuera.
type Order struct {
	ID          string
	Code        string // ORD-YYYY-MM-NNN
	ClientID    string
	VehicleID   string
	MechanicID  string
	Description string
	Status      string
	LaborFee    decimal.Decimal
	Subtotal    decimal.Decimal
	Total       decimal.Decimal
	Profit      decimal.Decimal
	Services    []OrderService
	Products    []OrderProduct
	ExternalParts []ExternalPart
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderService línea de servicio (mano de obra puntual).
type OrderService struct {
	ID          string
	OrderID     string
	Description string
	Price       decimal.Decimal
}

// OrderProduct línea de producto vendido dentro de la orden.
type OrderProduct struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	PriceTier string // VENTA | MAYORISTA | DETAL
	Profit    decimal.Decimal
}

// ExternalPart repuesto comprado por fuera para la orden. Subtotal y Profit
// llegan precalculados desde el formulario y se suman tal cual.
type ExternalPart struct {
	ID        string
	OrderID   string
	Name      string
	Quantity  decimal.Decimal
	BuyPrice  decimal.Decimal
	SellPrice decimal.Decimal
	Subtotal  decimal.Decimal
	Profit    decimal.Decimal
}

// FormatOrderCode arma el código legible de la orden: ORD-YYYY-MM-NNN
// (mes y secuencia con ceros a la izquierda; la secuencia reinicia por mes).
func FormatOrderCode(year int, month time.Month, seq int) string {
	return fmt.Sprintf("ORD-%d-%02d-%03d", year, int(month), seq)
}

// IsEditable indica si la orden aún admite cambios (no completada ni cancelada).
func (o *Order) IsEditable() bool {
	return o.Status != OrderStatusCompletada && o.Status != OrderStatusCancelada
}

// CanTransitionTo valida la transición de estado de la orden.
// PENDIENTE → EN_PROCESO | COMPLETADA | CANCELADA
// EN_PROCESO → COMPLETADA | CANCELADA
// COMPLETADA y CANCELADA son terminales.
func (o *Order) CanTransitionTo(status string) bool {
	switch o.Status {
	case OrderStatusPendiente:
		return status == OrderStatusEnProceso || status == OrderStatusCompletada || status == OrderStatusCancelada
	case OrderStatusEnProceso:
		return status == OrderStatusCompletada || status == OrderStatusCancelada
	default:
		return false
	}
}
