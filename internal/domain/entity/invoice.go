package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceStatusPendiente = "PENDIENTE"
	InvoiceStatusPagada    = "PAGADA"
	InvoiceStatusVencida   = "VENCIDA"
	InvoiceStatusAnulada   = "ANULADA" // terminal
)

// Invoice representa una factura generada desde una orden completada.
// Los montos (Subtotal, Tax, Total) se congelan en la creación y no se
// aceptan cambios posteriores por la API.
type Invoice struct {
	ID           string
	Number       string // FAC-YYYY-NNNNN
	OrderID      string
	ClientID     string
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
	Status       string
	DueDate      time.Time
	Observations string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsEditable indica si la factura admite cambios de fecha de vencimiento,
// estado u observaciones. Anulada es de solo lectura.
func (i *Invoice) IsEditable() bool {
	return i.Status != InvoiceStatusAnulada
}

// CanTransitionTo valida la transición de estado de la factura.
// PENDIENTE → PAGADA | VENCIDA | ANULADA
// VENCIDA → PAGADA | ANULADA
// PAGADA → ANULADA
// ANULADA es terminal (anular dos veces se rechaza).
func (i *Invoice) CanTransitionTo(status string) bool {
	if i.Status == InvoiceStatusAnulada {
		return false
	}
	switch status {
	case InvoiceStatusAnulada:
		return true
	case InvoiceStatusPagada:
		return i.Status == InvoiceStatusPendiente || i.Status == InvoiceStatusVencida
	case InvoiceStatusVencida:
		return i.Status == InvoiceStatusPendiente
	default:
		return false
	}
}
