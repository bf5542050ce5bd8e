package dto

import "github.com/shopspring/decimal"

// CreateInvoiceRequest body para POST /api/facturacion.
// Los montos no se aceptan: se congelan desde la orden completada.
type CreateInvoiceRequest struct {
	OrderID      string `json:"order_id"`
	DueDate      string `json:"due_date,omitempty"` // YYYY-MM-DD; por defecto 30 días
	Observations string `json:"observations,omitempty"`
}

// UpdateInvoiceRequest body para PATCH /api/facturacion/:id.
// Solo fecha de vencimiento, estado VENCIDA y observaciones; nunca montos.
type UpdateInvoiceRequest struct {
	DueDate      string  `json:"due_date,omitempty"`
	Status       string  `json:"status,omitempty"`
	Observations *string `json:"observations,omitempty"`
}

// VoidInvoiceRequest body para POST /api/facturacion/:id/anular.
type VoidInvoiceRequest struct {
	Reason string `json:"reason,omitempty"`
}

// InvoiceResponse factura en respuestas.
type InvoiceResponse struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	OrderID      string          `json:"order_id"`
	OrderCode    string          `json:"order_code,omitempty"`
	ClientID     string          `json:"client_id"`
	ClientName   string          `json:"client_name,omitempty"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	DueDate      string          `json:"due_date"`
	Observations string          `json:"observations,omitempty"`
	CreatedAt    string          `json:"created_at"`
}
