package billing

import (
	"context"

	"github.com/wayra/taller-api/internal/domain/entity"
	"github.com/wayra/taller-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción con los
// repositorios de facturación atados a esa tx. El ingreso contable de la
// venta se registra al completar la orden, no aquí, para no duplicar asientos.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		counterRepo repository.OrderCounterRepository,
	) error) error
}

// InvoicePDFLine línea de la tabla de detalles del PDF.
type InvoicePDFLine struct {
	Description string
	Quantity    string
	UnitPrice   string
	Subtotal    string
}

// InvoicePDFGenerator renderiza la representación impresa de la factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, order *entity.Order, client *entity.Client, vehicle *entity.Vehicle, lines []InvoicePDFLine) ([]byte, error)
}
