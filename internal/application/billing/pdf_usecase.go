package billing

import (
	"context"

	"github.com/wayra/taller-api/internal/domain"
	"github.com/wayra/taller-api/internal/domain/repository"
)

// PDFUseCase genera la representación impresa (PDF) de una factura.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	orderRepo   repository.OrderRepository
	clientRepo  repository.ClientRepository
	vehicleRepo repository.VehicleRepository
	productRepo repository.ProductRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	orderRepo repository.OrderRepository,
	clientRepo repository.ClientRepository,
	vehicleRepo repository.VehicleRepository,
	productRepo repository.ProductRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
		clientRepo:  clientRepo,
		vehicleRepo: vehicleRepo,
		productRepo: productRepo,
		generator:   generator,
	}
}

// GenerateInvoicePDF arma las líneas imprimibles (servicios, productos,
// repuestos externos y mano de obra) y delega el render al generador Maroto.
func (uc *PDFUseCase) GenerateInvoicePDF(ctx context.Context, invoiceID string) ([]byte, error) {
	invoice, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil || invoice == nil {
		return nil, domain.ErrNotFound
	}
	order, err := uc.orderRepo.GetWithLines(invoice.OrderID)
	if err != nil || order == nil {
		return nil, domain.ErrNotFound
	}
	client, err := uc.clientRepo.GetByID(invoice.ClientID)
	if err != nil || client == nil {
		return nil, domain.ErrNotFound
	}
	vehicle, _ := uc.vehicleRepo.GetByID(order.VehicleID)

	var lines []InvoicePDFLine
	for _, svc := range order.Services {
		lines = append(lines, InvoicePDFLine{
			Description: svc.Description,
			Quantity:    "1",
			UnitPrice:   svc.Price.StringFixed(2),
			Subtotal:    svc.Price.StringFixed(2),
		})
	}
	for _, line := range order.Products {
		name := line.ProductID
		if product, _ := uc.productRepo.GetByID(line.ProductID); product != nil {
			name = product.Name
		}
		lines = append(lines, InvoicePDFLine{
			Description: name,
			Quantity:    line.Quantity.String(),
			UnitPrice:   line.UnitPrice.StringFixed(2),
			Subtotal:    line.Quantity.Mul(line.UnitPrice).StringFixed(2),
		})
	}
	for _, ext := range order.ExternalParts {
		lines = append(lines, InvoicePDFLine{
			Description: ext.Name,
			Quantity:    ext.Quantity.String(),
			UnitPrice:   ext.SellPrice.StringFixed(2),
			Subtotal:    ext.Subtotal.StringFixed(2),
		})
	}
	if ext := order.LaborFee; ext.IsPositive() {
		lines = append(lines, InvoicePDFLine{
			Description: "Mano de obra",
			Quantity:    "1",
			UnitPrice:   order.LaborFee.StringFixed(2),
			Subtotal:    order.LaborFee.StringFixed(2),
		})
	}
	return uc.generator.GenerateInvoicePDF(ctx, invoice, order, client, vehicle, lines)
}
