package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wayra/taller-api/internal/application/dto"
	"github.com/wayra/taller-api/internal/domain"
	"github.com/wayra/taller-api/internal/domain/entity"
	"github.com/wayra/taller-api/internal/domain/repository"
)

// IVA aplicado a las facturas.
var taxRate = decimal.NewFromFloat(0.19)

const defaultDueDays = 30

// InvoiceUseCase ciclo de vida de facturas: creación desde una orden
// completada, marcado de pago, vencimiento y anulación. Los montos se
// congelan en la creación; la API no acepta cambios posteriores sobre ellos.
type InvoiceUseCase struct {
	txRunner    BillingTxRunner
	invoiceRepo repository.InvoiceRepository
	orderRepo   repository.OrderRepository
	clientRepo  repository.ClientRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	orderRepo repository.OrderRepository,
	clientRepo repository.ClientRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
		clientRepo:  clientRepo,
	}
}

// CreateInvoice crea una factura PENDIENTE desde una orden COMPLETADA.
// Subtotal = total de la orden, IVA 19%. Una orden factura una sola vez.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.OrderID == "" {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(in.OrderID)
	if err != nil || order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusCompletada {
		return nil, domain.ErrConflict
	}
	if existing, _ := uc.invoiceRepo.GetByOrderID(order.ID); existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	dueDate := now.AddDate(0, 0, defaultDueDays)
	if in.DueDate != "" {
		d, err := time.Parse("2006-01-02", in.DueDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		dueDate = d
	}

	subtotal := order.Total
	tax := subtotal.Mul(taxRate).Round(2)
	invoice := &entity.Invoice{
		ID:           uuid.New().String(),
		OrderID:      order.ID,
		ClientID:     order.ClientID,
		Subtotal:     subtotal,
		Tax:          tax,
		Total:        subtotal.Add(tax),
		Status:       entity.InvoiceStatusPendiente,
		DueDate:      dueDate,
		Observations: in.Observations,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		counterRepo repository.OrderCounterRepository,
	) error {
		// Consecutivo anual de facturación
		seq, err := counterRepo.NextSequence(ctx, repository.CounterScopeInvoice, now.Year(), 0)
		if err != nil {
			return err
		}
		invoice.Number = fmt.Sprintf("FAC-%d-%05d", now.Year(), seq)
		return invoiceRepo.Create(invoice)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(invoice, order), nil
}

// GetInvoice obtiene una factura por ID.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoiceRepo.GetByID(id)
	if err != nil || invoice == nil {
		return nil, domain.ErrNotFound
	}
	order, _ := uc.orderRepo.GetByID(invoice.OrderID)
	return uc.toResponse(invoice, order), nil
}

// ListInvoices lista facturas, opcionalmente filtradas por estado.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, status string, page dto.PageRequest) ([]dto.InvoiceResponse, error) {
	page.DefaultPage()
	invoices, err := uc.invoiceRepo.List(status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, *uc.toResponse(inv, nil))
	}
	return out, nil
}

// MarkPaid marca la factura como PAGADA (desde PENDIENTE o VENCIDA).
func (uc *InvoiceUseCase) MarkPaid(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	return uc.transition(ctx, id, entity.InvoiceStatusPagada, "")
}

// Void anula la factura. Cualquier estado no anulado puede anularse; la
// anulación es terminal y deja una nota con marca de tiempo en observaciones.
// Anular dos veces devuelve ErrInvoiceVoided.
func (uc *InvoiceUseCase) Void(ctx context.Context, id, reason string) (*dto.InvoiceResponse, error) {
	return uc.transition(ctx, id, entity.InvoiceStatusAnulada, reason)
}

func (uc *InvoiceUseCase) transition(ctx context.Context, id, status, reason string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoiceRepo.GetByID(id)
	if err != nil || invoice == nil {
		return nil, domain.ErrNotFound
	}
	if status == entity.InvoiceStatusAnulada && invoice.Status == entity.InvoiceStatusAnulada {
		return nil, domain.ErrInvoiceVoided
	}
	if !invoice.CanTransitionTo(status) {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	invoice.Status = status
	invoice.UpdatedAt = now
	if status == entity.InvoiceStatusAnulada {
		note := fmt.Sprintf("[ANULADA %s]", now.Format("2006-01-02 15:04"))
		if reason != "" {
			note += " " + reason
		}
		invoice.Observations = strings.TrimSpace(invoice.Observations + "\n" + note)
	}
	if err := uc.invoiceRepo.Update(invoice); err != nil {
		return nil, err
	}
	return uc.toResponse(invoice, nil), nil
}

// UpdateInvoice edita fecha de vencimiento, estado u observaciones mientras
// la factura no esté ANULADA. Los montos nunca se aceptan por la API.
func (uc *InvoiceUseCase) UpdateInvoice(ctx context.Context, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoiceRepo.GetByID(id)
	if err != nil || invoice == nil {
		return nil, domain.ErrNotFound
	}
	if !invoice.IsEditable() {
		return nil, domain.ErrInvoiceVoided
	}
	if in.DueDate != "" {
		d, err := time.Parse("2006-01-02", in.DueDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		invoice.DueDate = d
	}
	if in.Observations != nil {
		invoice.Observations = *in.Observations
	}
	if in.Status != "" && in.Status != invoice.Status {
		if in.Status == entity.InvoiceStatusAnulada {
			// La anulación tiene su propio endpoint con nota obligatoria.
			return nil, domain.ErrInvalidInput
		}
		if !invoice.CanTransitionTo(in.Status) {
			return nil, domain.ErrConflict
		}
		invoice.Status = in.Status
	}
	invoice.UpdatedAt = time.Now()
	if err := uc.invoiceRepo.Update(invoice); err != nil {
		return nil, err
	}
	return uc.toResponse(invoice, nil), nil
}

func (uc *InvoiceUseCase) toResponse(inv *entity.Invoice, order *entity.Order) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:           inv.ID,
		Number:       inv.Number,
		OrderID:      inv.OrderID,
		ClientID:     inv.ClientID,
		Subtotal:     inv.Subtotal,
		Tax:          inv.Tax,
		Total:        inv.Total,
		Status:       inv.Status,
		DueDate:      inv.DueDate.Format("2006-01-02"),
		Observations: inv.Observations,
		CreatedAt:    inv.CreatedAt.Format(time.RFC3339),
	}
	if order != nil {
		resp.OrderCode = order.Code
	}
	if client, _ := uc.clientRepo.GetByID(inv.ClientID); client != nil {
		resp.ClientName = client.Name
	}
	return resp
}
