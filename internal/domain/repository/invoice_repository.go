package repository

import "github.com/wayra/taller-api/internal/domain/entity"

// InvoiceRepository puerto de persistencia para facturas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	GetByOrderID(orderID string) (*entity.Invoice, error)
	Update(invoice *entity.Invoice) error
	List(status string, limit, offset int) ([]*entity.Invoice, error)
}
