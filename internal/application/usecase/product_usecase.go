package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wayra/taller-api/internal/application/dto"
	"github.com/wayra/taller-api/internal/domain"
	"github.com/wayra/taller-api/internal/domain/entity"
	"github.com/wayra/taller-api/internal/domain/pricing"
	"github.com/wayra/taller-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Stock se muta solo vía
// movimientos de inventario; los precios de venta vienen del recálculo por
// configuración salvo que la carga inicial los traiga explícitos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	settingsRepo repository.SettingsRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, settingsRepo repository.SettingsRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, settingsRepo: settingsRepo}
}

// Create crea un producto. Si el body no trae precios de venta, se calculan
// desde la configuración vigente (margen, descuento, tasa de cambio).
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.BusinessEntity != entity.EntityWayra && in.BusinessEntity != entity.EntityTorni {
		return nil, domain.ErrInvalidInput
	}
	if in.Channel != entity.ChannelENI && in.Channel != entity.ChannelCALAN {
		return nil, domain.ErrInvalidInput
	}
	if in.PurchaseCurrency == "" {
		in.PurchaseCurrency = entity.CurrencyCOP
	}
	if in.PurchaseCurrency != entity.CurrencyCOP && in.PurchaseCurrency != entity.CurrencyUSD {
		return nil, domain.ErrInvalidInput
	}
	// Solo la línea importada (canal CALAN) compra en USD.
	if in.PurchaseCurrency == entity.CurrencyUSD && in.Channel != entity.ChannelCALAN {
		return nil, domain.ErrInvalidInput
	}
	if in.PurchasePrice.LessThan(decimal.Zero) || in.InitialStock.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:               uuid.New().String(),
		Code:             in.Code,
		Name:             in.Name,
		Category:         in.Category,
		BusinessEntity:   in.BusinessEntity,
		Channel:          in.Channel,
		PurchasePrice:    in.PurchasePrice,
		PurchaseCurrency: in.PurchaseCurrency,
		SalePrice:        in.SalePrice,
		WholesalePrice:   in.WholesalePrice,
		RetailPrice:      in.RetailPrice,
		Stock:            in.InitialStock,
		MinStock:         in.MinStock,
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if product.SalePrice.IsZero() {
		values, err := uc.settingsRepo.GetAll()
		if err != nil {
			return nil, err
		}
		prices := pricing.ComputePrices(product, pricing.NewSettings(values))
		product.SalePrice = prices.Sale
		product.WholesalePrice = prices.Wholesale
		product.RetailPrice = prices.Retail
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza datos del producto. Cambiar el precio de compra recalcula
// los precios de venta con la configuración vigente.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		product.Name = in.Name
	}
	if in.Category != "" {
		product.Category = in.Category
	}
	if in.MinStock.GreaterThanOrEqual(decimal.Zero) {
		product.MinStock = in.MinStock
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if !in.PurchasePrice.IsZero() && !in.PurchasePrice.Equal(product.PurchasePrice) {
		if in.PurchasePrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.PurchasePrice = in.PurchasePrice
		values, err := uc.settingsRepo.GetAll()
		if err != nil {
			return nil, err
		}
		prices := pricing.ComputePrices(product, pricing.NewSettings(values))
		product.SalePrice = prices.Sale
		product.WholesalePrice = prices.Wholesale
		product.RetailPrice = prices.Retail
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// ListLowStock lista productos activos con stock en o bajo el mínimo.
func (uc *ProductUseCase) ListLowStock() ([]dto.ProductResponse, error) {
	products, err := uc.repo.ListLowStock()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:               p.ID,
		Code:             p.Code,
		Name:             p.Name,
		Category:         p.Category,
		BusinessEntity:   p.BusinessEntity,
		Channel:          p.Channel,
		PurchasePrice:    p.PurchasePrice,
		PurchaseCurrency: p.PurchaseCurrency,
		SalePrice:        p.SalePrice,
		WholesalePrice:   p.WholesalePrice,
		RetailPrice:      p.RetailPrice,
		Stock:            p.Stock,
		MinStock:         p.MinStock,
		Active:           p.Active,
	}
}
