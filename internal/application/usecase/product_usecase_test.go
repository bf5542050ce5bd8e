package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayra/taller-api/internal/application/dto"
	"github.com/wayra/taller-api/internal/application/usecase"
	"github.com/wayra/taller-api/internal/domain"
	"github.com/wayra/taller-api/internal/domain/entity"
	"github.com/wayra/taller-api/internal/domain/pricing"
)

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) UpdateStock(id string, stock decimal.Decimal) error {
	r.products[id].Stock = stock
	return nil
}

func (r *fakeProductRepo) UpdatePrices(id string, sale, wholesale, retail decimal.Decimal) error {
	p := r.products[id]
	p.SalePrice, p.WholesalePrice, p.RetailPrice = sale, wholesale, retail
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) ListLowStock() ([]*entity.Product, error) {
	out := []*entity.Product{}
	for _, p := range r.products {
		if p.Active && p.Stock.LessThanOrEqual(p.MinStock) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Reprice(ctx context.Context, businessEntity, channel string, exchangeRate, marginPct, discountPct decimal.Decimal) (int64, error) {
	return 0, nil
}

type fakeSettingsRepo struct {
	values map[string]string
}

func (r *fakeSettingsRepo) GetAll() (map[string]string, error) { return r.values, nil }
func (r *fakeSettingsRepo) Get(key string) (string, error) {
	v, ok := r.values[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

func (r *fakeSettingsRepo) Set(key, value string) error {
	r.values[key] = value
	return nil
}

func buildProductUC(t *testing.T) (*usecase.ProductUseCase, *fakeProductRepo) {
	t.Helper()
	pr := &fakeProductRepo{products: map[string]*entity.Product{}}
	sr := &fakeSettingsRepo{values: map[string]string{
		pricing.KeyTasaUSDCOP:       "4000",
		pricing.KeyWayraMargenENI:   "35",
		pricing.KeyWayraMargenCALAN: "40",
		pricing.KeyWayraDescuento:   "10",
	}}
	return usecase.NewProductUseCase(pr, sr), pr
}

func TestCreateProduct_ImportadoCalculaPreciosConTasa(t *testing.T) {
	uc, _ := buildProductUC(t)

	resp, err := uc.Create(dto.CreateProductRequest{
		Code:             "CAL-001",
		Name:             "Bomba de agua",
		BusinessEntity:   entity.EntityWayra,
		Channel:          entity.ChannelCALAN,
		PurchasePrice:    decimal.RequireFromString("10"),
		PurchaseCurrency: entity.CurrencyUSD,
	})
	require.NoError(t, err)
	// 10 USD × 4000 × 1.40 = 56000
	assert.True(t, resp.SalePrice.Equal(decimal.RequireFromString("56000")),
		"sale_price = %s", resp.SalePrice)
}

func TestCreateProduct_USDSoloEnCanalCalan(t *testing.T) {
	uc, pr := buildProductUC(t)

	// Un producto nacional (ENI) no puede comprarse en USD: su precio no
	// pasa por la tasa de cambio y quedaría inconsistente.
	_, err := uc.Create(dto.CreateProductRequest{
		Code:             "ENI-001",
		Name:             "Filtro de aceite",
		BusinessEntity:   entity.EntityWayra,
		Channel:          entity.ChannelENI,
		PurchasePrice:    decimal.RequireFromString("10"),
		PurchaseCurrency: entity.CurrencyUSD,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, pr.products)
}

func TestCreateProduct_CodigoDuplicado(t *testing.T) {
	uc, pr := buildProductUC(t)
	pr.products["p-1"] = &entity.Product{ID: "p-1", Code: "ENI-001"}

	_, err := uc.Create(dto.CreateProductRequest{
		Code:           "ENI-001",
		Name:           "Filtro de aceite",
		BusinessEntity: entity.EntityWayra,
		Channel:        entity.ChannelENI,
		PurchasePrice:  decimal.RequireFromString("10000"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
