package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayra/taller-api/internal/application/dto"
	"github.com/wayra/taller-api/internal/application/inventory"
	"github.com/wayra/taller-api/internal/domain"
	"github.com/wayra/taller-api/internal/domain/entity"
	"github.com/wayra/taller-api/internal/domain/repository"
)

// store estado compartido por los fakes, con snapshot/restore para imitar
// el Rollback de la transacción real.
type store struct {
	products  map[string]*entity.Product
	movements []*entity.InventoryMovement
}

func (s *store) snapshot() store {
	products := make(map[string]*entity.Product, len(s.products))
	for id, p := range s.products {
		cp := *p
		products[id] = &cp
	}
	return store{products: products, movements: append([]*entity.InventoryMovement(nil), s.movements...)}
}

type stubProductRepo struct{ s *store }

func (r *stubProductRepo) Create(*entity.Product) error { return nil }
func (r *stubProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *stubProductRepo) GetByCode(string) (*entity.Product, error) { return nil, nil }
func (r *stubProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *stubProductRepo) Update(*entity.Product) error { return nil }
func (r *stubProductRepo) UpdateStock(id string, stock decimal.Decimal) error {
	r.s.products[id].Stock = stock
	return nil
}
func (r *stubProductRepo) UpdatePrices(string, decimal.Decimal, decimal.Decimal, decimal.Decimal) error {
	return nil
}
func (r *stubProductRepo) List(int, int) ([]*entity.Product, error) { return nil, nil }
func (r *stubProductRepo) ListLowStock() ([]*entity.Product, error) { return nil, nil }
func (r *stubProductRepo) Reprice(context.Context, string, string, decimal.Decimal, decimal.Decimal, decimal.Decimal) (int64, error) {
	return 0, nil
}

type stubMovementRepo struct{ s *store }

func (r *stubMovementRepo) Create(m *entity.InventoryMovement) error {
	r.s.movements = append(r.s.movements, m)
	return nil
}
func (r *stubMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *stubMovementRepo) List(limit, offset int) ([]*entity.InventoryMovement, error) {
	return r.s.movements, nil
}

type stubTxRunner struct{ s *store }

func (t *stubTxRunner) RunInventory(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	before := t.s.snapshot()
	if err := fn(&stubProductRepo{s: t.s}, &stubMovementRepo{s: t.s}); err != nil {
		*t.s = before
		return err
	}
	return nil
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func build() (*inventory.RegisterMovementUseCase, *store) {
	s := &store{products: map[string]*entity.Product{
		"p1": {ID: "p1", Name: "Filtro de aceite", Stock: dec("10"), Active: true},
	}}
	uc := inventory.NewRegisterMovementUseCase(&stubTxRunner{s: s}, &stubProductRepo{s: s}, &stubMovementRepo{s: s})
	return uc, s
}

func TestRegisterMovement_EntradaSumaStock(t *testing.T) {
	uc, s := build()

	resp, err := uc.RegisterMovement(context.Background(), "u1", dto.RegisterMovementRequest{
		ProductID: "p1",
		Type:      entity.MovementTypeEntrada,
		Quantity:  dec("5"),
		UnitPrice: dec("12000"),
		Reason:    "compra proveedor",
	})
	require.NoError(t, err)

	assert.True(t, s.products["p1"].Stock.Equal(dec("15")))
	assert.True(t, resp.Quantity.Equal(dec("5")), "entrada queda positiva")
	assert.Equal(t, "u1", resp.CreatedBy)
	require.Len(t, s.movements, 1)
}

func TestRegisterMovement_SalidaRestaStock(t *testing.T) {
	uc, s := build()

	resp, err := uc.RegisterMovement(context.Background(), "u1", dto.RegisterMovementRequest{
		ProductID: "p1",
		Type:      entity.MovementTypeSalida,
		Quantity:  dec("4"),
	})
	require.NoError(t, err)

	assert.True(t, s.products["p1"].Stock.Equal(dec("6")))
	assert.True(t, resp.Quantity.Equal(dec("-4")), "salida queda negativa en el kardex")
}

// Una salida mayor al disponible no deja rastro: ni stock ni movimiento.
func TestRegisterMovement_SalidaInsuficienteRevierte(t *testing.T) {
	uc, s := build()

	_, err := uc.RegisterMovement(context.Background(), "u1", dto.RegisterMovementRequest{
		ProductID: "p1",
		Type:      entity.MovementTypeSalida,
		Quantity:  dec("11"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, s.products["p1"].Stock.Equal(dec("10")), "stock intacto tras el rollback")
	assert.Empty(t, s.movements)
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	uc, _ := build()
	ctx := context.Background()

	_, err := uc.RegisterMovement(ctx, "u1", dto.RegisterMovementRequest{
		ProductID: "p1", Type: "AJUSTE", Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido")

	_, err = uc.RegisterMovement(ctx, "u1", dto.RegisterMovementRequest{
		ProductID: "p1", Type: entity.MovementTypeEntrada, Quantity: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad debe ser positiva")

	_, err = uc.RegisterMovement(ctx, "u1", dto.RegisterMovementRequest{
		ProductID: "no-existe", Type: entity.MovementTypeEntrada, Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListMovements_FiltraPorProducto(t *testing.T) {
	uc, s := build()
	s.products["p2"] = &entity.Product{ID: "p2", Name: "Bujía", Stock: dec("3"), Active: true}

	ctx := context.Background()
	for _, id := range []string{"p1", "p2", "p1"} {
		_, err := uc.RegisterMovement(ctx, "u1", dto.RegisterMovementRequest{
			ProductID: id, Type: entity.MovementTypeEntrada, Quantity: dec("1"),
		})
		require.NoError(t, err)
	}

	all, err := uc.ListMovements(ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	soloP1, err := uc.ListMovements(ctx, "p1", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, soloP1, 2)
}
