package orders_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayra/taller-api/internal/application/dto"
	"github.com/wayra/taller-api/internal/application/orders"
	"github.com/wayra/taller-api/internal/domain"
	"github.com/wayra/taller-api/internal/domain/entity"
	"github.com/wayra/taller-api/internal/domain/pricing"
	"github.com/wayra/taller-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El txRunner falso toma un snapshot del estado antes de
// ejecutar fn y lo restaura si fn falla, imitando el rollback de Postgres.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	clients   map[string]*entity.Client
	vehicles  map[string]*entity.Vehicle
	users     map[string]*entity.User
	products  map[string]*entity.Product
	orders    map[string]*entity.Order
	movements []*entity.InventoryMovement
	counters  map[string]int
	ledger    []*entity.AccountingMovement
	settings  map[string]string
}

func newMemStore() *memStore {
	return &memStore{
		clients:  map[string]*entity.Client{},
		vehicles: map[string]*entity.Vehicle{},
		users:    map[string]*entity.User{},
		products: map[string]*entity.Product{},
		orders:   map[string]*entity.Order{},
		counters: map[string]int{},
		settings: map[string]string{},
	}
}

func (s *memStore) snapshot() *memStore {
	c := newMemStore()
	for k, v := range s.clients {
		cp := *v
		c.clients[k] = &cp
	}
	for k, v := range s.vehicles {
		cp := *v
		c.vehicles[k] = &cp
	}
	for k, v := range s.users {
		cp := *v
		c.users[k] = &cp
	}
	for k, v := range s.products {
		cp := *v
		c.products[k] = &cp
	}
	for k, v := range s.orders {
		cp := *v
		c.orders[k] = &cp
	}
	c.movements = append(c.movements, s.movements...)
	for k, v := range s.counters {
		c.counters[k] = v
	}
	c.ledger = append(c.ledger, s.ledger...)
	for k, v := range s.settings {
		c.settings[k] = v
	}
	return c
}

func (s *memStore) restore(from *memStore) { *s = *from }

// clientRepo

type memClientRepo struct{ s *memStore }

func (r *memClientRepo) Create(c *entity.Client) error { r.s.clients[c.ID] = c; return nil }
func (r *memClientRepo) GetByID(id string) (*entity.Client, error) {
	return r.s.clients[id], nil
}
func (r *memClientRepo) GetByDocument(_, _ string) (*entity.Client, error) { return nil, nil }
func (r *memClientRepo) Update(c *entity.Client) error                     { r.s.clients[c.ID] = c; return nil }
func (r *memClientRepo) List(_, _ int) ([]*entity.Client, error)           { return nil, nil }

// vehicleRepo

type memVehicleRepo struct{ s *memStore }

func (r *memVehicleRepo) Create(v *entity.Vehicle) error { r.s.vehicles[v.ID] = v; return nil }
func (r *memVehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	return r.s.vehicles[id], nil
}
func (r *memVehicleRepo) GetByPlate(_ string) (*entity.Vehicle, error)       { return nil, nil }
func (r *memVehicleRepo) ListByClient(_ string) ([]*entity.Vehicle, error)   { return nil, nil }
func (r *memVehicleRepo) Update(v *entity.Vehicle) error                     { r.s.vehicles[v.ID] = v; return nil }

// userRepo

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(u *entity.User) error                   { r.s.users[u.ID] = u; return nil }
func (r *memUserRepo) GetByID(id string) (*entity.User, error)       { return r.s.users[id], nil }
func (r *memUserRepo) FindByEmail(_ string) (*entity.User, error)    { return nil, nil }
func (r *memUserRepo) ListByRole(_ string) ([]*entity.User, error)   { return nil, nil }

// productRepo

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *memProductRepo) GetByCode(_ string) (*entity.Product, error) { return nil, nil }
func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *memProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r *memProductRepo) UpdateStock(id string, stock decimal.Decimal) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}
func (r *memProductRepo) UpdatePrices(id string, sale, wholesale, retail decimal.Decimal) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.SalePrice, p.WholesalePrice, p.RetailPrice = sale, wholesale, retail
	return nil
}
func (r *memProductRepo) List(_, _ int) ([]*entity.Product, error)  { return nil, nil }
func (r *memProductRepo) ListLowStock() ([]*entity.Product, error)  { return nil, nil }
func (r *memProductRepo) Reprice(_ context.Context, businessEntity, channel string, rate, margin, discount decimal.Decimal) (int64, error) {
	var n int64
	for _, p := range r.s.products {
		if !p.Active || p.BusinessEntity != businessEntity {
			continue
		}
		if channel != "" && p.Channel != channel {
			continue
		}
		cost := p.PurchasePrice
		if p.IsImported() {
			cost = cost.Mul(rate)
		}
		hundred := decimal.NewFromInt(100)
		sale := cost.Mul(decimal.NewFromInt(1).Add(margin.Div(hundred))).Round(2)
		p.SalePrice = sale
		p.WholesalePrice = sale.Mul(decimal.NewFromInt(1).Sub(discount.Div(hundred))).Round(2)
		p.RetailPrice = sale
		n++
	}
	return n, nil
}

// orderRepo

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) Create(o *entity.Order) error { cp := *o; r.s.orders[o.ID] = &cp; return nil }
func (r *memOrderRepo) CreateService(l *entity.OrderService) error {
	o := r.s.orders[l.OrderID]
	o.Services = append(o.Services, *l)
	return nil
}
func (r *memOrderRepo) CreateProduct(l *entity.OrderProduct) error {
	o := r.s.orders[l.OrderID]
	o.Products = append(o.Products, *l)
	return nil
}
func (r *memOrderRepo) CreateExternalPart(l *entity.ExternalPart) error {
	o := r.s.orders[l.OrderID]
	o.ExternalParts = append(o.ExternalParts, *l)
	return nil
}
func (r *memOrderRepo) GetByID(id string) (*entity.Order, error)       { return r.s.orders[id], nil }
func (r *memOrderRepo) GetWithLines(id string) (*entity.Order, error)  { return r.s.orders[id], nil }
func (r *memOrderRepo) Update(o *entity.Order) error {
	cp := *o
	r.s.orders[o.ID] = &cp
	return nil
}
func (r *memOrderRepo) List(status string, _, _ int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.s.orders {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

// movRepo

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.InventoryMovement) error {
	r.s.movements = append(r.s.movements, m)
	return nil
}
func (r *memMovementRepo) ListByProduct(_ string, _, _ int) ([]*entity.InventoryMovement, error) {
	return r.s.movements, nil
}
func (r *memMovementRepo) List(_, _ int) ([]*entity.InventoryMovement, error) {
	return r.s.movements, nil
}

// counterRepo

type memCounterRepo struct{ s *memStore }

func (r *memCounterRepo) NextSequence(_ context.Context, scope string, year, month int) (int, error) {
	key := fmt.Sprintf("%s-%d-%d", scope, year, month)
	r.s.counters[key]++
	return r.s.counters[key], nil
}

// accRepo

type memAccountingRepo struct{ s *memStore }

func (r *memAccountingRepo) Create(m *entity.AccountingMovement) error {
	r.s.ledger = append(r.s.ledger, m)
	return nil
}
func (r *memAccountingRepo) List(_ string, _ int, _, _ int) ([]*entity.AccountingMovement, error) {
	return r.s.ledger, nil
}
func (r *memAccountingRepo) TotalsByMonth(_ context.Context, businessEntity string, year, from, to int) ([]repository.MonthlyTotals, error) {
	byMonth := map[int]*repository.MonthlyTotals{}
	for _, m := range r.s.ledger {
		if m.BusinessEntity != businessEntity || m.Year != year || m.Month < from || m.Month > to {
			continue
		}
		t, ok := byMonth[m.Month]
		if !ok {
			t = &repository.MonthlyTotals{Month: m.Month}
			byMonth[m.Month] = t
		}
		if m.Type == entity.AccountingTypeIngreso {
			t.Income = t.Income.Add(m.Amount)
		} else {
			t.Expense = t.Expense.Add(m.Amount)
		}
	}
	var out []repository.MonthlyTotals
	for m := from; m <= to; m++ {
		if t, ok := byMonth[m]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

// settingsRepo

type memSettingsRepo struct{ s *memStore }

func (r *memSettingsRepo) GetAll() (map[string]string, error) { return r.s.settings, nil }
func (r *memSettingsRepo) Get(key string) (string, error)     { return r.s.settings[key], nil }
func (r *memSettingsRepo) Set(key, value string) error {
	r.s.settings[key] = value
	return nil
}

// txRunner con semántica de rollback.

type memTxRunner struct{ s *memStore }

func (t *memTxRunner) Run(_ context.Context, fn func(
	repository.OrderRepository,
	repository.ProductRepository,
	repository.InventoryMovementRepository,
	repository.OrderCounterRepository,
	repository.AccountingRepository,
) error) error {
	snap := t.s.snapshot()
	err := fn(&memOrderRepo{t.s}, &memProductRepo{t.s}, &memMovementRepo{t.s}, &memCounterRepo{t.s}, &memAccountingRepo{t.s})
	if err != nil {
		t.s.restore(snap)
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func buildUseCase(t *testing.T) (*orders.CreateOrderUseCase, *memStore) {
	t.Helper()
	s := newMemStore()
	s.clients["c1"] = &entity.Client{ID: "c1", Name: "Cliente Uno"}
	s.vehicles["v1"] = &entity.Vehicle{ID: "v1", ClientID: "c1", Plate: "ABC123"}
	s.users["m1"] = &entity.User{ID: "m1", Role: entity.RoleMecanico, Status: "active"}
	s.products["p1"] = &entity.Product{
		ID: "p1", Code: "NAC-1", BusinessEntity: entity.EntityWayra,
		Channel: entity.ChannelENI, PurchasePrice: dec("30000"),
		PurchaseCurrency: entity.CurrencyCOP, SalePrice: dec("45000"),
		Stock: dec("10"), Active: true,
	}
	s.products["p2"] = &entity.Product{
		ID: "p2", Code: "IMP-1", BusinessEntity: entity.EntityWayra,
		Channel: entity.ChannelCALAN, PurchasePrice: dec("10"),
		PurchaseCurrency: entity.CurrencyUSD, SalePrice: dec("50000"),
		Stock: dec("5"), Active: true,
	}
	s.settings[pricing.KeyTasaUSDCOP] = "4000"

	uc := orders.NewCreateOrderUseCase(
		&memTxRunner{s}, &memClientRepo{s}, &memVehicleRepo{s}, &memUserRepo{s},
		&memProductRepo{s}, &memOrderRepo{s}, &memSettingsRepo{s},
	)
	return uc, s
}

func baseRequest() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		ClientID:   "c1",
		VehicleID:  "v1",
		MechanicID: "m1",
		LaborFee:   dec("20000"),
		Services: []dto.OrderServiceRequest{
			{Description: "Cambio de aceite", Price: dec("35000")},
		},
		Products: []dto.OrderProductRequest{
			{ProductID: "p1", Quantity: dec("2"), UnitPrice: dec("45000")},
		},
		ExternalParts: []dto.ExternalPartRequest{
			{Name: "Correa", Quantity: dec("1"), BuyPrice: dec("15000"), SellPrice: dec("25000")},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_TotalesYCodigo(t *testing.T) {
	uc, s := buildUseCase(t)

	resp, err := uc.CreateOrder(context.Background(), "u1", baseRequest())
	require.NoError(t, err)

	// subtotal = 35000 + 2×45000 + 25000 = 150000; total = +20000 mano de obra
	assert.True(t, resp.Subtotal.Equal(dec("150000")), "subtotal %s", resp.Subtotal)
	assert.True(t, resp.Total.Equal(dec("170000")), "total %s", resp.Total)

	// ganancia = producto (45000−30000)×2 + externo (25000−15000)×1 = 40000
	assert.True(t, resp.Profit.Equal(dec("40000")), "ganancia %s", resp.Profit)

	now := time.Now()
	wantCode := entity.FormatOrderCode(now.Year(), now.Month(), 1)
	assert.Equal(t, wantCode, resp.Code, "primer código del mes termina en 001")

	// Stock descontado y movimiento SALIDA con el código de la orden.
	assert.True(t, s.products["p1"].Stock.Equal(dec("8")))
	require.Len(t, s.movements, 1)
	assert.Equal(t, entity.MovementTypeSalida, s.movements[0].Type)
	assert.Equal(t, wantCode, s.movements[0].Reason)
	assert.True(t, s.movements[0].Quantity.Equal(dec("-2")), "cantidad negativa en salidas")
}

func TestCreateOrder_SecuenciaIncrementaPorMes(t *testing.T) {
	uc, _ := buildUseCase(t)
	ctx := context.Background()

	first, err := uc.CreateOrder(ctx, "u1", baseRequest())
	require.NoError(t, err)
	second, err := uc.CreateOrder(ctx, "u1", baseRequest())
	require.NoError(t, err)

	now := time.Now()
	assert.Equal(t, entity.FormatOrderCode(now.Year(), now.Month(), 1), first.Code)
	assert.Equal(t, entity.FormatOrderCode(now.Year(), now.Month(), 2), second.Code)
}

func TestCreateOrder_GananciaImportadoUsaTasa(t *testing.T) {
	uc, _ := buildUseCase(t)

	in := dto.CreateOrderRequest{
		ClientID:   "c1",
		VehicleID:  "v1",
		MechanicID: "m1",
		Products: []dto.OrderProductRequest{
			{ProductID: "p2", Quantity: dec("2"), UnitPrice: dec("50000")},
		},
	}
	resp, err := uc.CreateOrder(context.Background(), "u1", in)
	require.NoError(t, err)

	// costo convertido 10×4000; ganancia (50000−40000)×2 = 20000.
	assert.True(t, resp.Profit.Equal(dec("20000")), "ganancia %s", resp.Profit)
	assert.True(t, resp.Total.Equal(dec("100000")))
}

func TestCreateOrder_StockInsuficienteRevierteTodo(t *testing.T) {
	uc, s := buildUseCase(t)

	in := baseRequest()
	in.Products = []dto.OrderProductRequest{
		{ProductID: "p1", Quantity: dec("50"), UnitPrice: dec("45000")},
	}
	_, err := uc.CreateOrder(context.Background(), "u1", in)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada persiste: sin órdenes, sin movimientos, stock intacto,
	// y el siguiente código vuelve a empezar en 001.
	assert.Empty(t, s.orders)
	assert.Empty(t, s.movements)
	assert.True(t, s.products["p1"].Stock.Equal(dec("10")))

	resp, err := uc.CreateOrder(context.Background(), "u1", baseRequest())
	require.NoError(t, err)
	now := time.Now()
	assert.Equal(t, entity.FormatOrderCode(now.Year(), now.Month(), 1), resp.Code)
}

func TestCreateOrder_ValidaReferencias(t *testing.T) {
	uc, _ := buildUseCase(t)
	ctx := context.Background()

	in := baseRequest()
	in.ClientID = "no-existe"
	_, err := uc.CreateOrder(ctx, "u1", in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	in = baseRequest()
	in.MechanicID = ""
	_, err = uc.CreateOrder(ctx, "u1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateOrder_RepuestoExternoConPrecioNegativo(t *testing.T) {
	uc, s := buildUseCase(t)
	ctx := context.Background()

	in := baseRequest()
	in.ExternalParts[0].SellPrice = dec("-25000")
	_, err := uc.CreateOrder(ctx, "u1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = baseRequest()
	in.ExternalParts[0].BuyPrice = dec("-15000")
	_, err = uc.CreateOrder(ctx, "u1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Nada llegó a persistirse: ni orden ni descuento de stock.
	assert.Empty(t, s.orders)
	assert.True(t, s.products["p1"].Stock.Equal(dec("10")))
}

func TestUpdateOrder_CompletarRegistraContabilidad(t *testing.T) {
	uc, s := buildUseCase(t)
	ctx := context.Background()

	created, err := uc.CreateOrder(ctx, "u1", baseRequest())
	require.NoError(t, err)

	status := entity.OrderStatusCompletada
	resp, err := uc.UpdateOrder(ctx, created.ID, "u1", dto.UpdateOrderRequest{Status: status})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompletada, resp.Status)

	// INGRESO por el total y EGRESO por la compra del repuesto externo.
	require.Len(t, s.ledger, 2)
	income, expense := s.ledger[0], s.ledger[1]
	assert.Equal(t, entity.AccountingTypeIngreso, income.Type)
	assert.True(t, income.Amount.Equal(dec("170000")))
	assert.Equal(t, entity.AccountingEntityWayraTaller, income.BusinessEntity)
	assert.Equal(t, entity.AccountingTypeEgreso, expense.Type)
	assert.True(t, expense.Amount.Equal(dec("15000")))
}

func TestUpdateOrder_CompletadaNoEsEditable(t *testing.T) {
	uc, _ := buildUseCase(t)
	ctx := context.Background()

	created, err := uc.CreateOrder(ctx, "u1", baseRequest())
	require.NoError(t, err)
	_, err = uc.UpdateOrder(ctx, created.ID, "u1", dto.UpdateOrderRequest{Status: entity.OrderStatusCompletada})
	require.NoError(t, err)

	desc := "cambio tardío"
	_, err = uc.UpdateOrder(ctx, created.ID, "u1", dto.UpdateOrderRequest{Description: &desc})
	assert.ErrorIs(t, err, domain.ErrOrderNotEditable)

	// COMPLETADA es terminal: no vuelve a EN_PROCESO.
	_, err = uc.UpdateOrder(ctx, created.ID, "u1", dto.UpdateOrderRequest{Status: entity.OrderStatusEnProceso})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
