package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wayra/taller-api/internal/application/dto"
	"github.com/wayra/taller-api/internal/domain"
	"github.com/wayra/taller-api/internal/domain/entity"
	"github.com/wayra/taller-api/internal/domain/pricing"
	"github.com/wayra/taller-api/internal/domain/repository"
)

// CreateOrderUseCase crea órdenes de trabajo de forma transaccional: cabecera,
// líneas, descuento de stock con bloqueo de fila y movimientos de inventario
// se confirman o revierten juntos.
type CreateOrderUseCase struct {
	txRunner     TxRunner
	clientRepo   repository.ClientRepository
	vehicleRepo  repository.VehicleRepository
	userRepo     repository.UserRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	settingsRepo repository.SettingsRepository
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(
	txRunner TxRunner,
	clientRepo repository.ClientRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	settingsRepo repository.SettingsRepository,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		txRunner:     txRunner,
		clientRepo:   clientRepo,
		vehicleRepo:  vehicleRepo,
		userRepo:     userRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		settingsRepo: settingsRepo,
	}
}

// CreateOrder valida la solicitud, calcula subtotales, total y ganancia, y
// persiste todo en una sola transacción. El stock se bloquea por fila
// (SELECT FOR UPDATE) y una salida mayor al stock disponible revierte la
// orden completa con ErrInsufficientStock.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.ClientID == "" || in.VehicleID == "" || in.MechanicID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.LaborFee.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil || client == nil {
		return nil, domain.ErrNotFound
	}
	vehicle, err := uc.vehicleRepo.GetByID(in.VehicleID)
	if err != nil || vehicle == nil {
		return nil, domain.ErrNotFound
	}
	if vehicle.ClientID != client.ID {
		return nil, domain.ErrInvalidInput
	}
	mechanic, err := uc.userRepo.GetByID(in.MechanicID)
	if err != nil || mechanic == nil {
		return nil, domain.ErrNotFound
	}

	// Validar líneas de producto y cargar productos (solo lectura, fuera de la tx)
	productsByID := make(map[string]*entity.Product)
	for _, item := range in.Products {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) || item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil || product == nil {
			return nil, domain.ErrNotFound
		}
		if !product.Active {
			return nil, domain.ErrInvalidInput
		}
		productsByID[item.ProductID] = product
	}
	for _, svc := range in.Services {
		if svc.Description == "" || svc.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}
	for _, ext := range in.ExternalParts {
		if ext.Name == "" || !ext.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if ext.BuyPrice.LessThan(decimal.Zero) || ext.SellPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	settingsMap, err := uc.settingsRepo.GetAll()
	if err != nil {
		return nil, err
	}
	settings := pricing.NewSettings(settingsMap)
	exchangeRate := settings.ExchangeRate()

	now := time.Now()
	order := &entity.Order{
		ID:          uuid.New().String(),
		ClientID:    in.ClientID,
		VehicleID:   in.VehicleID,
		MechanicID:  in.MechanicID,
		Description: in.Description,
		Status:      entity.OrderStatusPendiente,
		LaborFee:    in.LaborFee,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Subtotales y ganancia
	subtotal := decimal.Zero
	profit := decimal.Zero
	for _, svc := range in.Services {
		subtotal = subtotal.Add(svc.Price)
		order.Services = append(order.Services, entity.OrderService{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			Description: svc.Description,
			Price:       svc.Price,
		})
	}
	for _, item := range in.Products {
		product := productsByID[item.ProductID]
		unitPrice := item.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.SalePrice
		}
		lineProfit := pricing.LineProfit(product, item.Quantity, unitPrice, exchangeRate)
		subtotal = subtotal.Add(item.Quantity.Mul(unitPrice))
		profit = profit.Add(lineProfit)
		order.Products = append(order.Products, entity.OrderProduct{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			PriceTier: item.PriceTier,
			Profit:    lineProfit,
		})
	}
	for _, ext := range in.ExternalParts {
		extSubtotal := ext.Quantity.Mul(ext.SellPrice)
		extProfit := ext.SellPrice.Sub(ext.BuyPrice).Mul(ext.Quantity)
		subtotal = subtotal.Add(extSubtotal)
		profit = profit.Add(extProfit)
		order.ExternalParts = append(order.ExternalParts, entity.ExternalPart{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			Name:      ext.Name,
			Quantity:  ext.Quantity,
			BuyPrice:  ext.BuyPrice,
			SellPrice: ext.SellPrice,
			Subtotal:  extSubtotal,
			Profit:    extProfit,
		})
	}
	order.Subtotal = subtotal
	order.Total = subtotal.Add(in.LaborFee)
	order.Profit = profit

	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		counterRepo repository.OrderCounterRepository,
		_ repository.AccountingRepository,
	) error {
		// Código secuencial por (año, mes); el contador upsert dentro de la tx
		// no deja huecos si la orden se revierte.
		seq, err := counterRepo.NextSequence(ctx, repository.CounterScopeOrder, now.Year(), int(now.Month()))
		if err != nil {
			return err
		}
		order.Code = entity.FormatOrderCode(now.Year(), now.Month(), seq)

		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for i := range order.Services {
			if err := orderRepo.CreateService(&order.Services[i]); err != nil {
				return err
			}
		}
		for i := range order.ExternalParts {
			if err := orderRepo.CreateExternalPart(&order.ExternalParts[i]); err != nil {
				return err
			}
		}
		for i := range order.Products {
			line := &order.Products[i]
			if err := orderRepo.CreateProduct(line); err != nil {
				return err
			}
			// Bloquea la fila del producto, verifica stock y descuenta
			locked, err := productRepo.GetForUpdate(line.ProductID)
			if err != nil || locked == nil {
				return domain.ErrNotFound
			}
			if locked.Stock.LessThan(line.Quantity) {
				return domain.ErrInsufficientStock
			}
			if err := productRepo.UpdateStock(line.ProductID, locked.Stock.Sub(line.Quantity)); err != nil {
				return err
			}
			mov := &entity.InventoryMovement{
				ID:        uuid.New().String(),
				ProductID: line.ProductID,
				Type:      entity.MovementTypeSalida,
				Quantity:  line.Quantity.Neg(),
				UnitPrice: line.UnitPrice,
				Reason:    order.Code,
				CreatedBy: userID,
				CreatedAt: now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toOrderResponse(order), nil
}

// GetOrder obtiene una orden con todas sus líneas.
func (uc *CreateOrderUseCase) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetWithLines(id)
	if err != nil || order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// ListOrders lista órdenes, opcionalmente filtradas por estado.
func (uc *CreateOrderUseCase) ListOrders(ctx context.Context, status string, page dto.PageRequest) ([]dto.OrderResponse, error) {
	page.DefaultPage()
	orders, err := uc.orderRepo.List(status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, *toOrderResponse(o))
	}
	return out, nil
}

// UpdateOrder aplica transiciones de estado y ediciones sobre una orden.
// Completar la orden escribe los asientos contables (ingreso por el total,
// egreso por la compra de repuestos externos) en la misma transacción.
func (uc *CreateOrderUseCase) UpdateOrder(ctx context.Context, id, userID string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetWithLines(id)
	if err != nil || order == nil {
		return nil, domain.ErrNotFound
	}

	if in.Description != nil || in.LaborFee != nil {
		if !order.IsEditable() {
			return nil, domain.ErrOrderNotEditable
		}
		if in.Description != nil {
			order.Description = *in.Description
		}
		if in.LaborFee != nil {
			if in.LaborFee.LessThan(decimal.Zero) {
				return nil, domain.ErrInvalidInput
			}
			order.Total = order.Total.Sub(order.LaborFee).Add(*in.LaborFee)
			order.LaborFee = *in.LaborFee
		}
	}

	completing := false
	if in.Status != "" && in.Status != order.Status {
		if !order.CanTransitionTo(in.Status) {
			return nil, domain.ErrConflict
		}
		completing = in.Status == entity.OrderStatusCompletada
		order.Status = in.Status
	}
	order.UpdatedAt = time.Now()

	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.ProductRepository,
		_ repository.InventoryMovementRepository,
		_ repository.OrderCounterRepository,
		accRepo repository.AccountingRepository,
	) error {
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		if !completing {
			return nil
		}
		now := order.UpdatedAt
		income := &entity.AccountingMovement{
			ID:             uuid.New().String(),
			BusinessEntity: entity.AccountingEntityWayraTaller,
			Type:           entity.AccountingTypeIngreso,
			Concept:        "Orden " + order.Code,
			Amount:         order.Total,
			Month:          int(now.Month()),
			Year:           now.Year(),
			OrderID:        order.ID,
			CreatedBy:      userID,
			CreatedAt:      now,
		}
		if err := accRepo.Create(income); err != nil {
			return err
		}
		externalCost := decimal.Zero
		for _, ext := range order.ExternalParts {
			externalCost = externalCost.Add(ext.BuyPrice.Mul(ext.Quantity))
		}
		if externalCost.GreaterThan(decimal.Zero) {
			expense := &entity.AccountingMovement{
				ID:             uuid.New().String(),
				BusinessEntity: entity.AccountingEntityWayraTaller,
				Type:           entity.AccountingTypeEgreso,
				Concept:        "Repuestos externos orden " + order.Code,
				Amount:         externalCost,
				Month:          int(now.Month()),
				Year:           now.Year(),
				OrderID:        order.ID,
				CreatedBy:      userID,
				CreatedAt:      now,
			}
			if err := accRepo.Create(expense); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:          o.ID,
		Code:        o.Code,
		ClientID:    o.ClientID,
		VehicleID:   o.VehicleID,
		MechanicID:  o.MechanicID,
		Description: o.Description,
		Status:      o.Status,
		LaborFee:    o.LaborFee,
		Subtotal:    o.Subtotal,
		Total:       o.Total,
		Profit:      o.Profit,
		Services:    make([]dto.OrderServiceResponse, 0, len(o.Services)),
		Products:    make([]dto.OrderProductResponse, 0, len(o.Products)),
		ExternalParts: make([]dto.ExternalPartResponse, 0, len(o.ExternalParts)),
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
	}
	for _, s := range o.Services {
		resp.Services = append(resp.Services, dto.OrderServiceResponse{
			ID: s.ID, Description: s.Description, Price: s.Price,
		})
	}
	for _, p := range o.Products {
		resp.Products = append(resp.Products, dto.OrderProductResponse{
			ID: p.ID, ProductID: p.ProductID, Quantity: p.Quantity,
			UnitPrice: p.UnitPrice, PriceTier: p.PriceTier, Profit: p.Profit,
		})
	}
	for _, e := range o.ExternalParts {
		resp.ExternalParts = append(resp.ExternalParts, dto.ExternalPartResponse{
			ID: e.ID, Name: e.Name, Quantity: e.Quantity, BuyPrice: e.BuyPrice,
			SellPrice: e.SellPrice, Subtotal: e.Subtotal, Profit: e.Profit,
		})
	}
	return resp
}
