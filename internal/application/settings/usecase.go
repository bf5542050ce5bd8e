package settings

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/wayra/taller-api/internal/application/dto"
	"github.com/wayra/taller-api/internal/domain"
	"github.com/wayra/taller-api/internal/domain/entity"
	"github.com/wayra/taller-api/internal/domain/pricing"
	"github.com/wayra/taller-api/internal/domain/repository"
)

// repriceTarget grupo de productos afectado por un cambio de configuración.
type repriceTarget struct {
	businessEntity string
	channel        string // vacío = todos los canales de la entidad
}

// UseCase lectura y guardado de configuración de precios. Guardar una clave de
// margen, descuento o tasa de cambio dispara el recálculo en bloque de los
// precios de los productos afectados, de forma síncrona, y reporta el número
// exacto de filas actualizadas.
type UseCase struct {
	settingsRepo repository.SettingsRepository
	productRepo  repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(settingsRepo repository.SettingsRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{settingsRepo: settingsRepo, productRepo: productRepo}
}

// GetSettings devuelve la configuración vigente.
func (uc *UseCase) GetSettings(ctx context.Context) (*dto.SettingsResponse, error) {
	values, err := uc.settingsRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return &dto.SettingsResponse{Values: values}, nil
}

// GetSetting devuelve el valor de una sola clave de configuración.
// Devuelve domain.ErrNotFound si la clave no existe.
func (uc *UseCase) GetSetting(ctx context.Context, key string) (*dto.SettingResponse, error) {
	value, err := uc.settingsRepo.Get(key)
	if err != nil {
		return nil, err
	}
	return &dto.SettingResponse{Key: key, Value: value}, nil
}

// UpdateSettings valida y persiste las claves recibidas y recalcula los
// precios de los productos cuya fórmula depende de esas claves.
func (uc *UseCase) UpdateSettings(ctx context.Context, in dto.UpdateSettingsRequest) (*dto.UpdateSettingsResponse, error) {
	if len(in.Values) == 0 {
		return nil, domain.ErrInvalidInput
	}

	targets := map[repriceTarget]bool{}
	for key, value := range in.Values {
		d, err := decimal.NewFromString(value)
		if err != nil || d.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		switch key {
		case pricing.KeyTasaUSDCOP:
			if !d.GreaterThan(decimal.Zero) {
				return nil, domain.ErrInvalidInput
			}
			// Solo la línea importada depende de la tasa
			targets[repriceTarget{entity.EntityWayra, entity.ChannelCALAN}] = true
			targets[repriceTarget{entity.EntityTorni, entity.ChannelCALAN}] = true
		case pricing.KeyWayraMargenENI:
			targets[repriceTarget{entity.EntityWayra, entity.ChannelENI}] = true
		case pricing.KeyWayraMargenCALAN:
			targets[repriceTarget{entity.EntityWayra, entity.ChannelCALAN}] = true
		case pricing.KeyTorniMargenRepuestos, pricing.KeyTorniDescuento:
			targets[repriceTarget{entity.EntityTorni, ""}] = true
		case pricing.KeyWayraDescuento:
			// El margen de Wayra depende del canal: repreciar ambos grupos
			targets[repriceTarget{entity.EntityWayra, entity.ChannelENI}] = true
			targets[repriceTarget{entity.EntityWayra, entity.ChannelCALAN}] = true
		default:
			return nil, domain.ErrInvalidInput
		}
	}

	updatedKeys := make([]string, 0, len(in.Values))
	for key, value := range in.Values {
		if err := uc.settingsRepo.Set(key, value); err != nil {
			return nil, err
		}
		updatedKeys = append(updatedKeys, key)
	}
	sort.Strings(updatedKeys)

	// El grupo "todos los canales" de una entidad absorbe sus grupos por canal
	for t := range targets {
		if t.channel != "" && targets[repriceTarget{t.businessEntity, ""}] {
			delete(targets, t)
		}
	}

	values, err := uc.settingsRepo.GetAll()
	if err != nil {
		return nil, err
	}
	cfg := pricing.NewSettings(values)

	var repriced int64
	for t := range targets {
		marginChannel := t.channel
		if marginChannel == "" {
			marginChannel = entity.ChannelENI // TORNI: margen único para todos los canales
		}
		count, err := uc.productRepo.Reprice(
			ctx,
			t.businessEntity,
			t.channel,
			cfg.ExchangeRate(),
			cfg.MarginFor(t.businessEntity, marginChannel),
			cfg.WholesaleDiscountFor(t.businessEntity),
		)
		if err != nil {
			return nil, err
		}
		repriced += count
	}

	return &dto.UpdateSettingsResponse{UpdatedKeys: updatedKeys, ProductsRepriced: repriced}, nil
}
