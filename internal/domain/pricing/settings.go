package pricing

import "github.com/shopspring/decimal"

// Claves de configuración persistidas en la tabla settings.
const (
	KeyTasaUSDCOP           = "TASA_USD_COP"
	KeyWayraMargenENI       = "WAYRA_MARGEN_ENI"
	KeyWayraMargenCALAN     = "WAYRA_MARGEN_CALAN"
	KeyTorniMargenRepuestos = "TORNI_MARGEN_REPUESTOS"
	KeyWayraDescuento       = "WAYRA_DESCUENTO_MAYORISTA"
	KeyTorniDescuento       = "TORNI_DESCUENTO_MAYORISTA"
)

// DefaultExchangeRate tasa USD→COP usada cuando TASA_USD_COP no existe o no parsea.
var DefaultExchangeRate = decimal.NewFromInt(4000)

// Settings vista tipada de la configuración de precios. Evita que los casos de
// uso consulten claves sueltas: todo acceso pasa por un accessor con nombre.
type Settings struct {
	values map[string]string
}

// NewSettings construye la vista tipada desde el mapa clave→valor persistido.
func NewSettings(values map[string]string) Settings {
	if values == nil {
		values = map[string]string{}
	}
	return Settings{values: values}
}

func (s Settings) decimalOr(key string, def decimal.Decimal) decimal.Decimal {
	raw, ok := s.values[key]
	if !ok || raw == "" {
		return def
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return def
	}
	return d
}

// ExchangeRate devuelve la tasa USD→COP vigente (fallback 4000).
func (s Settings) ExchangeRate() decimal.Decimal {
	rate := s.decimalOr(KeyTasaUSDCOP, DefaultExchangeRate)
	if !rate.GreaterThan(decimal.Zero) {
		return DefaultExchangeRate
	}
	return rate
}

// MarginFor devuelve el porcentaje de margen según entidad y canal del producto.
func (s Settings) MarginFor(businessEntity, channel string) decimal.Decimal {
	switch {
	case businessEntity == "TORNI":
		return s.decimalOr(KeyTorniMargenRepuestos, decimal.Zero)
	case channel == "CALAN":
		return s.decimalOr(KeyWayraMargenCALAN, decimal.Zero)
	default:
		return s.decimalOr(KeyWayraMargenENI, decimal.Zero)
	}
}

// WholesaleDiscountFor devuelve el porcentaje de descuento mayorista por entidad.
func (s Settings) WholesaleDiscountFor(businessEntity string) decimal.Decimal {
	if businessEntity == "TORNI" {
		return s.decimalOr(KeyTorniDescuento, decimal.Zero)
	}
	return s.decimalOr(KeyWayraDescuento, decimal.Zero)
}
