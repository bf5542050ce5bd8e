// Package pricing implementa los servicios de dominio de precios y ganancia:
// conversión de costos USD→COP para la línea importada (CALAN), ganancia por
// línea de producto y recálculo de precios de venta desde márgenes y
// descuentos configurados.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/wayra/taller-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// ConvertedCost devuelve el costo de compra en COP. Para productos importados
// (canal CALAN con compra en USD) multiplica por la tasa de cambio; para la
// línea nacional devuelve el costo tal cual.
func ConvertedCost(p *entity.Product, exchangeRate decimal.Decimal) decimal.Decimal {
	if p.IsImported() {
		return p.PurchasePrice.Mul(exchangeRate)
	}
	return p.PurchasePrice
}

// LineProfit calcula la ganancia de una línea de producto:
// (precioVenta − costoConvertido) × cantidad. Nunca usa el costo USD crudo.
func LineProfit(p *entity.Product, quantity, unitPrice, exchangeRate decimal.Decimal) decimal.Decimal {
	cost := ConvertedCost(p, exchangeRate)
	return unitPrice.Sub(cost).Mul(quantity)
}

// Prices precios de venta derivados del costo de compra.
type Prices struct {
	Sale      decimal.Decimal
	Wholesale decimal.Decimal
	Retail    decimal.Decimal
}

// ComputePrices recalcula los precios de venta de un producto:
//
//	venta     = costoConvertido × (1 + margen%)
//	mayorista = venta × (1 − descuento%)
//	detal     = venta
//
// Redondeo a 2 decimales (pesos con centavos).
func ComputePrices(p *entity.Product, s Settings) Prices {
	cost := ConvertedCost(p, s.ExchangeRate())
	margin := s.MarginFor(p.BusinessEntity, p.Channel)
	discount := s.WholesaleDiscountFor(p.BusinessEntity)

	sale := cost.Mul(decimal.NewFromInt(1).Add(margin.Div(hundred))).Round(2)
	wholesale := sale.Mul(decimal.NewFromInt(1).Sub(discount.Div(hundred))).Round(2)
	return Prices{Sale: sale, Wholesale: wholesale, Retail: sale}
}

// GrowthPercent calcula el crecimiento porcentual (actual − anterior)/anterior × 100.
// Con denominador cero devuelve cero (nunca NaN/Inf).
func GrowthPercent(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}
