package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entidades de negocio propietarias de productos.
const (
	EntityWayra = "WAYRA"
	EntityTorni = "TORNI"
)

// Canales de origen de un producto. CALAN identifica la línea importada
// (precio de compra en USD); ENI es la línea nacional.
const (
	ChannelENI   = "ENI"
	ChannelCALAN = "CALAN"
)

// Monedas de compra.
const (
	CurrencyCOP = "COP"
	CurrencyUSD = "USD"
)

// Product representa un producto o repuesto del inventario.
// Stock se muta únicamente vía movimientos de inventario; los precios de venta
// se recalculan desde configuración (márgenes, descuentos y tasa de cambio).
type Product struct {
	ID               string
	Code             string // código único
	Name             string
	Category         string
	BusinessEntity   string          // WAYRA | TORNI
	Channel          string          // ENI | CALAN
	PurchasePrice    decimal.Decimal // en PurchaseCurrency
	PurchaseCurrency string          // COP | USD
	SalePrice        decimal.Decimal
	WholesalePrice   decimal.Decimal
	RetailPrice      decimal.Decimal
	Stock            decimal.Decimal
	MinStock         decimal.Decimal
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsImported indica si el costo del producto debe convertirse de USD a COP
// con la tasa de cambio vigente antes de cualquier cálculo de ganancia o precio.
func (p *Product) IsImported() bool {
	return p.Channel == ChannelCALAN && p.PurchaseCurrency == CurrencyUSD
}
