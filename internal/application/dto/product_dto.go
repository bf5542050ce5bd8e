package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/productos.
// Los precios de venta se calculan desde configuración; solo si vienen en el
// body se respetan tal cual (carga inicial de catálogo).
type CreateProductRequest struct {
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	BusinessEntity   string          `json:"business_entity"` // WAYRA | TORNI
	Channel          string          `json:"channel"`         // ENI | CALAN
	PurchasePrice    decimal.Decimal `json:"purchase_price"`
	PurchaseCurrency string          `json:"purchase_currency"` // COP | USD
	SalePrice        decimal.Decimal `json:"sale_price,omitempty"`
	WholesalePrice   decimal.Decimal `json:"wholesale_price,omitempty"`
	RetailPrice      decimal.Decimal `json:"retail_price,omitempty"`
	InitialStock     decimal.Decimal `json:"initial_stock,omitempty"`
	MinStock         decimal.Decimal `json:"min_stock,omitempty"`
}

// UpdateProductRequest body para PUT /api/productos/:id.
// Stock no se toca aquí: solo vía movimientos de inventario.
type UpdateProductRequest struct {
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	MinStock      decimal.Decimal `json:"min_stock"`
	Active        *bool           `json:"active,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID               string          `json:"id"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	BusinessEntity   string          `json:"business_entity"`
	Channel          string          `json:"channel"`
	PurchasePrice    decimal.Decimal `json:"purchase_price"`
	PurchaseCurrency string          `json:"purchase_currency"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	WholesalePrice   decimal.Decimal `json:"wholesale_price"`
	RetailPrice      decimal.Decimal `json:"retail_price"`
	Stock            decimal.Decimal `json:"stock"`
	MinStock         decimal.Decimal `json:"min_stock"`
	Active           bool            `json:"active"`
}
