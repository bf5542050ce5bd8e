package dto

import "github.com/shopspring/decimal"

// CreateOrderRequest body para POST /api/ordenes.
type CreateOrderRequest struct {
	ClientID      string                `json:"client_id"`
	VehicleID     string                `json:"vehicle_id"`
	MechanicID    string                `json:"mechanic_id"`
	Description   string                `json:"description,omitempty"`
	LaborFee      decimal.Decimal       `json:"labor_fee,omitempty"`
	Services      []OrderServiceRequest `json:"services,omitempty"`
	Products      []OrderProductRequest `json:"products,omitempty"`
	ExternalParts []ExternalPartRequest `json:"external_parts,omitempty"`
}

// OrderServiceRequest línea de servicio {descripción, precio}.
type OrderServiceRequest struct {
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// OrderProductRequest línea de producto {producto, cantidad, precio, nivel}.
type OrderProductRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	PriceTier string          `json:"price_tier,omitempty"` // VENTA | MAYORISTA | DETAL
}

// ExternalPartRequest repuesto externo con subtotal y ganancia precalculados.
type ExternalPartRequest struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	SellPrice decimal.Decimal `json:"sell_price"`
}

// UpdateOrderRequest body para PATCH /api/ordenes/:id.
// Status dispara la transición de estado; Description y LaborFee solo se
// aceptan mientras la orden sea editable.
type UpdateOrderRequest struct {
	Status      string           `json:"status,omitempty"`
	Description *string          `json:"description,omitempty"`
	LaborFee    *decimal.Decimal `json:"labor_fee,omitempty"`
}

// OrderResponse orden con líneas para respuestas.
type OrderResponse struct {
	ID            string                  `json:"id"`
	Code          string                  `json:"code"`
	ClientID      string                  `json:"client_id"`
	VehicleID     string                  `json:"vehicle_id"`
	MechanicID    string                  `json:"mechanic_id"`
	Description   string                  `json:"description,omitempty"`
	Status        string                  `json:"status"`
	LaborFee      decimal.Decimal         `json:"labor_fee"`
	Subtotal      decimal.Decimal         `json:"subtotal"`
	Total         decimal.Decimal         `json:"total"`
	Profit        decimal.Decimal         `json:"profit"`
	Services      []OrderServiceResponse  `json:"services"`
	Products      []OrderProductResponse  `json:"products"`
	ExternalParts []ExternalPartResponse  `json:"external_parts"`
	CreatedAt     string                  `json:"created_at"`
}

// OrderServiceResponse línea de servicio en respuestas.
type OrderServiceResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// OrderProductResponse línea de producto en respuestas.
type OrderProductResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	PriceTier string          `json:"price_tier"`
	Profit    decimal.Decimal `json:"profit"`
}

// ExternalPartResponse repuesto externo en respuestas.
type ExternalPartResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	SellPrice decimal.Decimal `json:"sell_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Profit    decimal.Decimal `json:"profit"`
}
