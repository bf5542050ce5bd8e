package dto

// UpdateSettingsRequest body para PATCH /api/configuracion.
// Mapa clave→valor; solo se aceptan las claves de precios conocidas.
type UpdateSettingsRequest struct {
	Values map[string]string `json:"values"`
}

// UpdateSettingsResponse resultado del guardado + recálculo de precios.
type UpdateSettingsResponse struct {
	UpdatedKeys      []string `json:"updated_keys"`
	ProductsRepriced int64    `json:"products_repriced"`
}

// SettingResponse una sola clave de configuración.
type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SettingsResponse configuración vigente para GET /api/configuracion.
type SettingsResponse struct {
	Values map[string]string `json:"values"`
}
