package repository

// SettingsRepository puerto para la tabla clave→valor de configuración.
// Los casos de uso nunca consultan claves sueltas: leen el mapa completo y lo
// envuelven en pricing.Settings (vista tipada).
type SettingsRepository interface {
	GetAll() (map[string]string, error)
	Get(key string) (string, error)
	Set(key, value string) error
}
