package entity

import "time"

// Roles del sistema. SUPER_USUARIO pasa todos los controles RBAC.
const (
	RoleSuperUsuario        = "SUPER_USUARIO"
	RoleAdminWayraTaller    = "ADMIN_WAYRA_TALLER"
	RoleAdminWayraProductos = "ADMIN_WAYRA_PRODUCTOS"
	RoleAdminTorniRepuestos = "ADMIN_TORNI_REPUESTOS"
	RoleMecanico            = "MECANICO"
	RoleVendedorWayra       = "VENDEDOR_WAYRA"
	RoleVendedorTorni       = "VENDEDOR_TORNI"
)

// ValidRoles lista de roles aceptados al registrar usuarios.
var ValidRoles = []string{
	RoleSuperUsuario,
	RoleAdminWayraTaller,
	RoleAdminWayraProductos,
	RoleAdminTorniRepuestos,
	RoleMecanico,
	RoleVendedorWayra,
	RoleVendedorTorni,
}

// User representa un usuario del sistema (mecánicos incluidos).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
