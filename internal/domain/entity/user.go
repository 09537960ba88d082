package entity

// Roles válidos del sistema (claim "role" del JWT).
const (
	RoleAdmin      = "admin"
	RoleBodeguero  = "bodeguero"  // gestor de stock
	RoleComprador  = "comprador"  // compras
	RoleVendedor   = "vendedor"   // ventas
	RoleFinanciero = "financiero" // cuentas y liquidaciones
)

// Roles devuelve todos los roles conocidos.
func Roles() []string {
	return []string{RoleAdmin, RoleBodeguero, RoleComprador, RoleVendedor, RoleFinanciero}
}
