package domain

// Scope es el contexto explícito de cada petición: tenant, usuario y rol.
// Se pasa a cada caso de uso y al TxRunner; el núcleo nunca lee estado global del tenant.
type Scope struct {
	TenantID string
	UserID   string
	Role     string
}
