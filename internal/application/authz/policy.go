package authz

import (
	"fmt"

	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
)

// Operation identifica una operación del orquestador sujeta a autorización.
type Operation string

const (
	OpCatalogRead        Operation = "catalog.read"
	OpProductWrite       Operation = "product.write"
	OpLocationWrite      Operation = "location.write"
	OpCounterpartyWrite  Operation = "counterparty.write"
	OpStockMove          Operation = "inventory.move"
	OpStockReconcile     Operation = "inventory.reconcile"
	OpStockRead          Operation = "inventory.read"
	OpPurchaseWrite      Operation = "purchase.write"
	OpPurchaseRead       Operation = "purchase.read"
	OpSalesWrite         Operation = "sales.write"
	OpSalesRead          Operation = "sales.read"
	OpFinanceAccounts    Operation = "finance.accounts"
	OpFinanceEntries     Operation = "finance.entries"
	OpFinanceSettlements Operation = "finance.settlements"
)

// Policy tabla operación → roles permitidos.
type Policy map[Operation][]string

// DefaultPolicy devuelve la tabla de permisos de la API.
func DefaultPolicy() Policy {
	all := entity.Roles()
	return Policy{
		OpCatalogRead:        all,
		OpProductWrite:       {entity.RoleAdmin, entity.RoleBodeguero},
		OpLocationWrite:      {entity.RoleAdmin, entity.RoleBodeguero},
		OpCounterpartyWrite:  {entity.RoleAdmin, entity.RoleComprador, entity.RoleVendedor, entity.RoleFinanciero},
		OpStockMove:          {entity.RoleAdmin, entity.RoleBodeguero},
		OpStockReconcile:     {entity.RoleAdmin, entity.RoleBodeguero},
		OpStockRead:          {entity.RoleAdmin, entity.RoleBodeguero, entity.RoleComprador, entity.RoleVendedor},
		OpPurchaseWrite:      {entity.RoleAdmin, entity.RoleComprador},
		OpPurchaseRead:       {entity.RoleAdmin, entity.RoleComprador, entity.RoleFinanciero},
		OpSalesWrite:         {entity.RoleAdmin, entity.RoleVendedor},
		OpSalesRead:          {entity.RoleAdmin, entity.RoleVendedor, entity.RoleFinanciero},
		OpFinanceAccounts:    {entity.RoleAdmin, entity.RoleFinanciero},
		OpFinanceEntries:     {entity.RoleAdmin, entity.RoleFinanciero},
		OpFinanceSettlements: {entity.RoleAdmin, entity.RoleFinanciero},
	}
}

// Authorizer decide si un rol puede invocar una operación.
// Se consulta antes de llamar al caso de uso; los casos de uso no conocen roles.
type Authorizer struct {
	allowed map[Operation]map[string]struct{}
}

// NewAuthorizer construye el autorizador a partir de la tabla.
func NewAuthorizer(p Policy) *Authorizer {
	allowed := make(map[Operation]map[string]struct{}, len(p))
	for op, roles := range p {
		set := make(map[string]struct{}, len(roles))
		for _, r := range roles {
			set[r] = struct{}{}
		}
		allowed[op] = set
	}
	return &Authorizer{allowed: allowed}
}

// Authorize devuelve nil si el rol puede ejecutar op.
// Rol vacío → domain.ErrUnauthorized; operación desconocida o rol no listado → domain.ErrForbidden.
func (a *Authorizer) Authorize(role string, op Operation) error {
	if role == "" {
		return fmt.Errorf("%w: token sin rol", domain.ErrUnauthorized)
	}
	set, ok := a.allowed[op]
	if !ok {
		return fmt.Errorf("%w: operación %s sin política", domain.ErrForbidden, op)
	}
	if _, ok := set[role]; !ok {
		return fmt.Errorf("%w: el rol %s no puede ejecutar %s", domain.ErrForbidden, role, op)
	}
	return nil
}
