// Package memory implementa los puertos de persistencia en memoria. Se usa con
// STORAGE_DRIVER=memory para desarrollo local y como backend de los tests de casos de uso.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/erp-core/internal/application/ports"
	"github.com/jhoicas/erp-core/internal/domain"
	"github.com/jhoicas/erp-core/internal/domain/entity"
	"github.com/jhoicas/erp-core/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

// Store guarda un estado independiente por tenant. Run trabaja sobre una copia del
// estado y solo la publica si fn termina sin error, lo que emula commit/rollback.
// Las transacciones se serializan: equivale a aislamiento SERIALIZABLE.
type Store struct {
	mu      sync.Mutex
	tenants map[string]*state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{tenants: make(map[string]*state)}
}

// Run ejecuta fn sobre una copia del estado del tenant.
func (s *Store) Run(ctx context.Context, scope domain.Scope, fn func(ctx context.Context, repos repository.TxRepos) error) error {
	if scope.TenantID == "" {
		return fmt.Errorf("%w: tenant vacío", domain.ErrUnauthorized)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.tenants[scope.TenantID]
	if !ok {
		current = newState()
	}
	tx := current.clone()
	if err := fn(ctx, tx.repos()); err != nil {
		return err
	}
	s.tenants[scope.TenantID] = tx
	return nil
}

type state struct {
	products        map[string]entity.Product
	productIDs      []string
	locations       map[string]entity.Location
	locationIDs     []string
	counterparties  map[string]entity.Counterparty
	counterpartyIDs []string

	balances   map[string]entity.StockBalance // clave productID|locationID
	balanceIDs []string
	movements  []entity.StockMovement
	movSeq     int64

	accounts   map[string]entity.FinancialAccount
	accountIDs []string
	entries    []entity.LedgerEntry
	entrySeq   int64

	payables      map[string]entity.Payable
	payableIDs    []string
	receivables   map[string]entity.Receivable
	receivableIDs []string

	purchaseOrders   map[string]entity.PurchaseOrder
	purchaseOrderIDs []string
	purchaseSeq      int64
	salesOrders      map[string]entity.SalesOrder
	salesOrderIDs    []string
	salesSeq         int64
}

func newState() *state {
	return &state{
		products:       map[string]entity.Product{},
		locations:      map[string]entity.Location{},
		counterparties: map[string]entity.Counterparty{},
		balances:       map[string]entity.StockBalance{},
		accounts:       map[string]entity.FinancialAccount{},
		payables:       map[string]entity.Payable{},
		receivables:    map[string]entity.Receivable{},
		purchaseOrders: map[string]entity.PurchaseOrder{},
		salesOrders:    map[string]entity.SalesOrder{},
	}
}

// clone copia mapas y slices. Los valores se reemplazan completos en cada escritura,
// así que los punteros y slices internos (líneas, umbrales) pueden compartirse.
func (st *state) clone() *state {
	return &state{
		products:         maps.Clone(st.products),
		productIDs:       slices.Clone(st.productIDs),
		locations:        maps.Clone(st.locations),
		locationIDs:      slices.Clone(st.locationIDs),
		counterparties:   maps.Clone(st.counterparties),
		counterpartyIDs:  slices.Clone(st.counterpartyIDs),
		balances:         maps.Clone(st.balances),
		balanceIDs:       slices.Clone(st.balanceIDs),
		movements:        slices.Clone(st.movements),
		movSeq:           st.movSeq,
		accounts:         maps.Clone(st.accounts),
		accountIDs:       slices.Clone(st.accountIDs),
		entries:          slices.Clone(st.entries),
		entrySeq:         st.entrySeq,
		payables:         maps.Clone(st.payables),
		payableIDs:       slices.Clone(st.payableIDs),
		receivables:      maps.Clone(st.receivables),
		receivableIDs:    slices.Clone(st.receivableIDs),
		purchaseOrders:   maps.Clone(st.purchaseOrders),
		purchaseOrderIDs: slices.Clone(st.purchaseOrderIDs),
		purchaseSeq:      st.purchaseSeq,
		salesOrders:      maps.Clone(st.salesOrders),
		salesOrderIDs:    slices.Clone(st.salesOrderIDs),
		salesSeq:         st.salesSeq,
	}
}

func (st *state) repos() repository.TxRepos {
	return repository.TxRepos{
		Products:       productRepo{st},
		Locations:      locationRepo{st},
		Counterparties: counterpartyRepo{st},
		Stock:          stockRepo{st},
		Movements:      movementRepo{st},
		Accounts:       accountRepo{st},
		Entries:        entryRepo{st},
		Payables:       payableRepo{st},
		Receivables:    receivableRepo{st},
		PurchaseOrders: purchaseOrderRepo{st},
		SalesOrders:    salesOrderRepo{st},
	}
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// page recorta ids según limit/offset; limit <= 0 devuelve todo desde offset.
func page(ids []string, limit, offset int) []string {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(ids) {
		return nil
	}
	ids = ids[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	return ids
}
