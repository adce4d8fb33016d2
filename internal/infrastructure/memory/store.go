// Package memory implementa los puertos de persistencia en memoria de proceso.
//
// Cada transacción trabaja sobre una copia del estado y la publica solo si fn termina sin error;
// las transacciones se serializan con un mutex. Sirve para tests y para STORE_DRIVER=memory.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/stockflow/internal/application/inventory"
	"github.com/jhoicas/stockflow/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

type state struct {
	balances     map[entity.BalanceKey]*entity.StockBalance
	movements    []*entity.StockMovement
	receipts     map[string]*entity.Receipt
	deliveries   map[string]*entity.Delivery
	transfers    map[string]*entity.Transfer
	requisitions map[string]*entity.Requisition
	adjustments  []*entity.Adjustment
	sequences    map[string]int64
}

func newState() *state {
	return &state{
		balances:     map[entity.BalanceKey]*entity.StockBalance{},
		receipts:     map[string]*entity.Receipt{},
		deliveries:   map[string]*entity.Delivery{},
		transfers:    map[string]*entity.Transfer{},
		requisitions: map[string]*entity.Requisition{},
		sequences:    map[string]int64{},
	}
}

// clone copia mapas y filas mutables. Movimientos y ajustes son inmutables: se comparten los punteros.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.balances {
		b := *v
		c.balances[k] = &b
	}
	c.movements = s.movements[:len(s.movements):len(s.movements)]
	c.adjustments = s.adjustments[:len(s.adjustments):len(s.adjustments)]
	for k, v := range s.receipts {
		c.receipts[k] = copyReceipt(v)
	}
	for k, v := range s.deliveries {
		c.deliveries[k] = copyDelivery(v)
	}
	for k, v := range s.transfers {
		c.transfers[k] = copyTransfer(v)
	}
	for k, v := range s.requisitions {
		c.requisitions[k] = copyRequisition(v)
	}
	for k, v := range s.sequences {
		c.sequences[k] = v
	}
	return c
}

// Store almacén en memoria: estado transaccional + datos maestros sembrables.
type Store struct {
	mu sync.Mutex
	st *state

	refsMu     sync.RWMutex
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
	locations  map[string]*entity.Location
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		st:         newState(),
		products:   map[string]*entity.Product{},
		warehouses: map[string]*entity.Warehouse{},
		locations:  map[string]*entity.Location{},
	}
}

// Run ejecuta fn sobre una copia del estado y la confirma si fn no devuelve error.
func (s *Store) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	repos := inventory.TxRepos{
		Stock:        &stockRepo{st: work},
		Movements:    &movementRepo{st: work},
		Receipts:     &receiptRepo{st: work},
		Deliveries:   &deliveryRepo{st: work},
		Transfers:    &transferRepo{st: work},
		Requisitions: &requisitionRepo{st: work},
		Adjustments:  &adjustmentRepo{st: work},
		Numbers:      &sequenceRepo{st: work},
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}
