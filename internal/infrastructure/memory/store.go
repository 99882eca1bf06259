// Package memory is the in-process storage driver (STORAGE_DRIVER=memory).
// Writers are serialised and work on a private copy of the state that replaces the
// committed state only when the unit of work succeeds; readers see the last commit.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/jhoicas/rhu-inventory-api/internal/application/ports"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
)

type state struct {
	items        map[string]entity.InventoryItem
	batches      map[string]entity.Batch
	transactions []entity.InventoryTransaction // append order
	adjustments  []entity.StockAdjustment
	transfers    map[string]entity.TransferOut
	units        map[string]entity.AdministrativeUnit
	patients     map[string]entity.Patient
	users        map[string]entity.User
	prs          map[string]entity.PurchaseRequest
	pos          map[string]entity.PurchaseOrder
	wrrs         map[string]entity.WarehouseReceivingReport
	invoices     map[string]entity.PurchaseInvoice
	sequences    map[string]int64
	txnSeq       int64
}

func newState() *state {
	return &state{
		items:     map[string]entity.InventoryItem{},
		batches:   map[string]entity.Batch{},
		transfers: map[string]entity.TransferOut{},
		units:     map[string]entity.AdministrativeUnit{},
		patients:  map[string]entity.Patient{},
		users:     map[string]entity.User{},
		prs:       map[string]entity.PurchaseRequest{},
		pos:       map[string]entity.PurchaseOrder{},
		wrrs:      map[string]entity.WarehouseReceivingReport{},
		invoices:  map[string]entity.PurchaseInvoice{},
		sequences: map[string]int64{},
	}
}

// clone copies every collection. Values holding slices are deep-copied so the
// fork never aliases the committed state.
func (s *state) clone() *state {
	c := &state{
		items:        cloneMap(s.items, func(v entity.InventoryItem) entity.InventoryItem { return v }),
		batches:      cloneMap(s.batches, func(v entity.Batch) entity.Batch { return v }),
		transactions: slices.Clone(s.transactions),
		adjustments:  slices.Clone(s.adjustments),
		transfers:    cloneMap(s.transfers, cloneTransfer),
		units:        cloneMap(s.units, func(v entity.AdministrativeUnit) entity.AdministrativeUnit { return v }),
		patients:     cloneMap(s.patients, clonePatient),
		users:        cloneMap(s.users, func(v entity.User) entity.User { return v }),
		prs:          cloneMap(s.prs, clonePR),
		pos:          cloneMap(s.pos, clonePO),
		wrrs:         cloneMap(s.wrrs, cloneWRR),
		invoices:     cloneMap(s.invoices, cloneInvoice),
		sequences:    cloneMap(s.sequences, func(v int64) int64 { return v }),
		txnSeq:       s.txnSeq,
	}
	return c
}

func cloneMap[V any](m map[string]V, cp func(V) V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = cp(v)
	}
	return out
}

// Store is the in-memory database.
type Store struct {
	mu      sync.RWMutex // guards committed
	writeMu sync.Mutex   // one unit of work at a time
	data    *state
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{data: newState()}
}

// update runs fn on a fork of the committed state and publishes the fork if fn succeeds.
func (s *Store) update(fn func(st *state) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	fork := s.data.clone()
	if err := fn(fork); err != nil {
		return err
	}
	s.mu.Lock()
	s.data = fork
	s.mu.Unlock()
	return nil
}

func (s *Store) view(fn func(st *state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

// scope routes repository calls either to the committed state or to the fork of a running unit of work.
type scope struct {
	s  *Store
	st *state // nil outside a unit of work
}

func (c scope) read(fn func(st *state) error) error {
	if c.st != nil {
		return fn(c.st)
	}
	return c.s.view(fn)
}

func (c scope) write(fn func(st *state) error) error {
	if c.st != nil {
		return fn(c.st)
	}
	return c.s.update(fn)
}

// Repositories returns repositories reading the committed state; their writes commit immediately.
func (s *Store) Repositories() ports.TxRepos {
	return reposFor(scope{s: s})
}

func reposFor(c scope) ports.TxRepos {
	return ports.TxRepos{
		Items:            &ItemRepo{c},
		Batches:          &BatchRepo{c},
		Transactions:     &TransactionRepo{c},
		Adjustments:      &AdjustmentRepo{c},
		Transfers:        &TransferRepo{c},
		Patients:         &PatientRepo{c},
		Sequences:        &SequenceRepo{c},
		PurchaseRequests: &PurchaseRequestRepo{c},
		PurchaseOrders:   &PurchaseOrderRepo{c},
		ReceivingReports: &ReceivingReportRepo{c},
		Invoices:         &InvoiceRepo{c},
	}
}

// Units returns the administrative unit repository.
func (s *Store) Units() repository.UnitRepository { return &UnitRepo{scope{s: s}} }

// Users returns the staff account repository.
func (s *Store) Users() repository.UserRepository { return &UserRepo{scope{s: s}} }

// TxRunner implementa ports.TxRunner sobre el Store.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

var _ ports.TxRunner = (*TxRunner)(nil)

// Run ejecuta fn sobre una copia del estado; si fn devuelve error la copia se descarta.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.s.update(func(st *state) error {
		return fn(reposFor(scope{s: r.s, st: st}))
	})
}

// paginate applies limit/offset; limit <= 0 returns everything from offset.
func paginate[T any](list []T, p repository.Page) []T {
	if p.Offset >= len(list) {
		return []T{}
	}
	list = list[max(p.Offset, 0):]
	if p.Limit > 0 && p.Limit < len(list) {
		list = list[:p.Limit]
	}
	return list
}
