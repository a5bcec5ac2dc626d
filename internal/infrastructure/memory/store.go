// Package memory implementa los repositorios sobre un almacén en memoria del proceso.
// Sirve para desarrollo local (STORAGE_DRIVER=memory) y para las pruebas de casos de uso.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

// state contenido completo del almacén; se clona para poder deshacer una transacción.
type state struct {
	resources map[int64]*entity.Resource
	units     map[int64]*entity.UnitOfMeasure
	clients   map[int64]*entity.Client
	balances  map[int64]*entity.Balance
	receipts  map[int64]*entity.ReceiptDocument
	shipments map[int64]*entity.ShipmentDocument
	seq       map[string]int64
}

func newState() *state {
	return &state{
		resources: map[int64]*entity.Resource{},
		units:     map[int64]*entity.UnitOfMeasure{},
		clients:   map[int64]*entity.Client{},
		balances:  map[int64]*entity.Balance{},
		receipts:  map[int64]*entity.ReceiptDocument{},
		shipments: map[int64]*entity.ShipmentDocument{},
		seq:       map[string]int64{},
	}
}

func (st *state) nextID(table string) int64 {
	st.seq[table]++
	return st.seq[table]
}

func (st *state) clone() *state {
	out := newState()
	for k, v := range st.resources {
		cp := *v
		out.resources[k] = &cp
	}
	for k, v := range st.units {
		cp := *v
		out.units[k] = &cp
	}
	for k, v := range st.clients {
		cp := *v
		out.clients[k] = &cp
	}
	for k, v := range st.balances {
		cp := *v
		out.balances[k] = &cp
	}
	for k, v := range st.receipts {
		out.receipts[k] = cloneReceipt(v)
	}
	for k, v := range st.shipments {
		out.shipments[k] = cloneShipment(v)
	}
	for k, v := range st.seq {
		out.seq[k] = v
	}
	return out
}

// Store almacén en memoria. Un mutex global serializa cada unidad de trabajo; si la función
// de la transacción falla, se restaura la copia tomada al inicio.
type Store struct {
	mu   sync.Mutex
	data *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// Run ejecuta fn con repositorios atados a la transacción en curso.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	snapshot := s.data.clone()
	if err := fn(ctx, s.repos(true)); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// Repos devuelve repositorios que toman el mutex en cada operación (fuera de una transacción).
func (s *Store) Repos() inventory.Repos {
	return s.repos(false)
}

func (s *Store) repos(inTx bool) inventory.Repos {
	b := base{s: s, inTx: inTx}
	return inventory.Repos{
		Resources: &ResourceRepo{base: b},
		Units:     &UnitOfMeasureRepo{base: b},
		Clients:   &ClientRepo{base: b},
		Balances:  &BalanceRepo{base: b},
		Receipts:  &ReceiptDocumentRepo{base: b},
		Shipments: &ShipmentDocumentRepo{base: b},
	}
}

// base acceso compartido al estado; dentro de una transacción el mutex ya está tomado.
type base struct {
	s    *Store
	inTx bool
}

func (b base) do(fn func(st *state) error) error {
	if !b.inTx {
		b.s.mu.Lock()
		defer b.s.mu.Unlock()
	}
	return fn(b.s.data)
}

var folder = cases.Fold()

// sameName compara nombres sin distinguir mayúsculas ni espacios en los extremos.
func sameName(a, b string) bool {
	return folder.String(strings.TrimSpace(a)) == folder.String(strings.TrimSpace(b))
}

func sortedByName[T any](items []T, name func(T) string) []T {
	slices.SortFunc(items, func(a, b T) int {
		return strings.Compare(folder.String(name(a)), folder.String(name(b)))
	})
	return items
}

func cloneReceipt(d *entity.ReceiptDocument) *entity.ReceiptDocument {
	cp := *d
	cp.Resources = slices.Clone(d.Resources)
	return &cp
}

func cloneShipment(d *entity.ShipmentDocument) *entity.ShipmentDocument {
	cp := *d
	cp.Resources = slices.Clone(d.Resources)
	return &cp
}
