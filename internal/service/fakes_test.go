package service

import (
	"context"
	"strings"
	"sync"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. They honor the same contracts as the gorm
// implementations (gorm.ErrRecordNotFound on miss, ErrStockConflict on a
// decrement below zero) so services cannot tell the difference.

type fakeProductRepo struct {
	mu     sync.Mutex
	nextID uint
	items  map[uint]*model.Product
	inUse  map[uint]bool // product ids referenced by a tax invoice

	// beforeAdjust, when set, runs ahead of each AdjustStock call. Tests use
	// it to mutate stock between a service's read and its write.
	beforeAdjust func(id uint, delta int)
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{nextID: 1, items: map[uint]*model.Product{}, inUse: map[uint]bool{}}
}

func (f *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ProductID = f.nextID
	f.nextID++
	cp := *p
	f.items[p.ProductID] = &cp
	return nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[p.ProductID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *p
	f.items[p.ProductID] = &cp
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uint) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) List(_ context.Context, page, limit int, search string) ([]model.Product, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Product
	for _, p := range f.items {
		if search == "" || strings.Contains(p.Brand, search) || strings.Contains(p.ProductName, search) {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductRepo) AdjustStock(_ context.Context, id uint, delta int) error {
	if f.beforeAdjust != nil {
		f.beforeAdjust(id, delta)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.items[id]
	if !ok || p.BoxesOnHand+delta < 0 {
		return repository.ErrStockConflict
	}
	p.BoxesOnHand += delta
	return nil
}

func (f *fakeProductRepo) snapshot() map[uint]model.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := make(map[uint]model.Product, len(f.items))
	for id, p := range f.items {
		snap[id] = *p
	}
	return snap
}

func (f *fakeProductRepo) restore(snap map[uint]model.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = make(map[uint]*model.Product, len(snap))
	for id, p := range snap {
		cp := p
		f.items[id] = &cp
	}
}

func (f *fakeProductRepo) ReferencedByTaxInvoice(_ context.Context, id uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inUse[id], nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*model.Order
	items  map[uuid.UUID][]model.OrderItem
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uuid.UUID]*model.Order{}, items: map[uuid.UUID][]model.OrderItem{}}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *model.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) CreateItems(_ context.Context, items []model.OrderItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range items {
		f.items[item.OrderID] = append(f.items[item.OrderID], item)
	}
	return nil
}

func (f *fakeOrderRepo) FindByIDWithItems(_ context.Context, id uuid.UUID) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	cp.Items = append([]model.OrderItem(nil), f.items[id]...)
	return &cp, nil
}

func (f *fakeOrderRepo) List(_ context.Context, filter repository.OrderListFilter) ([]model.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Order
	for id, o := range f.orders {
		if filter.OrderType != "" && o.OrderType != filter.OrderType {
			continue
		}
		if filter.Client != "" && !strings.Contains(o.ClientName, filter.Client) {
			continue
		}
		cp := *o
		cp.Items = append([]model.OrderItem(nil), f.items[id]...)
		out = append(out, cp)
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepo) DeleteItems(_ context.Context, orderID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, orderID)
	return nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderRepo) snapshot() (map[uuid.UUID]model.Order, map[uuid.UUID][]model.OrderItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	orders := make(map[uuid.UUID]model.Order, len(f.orders))
	for id, o := range f.orders {
		orders[id] = *o
	}
	items := make(map[uuid.UUID][]model.OrderItem, len(f.items))
	for id, list := range f.items {
		items[id] = append([]model.OrderItem(nil), list...)
	}
	return orders, items
}

func (f *fakeOrderRepo) restore(orders map[uuid.UUID]model.Order, items map[uuid.UUID][]model.OrderItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = make(map[uuid.UUID]*model.Order, len(orders))
	for id, o := range orders {
		cp := o
		f.orders[id] = &cp
	}
	f.items = make(map[uuid.UUID][]model.OrderItem, len(items))
	for id, list := range items {
		f.items[id] = append([]model.OrderItem(nil), list...)
	}
}

func (f *fakeOrderRepo) CountByPrefix(_ context.Context, prefix string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, o := range f.orders {
		if strings.HasPrefix(o.OrderNo, prefix) {
			count++
		}
	}
	return count, nil
}

type fakeTruckRepo struct {
	mu      sync.Mutex
	nextID  uint
	entries []model.TruckEntry
}

func newFakeTruckRepo() *fakeTruckRepo {
	return &fakeTruckRepo{nextID: 1}
}

func (f *fakeTruckRepo) Create(_ context.Context, entry *model.TruckEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.ID = f.nextID
	f.nextID++
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeTruckRepo) List(_ context.Context, page, limit int) ([]model.TruckEntry, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.TruckEntry(nil), f.entries...), int64(len(f.entries)), nil
}

type fakeLedgerRepo struct {
	mu      sync.Mutex
	nextID  uint
	entries map[uint]*model.LedgerEntry
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{nextID: 1, entries: map[uint]*model.LedgerEntry{}}
}

func (f *fakeLedgerRepo) Create(_ context.Context, entry *model.LedgerEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.ID = f.nextID
	f.nextID++
	cp := *entry
	f.entries[entry.ID] = &cp
	return nil
}

func (f *fakeLedgerRepo) AddPayment(_ context.Context, payment *model.LedgerPayment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[payment.LedgerEntryID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	payment.ID = uint(len(entry.Payments) + 1)
	entry.Payments = append(entry.Payments, *payment)
	return nil
}

func (f *fakeLedgerRepo) FindByID(_ context.Context, id uint) (*model.LedgerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *entry
	cp.Payments = append([]model.LedgerPayment(nil), entry.Payments...)
	return &cp, nil
}

func (f *fakeLedgerRepo) List(_ context.Context, page, limit int, client string) ([]model.LedgerEntry, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.LedgerEntry
	for _, e := range f.entries {
		if client == "" || strings.Contains(e.ClientName, client) {
			out = append(out, *e)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeLedgerRepo) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, id)
	return nil
}

type fakeAuditRepo struct {
	mu   sync.Mutex
	logs []model.AuditLog
}

func (f *fakeAuditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, *entry)
	return nil
}

func (f *fakeAuditRepo) List(_ context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.AuditLog(nil), f.logs...), int64(len(f.logs)), nil
}

// fakeTxManager runs the function directly with no transaction semantics.
// Tests that depend on rollback use rollbackTxManager instead.
type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// rollbackTxManager gives the in-memory fakes transaction semantics: it
// snapshots the wrapped repos when the function starts and restores them if
// the function returns an error, so partial writes do not leak out of a
// failed transaction.
type rollbackTxManager struct {
	products *fakeProductRepo
	orders   *fakeOrderRepo
}

func (m rollbackTxManager) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	prodSnap := m.products.snapshot()
	orderSnap, itemSnap := m.orders.snapshot()
	if err := fn(ctx); err != nil {
		m.products.restore(prodSnap)
		m.orders.restore(orderSnap, itemSnap)
		return err
	}
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []string
}

func (f *fakePublisher) Publish(event string, _ any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakePublisher) has(event string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if e == event {
			return true
		}
	}
	return false
}
