package service

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/agrimart/agri-storefront/internal/auth"
	"github.com/agrimart/agri-storefront/internal/domain"
	"github.com/agrimart/agri-storefront/internal/notify"
	"github.com/agrimart/agri-storefront/internal/repository"
)

func adminIdentity() auth.Identity {
	return auth.Authenticated(&domain.Account{ID: "admin-1", Email: "ops@farm.io", Role: domain.RoleAdministrator}, "s-admin")
}

func customerIdentity(id string) auth.Identity {
	return auth.Authenticated(&domain.Account{ID: id, Email: id + "@farm.io", Role: domain.RoleCustomer}, "s-"+id)
}

func strPtr(s string) *string { return &s }

type fakeAccountRepo struct {
	mu       sync.Mutex
	byID     map[string]*domain.Account
	calls    int
	getErr   error
	createFn func(*domain.Account) error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byID: map[string]*domain.Account{}}
}

func (r *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.createFn != nil {
		if err := r.createFn(account); err != nil {
			return err
		}
	}
	for _, existing := range r.byID {
		if existing.Email == account.Email {
			return repository.ErrDuplicate
		}
	}
	account.ID = "acc-" + strconv.Itoa(len(r.byID)+1)
	account.CreatedAt = time.Now()
	stored := *account
	r.byID[account.ID] = &stored
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.getErr != nil {
		return nil, r.getErr
	}
	account, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *account
	return &copied, nil
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, account := range r.byID {
		if account.Email == email {
			copied := *account
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeAccountRepo) SetRole(_ context.Context, email string, role domain.Role) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	for _, account := range r.byID {
		if account.Email == email {
			account.Role = role
			copied := *account
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	getErr   error
	created  int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*domain.Session{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created++
	stored := *session
	r.sessions[session.ID] = &stored
	return nil
}

func (r *fakeSessionRepo) Get(_ context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	session, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

type fakeOrderRepo struct {
	mu       sync.Mutex
	orders   map[string]*domain.Order
	calls    int
	patchErr error
	// beforePatch runs inside ApplyStatusPatch, simulating a concurrent writer.
	beforePatch func(order *domain.Order)
}

func newFakeOrderRepo(orders ...domain.Order) *fakeOrderRepo {
	repo := &fakeOrderRepo{orders: map[string]*domain.Order{}}
	for i := range orders {
		order := orders[i]
		repo.orders[order.ID] = &order
	}
	return repo
}

func (r *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	order.ID = strconv.Itoa(len(r.orders) + 1)
	order.Version = 1
	order.CreatedAt = time.Now().Add(time.Duration(len(r.orders)) * time.Second)
	order.UpdatedAt = order.CreatedAt
	stored := *order
	r.orders[order.ID] = &stored
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	order, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) ListWithFilter(_ context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	var out []domain.Order
	for _, order := range r.orders {
		if filter.AccountID != nil && order.AccountID != *filter.AccountID {
			continue
		}
		if len(filter.Statuses) > 0 {
			match := false
			for _, s := range filter.Statuses {
				match = match || s == order.Status
			}
			if !match {
				continue
			}
		}
		out = append(out, *order)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeOrderRepo) ApplyStatusPatch(_ context.Context, patch repository.StatusPatch) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.patchErr != nil {
		return nil, r.patchErr
	}
	order, ok := r.orders[patch.OrderID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if r.beforePatch != nil {
		r.beforePatch(order)
	}
	if order.Version != patch.ExpectedVersion {
		return nil, repository.ErrVersionConflict
	}
	order.Status = patch.Status
	if patch.TrackingNumber != nil {
		tracking := *patch.TrackingNumber
		order.TrackingNumber = &tracking
	}
	order.Version++
	order.UpdatedAt = time.Now()
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) stored(id string) domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.orders[id]
}

func (r *fakeOrderRepo) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

type fakeHistoryRepo struct {
	mu        sync.Mutex
	entries   []domain.OrderHistory
	createErr error
}

func (r *fakeHistoryRepo) Create(_ context.Context, entry *domain.OrderHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	entry.ID = strconv.Itoa(len(r.entries) + 1)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeHistoryRepo) ListByOrder(_ context.Context, orderID string) ([]domain.OrderHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.OrderHistory
	for _, entry := range r.entries {
		if entry.OrderID == orderID {
			out = append(out, entry)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	mu        sync.Mutex
	records   map[string]*domain.NotificationRecord
	order     []string
	createErr error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{records: map[string]*domain.NotificationRecord{}}
}

func (r *fakeNotificationRepo) Create(_ context.Context, record *domain.NotificationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	record.ID = "n-" + strconv.Itoa(len(r.order)+1)
	stored := *record
	r.records[record.ID] = &stored
	r.order = append(r.order, record.ID)
	return nil
}

func (r *fakeNotificationRepo) Update(_ context.Context, record *domain.NotificationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[record.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *record
	r.records[record.ID] = &stored
	return nil
}

func (r *fakeNotificationRepo) LatestUndelivered(_ context.Context, orderID string) (*domain.NotificationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.order) - 1; i >= 0; i-- {
		record := r.records[r.order[i]]
		if record.OrderID != orderID {
			continue
		}
		if record.State == domain.NotificationSent {
			break
		}
		copied := *record
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeNotificationRepo) ListByOrder(_ context.Context, orderID string) ([]domain.NotificationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.NotificationRecord
	for _, id := range r.order {
		if r.records[id].OrderID == orderID {
			out = append(out, *r.records[id])
		}
	}
	return out, nil
}

type fakeDispatcher struct {
	mu       sync.Mutex
	messages []notify.Message
	err      error
	ctxErr   error
}

func (d *fakeDispatcher) Notify(ctx context.Context, msg notify.Message) (notify.Ack, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = append(d.messages, msg)
	d.ctxErr = ctx.Err()
	if d.err != nil {
		return notify.Ack{Attempts: 1}, d.err
	}
	return notify.Ack{Attempts: 1, DeliveredAt: time.Now()}, nil
}

func (d *fakeDispatcher) sent() []notify.Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]notify.Message(nil), d.messages...)
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	calls    int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*domain.Product{}}
}

func (r *fakeProductRepo) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	product.ID = "p-" + strconv.Itoa(len(r.products)+1)
	stored := *product
	r.products[product.ID] = &stored
	return nil
}

func (r *fakeProductRepo) Patch(_ context.Context, id string, patch repository.ProductPatch) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	stored, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Name != nil {
		stored.Name = *patch.Name
	}
	if patch.Description != nil {
		stored.Description = *patch.Description
	}
	if patch.Price != nil {
		stored.Price = *patch.Price
	}
	if patch.ImageURL != nil {
		stored.ImageURL = *patch.ImageURL
	}
	if patch.Category != nil {
		stored.Category = *patch.Category
	}
	if patch.Stock != nil {
		stored.Stock = *patch.Stock
	}
	if patch.Unit != nil {
		stored.Unit = *patch.Unit
	}
	if patch.IsActive != nil {
		stored.IsActive = *patch.IsActive
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if _, ok := r.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	product, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *product
	return &copied, nil
}

func (r *fakeProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	var out []domain.Product
	for _, product := range r.products {
		if filter.ActiveOnly && !product.IsActive {
			continue
		}
		if filter.Category != nil && product.Category != *filter.Category {
			continue
		}
		out = append(out, *product)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
