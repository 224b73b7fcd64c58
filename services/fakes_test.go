package services

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/raulgarrigos/tapiocraft-server/models"
	"github.com/raulgarrigos/tapiocraft-server/repository"
)

// fakeProductRepo is an in-memory product repository. Reserve and Release
// run under a single mutex so concurrent callers observe the same
// all-or-nothing stock semantics as the guarded Mongo updates.
type fakeProductRepo struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]*models.Product
}

func newFakeProductRepo(products ...*models.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[primitive.ObjectID]*models.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (f *fakeProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProductRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindAll(_ context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (f *fakeProductRepo) FindByStore(_ context.Context, storeID primitive.ObjectID) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Product
	for _, p := range f.products {
		if p.Store == storeID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Create(_ context.Context, product *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	copied := *product
	f.products[product.ID] = &copied
	return nil
}

func (f *fakeProductRepo) Update(_ context.Context, id primitive.ObjectID, updates bson.M) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	if name, ok := updates["name"].(string); ok {
		p.Name = name
	}
	if price, ok := updates["price"].(float64); ok {
		p.Price = price
	}
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) Reserve(_ context.Context, id primitive.ObjectID, qty int) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.Stock < qty {
		return nil, repository.ErrOutOfStock
	}
	p.Stock -= qty
	copied := *p
	return &copied, nil
}

func (f *fakeProductRepo) Release(_ context.Context, id primitive.ObjectID, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Stock += qty
	return nil
}

func (f *fakeProductRepo) stock(id primitive.ObjectID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[id].Stock
}

// fakeCartRepo is an in-memory cart repository keyed by user. Mutations
// run under one mutex, mirroring the single-document atomicity of the
// Mongo implementation.
type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[primitive.ObjectID]*models.Cart

	incrementErr      error
	missIncrementOnce bool
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[primitive.ObjectID]*models.Cart)}
}

func (f *fakeCartRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, cart := range f.carts {
		if cart.ID == id {
			copied := *cart
			copied.Items = append([]models.CartItem(nil), cart.Items...)
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCartRepo) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *cart
	copied.Items = append([]models.CartItem(nil), cart.Items...)
	return &copied, nil
}

func (f *fakeCartRepo) GetOrCreate(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart := f.getOrCreateLocked(userID)
	copied := *cart
	copied.Items = append([]models.CartItem(nil), cart.Items...)
	return &copied, nil
}

func (f *fakeCartRepo) getOrCreateLocked(userID primitive.ObjectID) *models.Cart {
	if cart, ok := f.carts[userID]; ok {
		return cart
	}
	cart := &models.Cart{ID: primitive.NewObjectID(), User: userID, Items: []models.CartItem{}}
	f.carts[userID] = cart
	return cart
}

func (f *fakeCartRepo) IncrementItem(_ context.Context, userID, productID primitive.ObjectID, delta int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.incrementErr != nil {
		return false, f.incrementErr
	}
	if f.missIncrementOnce {
		f.missIncrementOnce = false
		return false, nil
	}
	cart, ok := f.carts[userID]
	if !ok {
		return false, nil
	}
	for i := range cart.Items {
		if cart.Items[i].Product == productID {
			if delta < 0 && cart.Items[i].Quantity < -delta {
				return false, nil
			}
			cart.Items[i].Quantity += delta
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCartRepo) PushItem(_ context.Context, userID, productID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart := f.getOrCreateLocked(userID)
	for _, item := range cart.Items {
		if item.Product == productID {
			return repository.ErrDuplicate
		}
	}
	cart.Items = append(cart.Items, models.CartItem{Product: productID, Quantity: 1})
	return nil
}

func (f *fakeCartRepo) PruneEmptyItems(_ context.Context, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[userID]
	if !ok {
		return nil
	}
	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	cart.Items = kept
	return nil
}

func (f *fakeCartRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for user, cart := range f.carts {
		if cart.ID == id {
			delete(f.carts, user)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeCartRepo) items(userID primitive.ObjectID) []models.CartItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[userID]
	if !ok {
		return nil
	}
	return append([]models.CartItem(nil), cart.Items...)
}

// fakeOrderRepo is an in-memory order repository. afterFind runs once
// after the next FindByID, outside the lock, to interleave a competing
// write between a read and its compare-and-swap.
type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]*models.Order

	createErr error
	afterFind func()
}

func newFakeOrderRepo(orders ...*models.Order) *fakeOrderRepo {
	repo := &fakeOrderRepo{orders: make(map[primitive.ObjectID]*models.Order)}
	for _, o := range orders {
		repo.orders[o.ID] = o
	}
	return repo
}

func (f *fakeOrderRepo) Create(_ context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	copied := *order
	f.orders[order.ID] = &copied
	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	f.mu.Lock()
	o, ok := f.orders[id]
	var copied models.Order
	if ok {
		copied = *o
	}
	hook := f.afterFind
	f.afterFind = nil
	f.mu.Unlock()

	if !ok {
		return nil, repository.ErrNotFound
	}
	if hook != nil {
		hook()
	}
	return &copied, nil
}

func (f *fakeOrderRepo) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Order{}
	for _, o := range f.orders {
		if o.User == userID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatusFrom(_ context.Context, id primitive.ObjectID, from, to string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok || o.Status != from {
		return repository.ErrNotFound
	}
	o.Status = to
	return nil
}

func (f *fakeOrderRepo) ExistsByUserAndProduct(_ context.Context, userID, productID primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.User != userID {
			continue
		}
		for _, item := range o.Products {
			if item.Product == productID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (f *fakeOrderRepo) ExistsByUserAndStore(_ context.Context, userID, storeID primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.User != userID {
			continue
		}
		for _, s := range o.Stores {
			if s == storeID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (f *fakeOrderRepo) status(id primitive.ObjectID) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orders[id].Status
}

// fakeStoreRepo is an in-memory store repository.
type fakeStoreRepo struct {
	mu     sync.Mutex
	stores map[primitive.ObjectID]*models.Store
}

func newFakeStoreRepo(stores ...*models.Store) *fakeStoreRepo {
	repo := &fakeStoreRepo{stores: make(map[primitive.ObjectID]*models.Store)}
	for _, s := range stores {
		repo.stores[s.ID] = s
	}
	return repo
}

func (f *fakeStoreRepo) Create(_ context.Context, store *models.Store) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if store.ID.IsZero() {
		store.ID = primitive.NewObjectID()
	}
	copied := *store
	f.stores[store.ID] = &copied
	return nil
}

func (f *fakeStoreRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.stores[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStoreRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Store
	for _, id := range ids {
		if s, ok := f.stores[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeStoreRepo) Update(_ context.Context, id primitive.ObjectID, updates bson.M) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.stores[id]
	if !ok {
		return repository.ErrNotFound
	}
	if name, ok := updates["name"].(string); ok {
		s.Name = name
	}
	return nil
}

func (f *fakeStoreRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.stores[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.stores, id)
	return nil
}

// fakeReviewRepo is an in-memory review repository.
type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews []models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{}
}

func (f *fakeReviewRepo) Create(_ context.Context, review *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	f.reviews = append(f.reviews, *review)
	return nil
}

func (f *fakeReviewRepo) FindByProduct(_ context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Review
	for _, r := range f.reviews {
		if r.ReviewType == models.ReviewTypeProduct && r.Product != nil && *r.Product == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) FindByStore(_ context.Context, storeID primitive.ObjectID) ([]models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Review
	for _, r := range f.reviews {
		if r.ReviewType == models.ReviewTypeStore && r.Store != nil && *r.Store == storeID {
			out = append(out, r)
		}
	}
	return out, nil
}

// fakeUserRepo is an in-memory user repository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Role == "" {
		user.Role = "user"
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, id primitive.ObjectID, updates bson.M) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	if firstName, ok := updates["firstName"].(string); ok {
		u.FirstName = firstName
	}
	if lastName, ok := updates["lastName"].(string); ok {
		u.LastName = lastName
	}
	return nil
}
