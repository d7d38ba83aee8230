package usecase_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/domain/model"
	"github.com/achrafbchir/ecommerce-shopping-cart/internal/jobs"
	repo "github.com/achrafbchir/ecommerce-shopping-cart/internal/repository"
	"github.com/shopspring/decimal"
)

// =====================
// インメモリのフェイク永続層
// =====================
//
// WithinTxが全体をロックし、エラー時はスナップショットへ巻き戻す。
// カート→販売の確定処理を、DBなしでロールバック込みで検証するための道具。

var errForcedFailure = errors.New("forced failure")

type memStore struct {
	mu sync.Mutex

	products  map[int64]model.Product
	cartItems map[int64]model.CartItem
	sales     []model.Sale

	nextProductID  int64
	nextCartItemID int64

	// このproduct_idのSale作成を失敗させる（ロールバック確認用）
	failSaleForProductID int64
}

func newMemStore() *memStore {
	return &memStore{
		products:  map[int64]model.Product{},
		cartItems: map[int64]model.CartItem{},
	}
}

func (s *memStore) addProduct(name string, price string, stock int64) model.Product {
	s.nextProductID++
	p := model.Product{
		ID:            s.nextProductID,
		Name:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
	}
	s.products[p.ID] = p
	return p
}

func (s *memStore) addCartItem(userID, productID, qty int64) model.CartItem {
	s.nextCartItemID++
	it := model.CartItem{
		ID:        s.nextCartItemID,
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
	}
	s.cartItems[it.ID] = it
	return it
}

func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	for k, v := range s.products {
		cp.products[k] = v
	}
	for k, v := range s.cartItems {
		cp.cartItems[k] = v
	}
	cp.sales = append([]model.Sale(nil), s.sales...)
	cp.nextProductID = s.nextProductID
	cp.nextCartItemID = s.nextCartItemID
	return cp
}

func (s *memStore) restore(snap *memStore) {
	s.products = snap.products
	s.cartItems = snap.cartItems
	s.sales = snap.sales
	s.nextProductID = snap.nextProductID
	s.nextCartItemID = snap.nextCartItemID
}

// =====================
// TransactionManager
// =====================

type memTxManager struct {
	store *memStore
}

func (m *memTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	snap := m.store.snapshot()
	if err := fn(&memTxRepos{store: m.store}); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

type memTxRepos struct {
	store *memStore
}

func (r *memTxRepos) Products() repo.ProductRepository    { return &memProductRepo{store: r.store} }
func (r *memTxRepos) CartItems() repo.CartItemRepository  { return &memCartItemRepo{store: r.store} }
func (r *memTxRepos) Sales() repo.SaleRepository          { return &memSaleRepo{store: r.store} }
func (r *memTxRepos) Inventory() repo.InventoryRepository { return &memInventoryRepo{store: r.store} }
func (r *memTxRepos) Users() repo.UserRepository          { return &memUserRepo{} }

// =====================
// Repositories
// =====================

type memProductRepo struct{ store *memStore }

var _ repo.ProductRepository = (*memProductRepo)(nil)

func (m *memProductRepo) FindByID(ctx context.Context, id int64) (model.Product, error) {
	p, ok := m.store.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (m *memProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	m.store.nextProductID++
	p.ID = m.store.nextProductID
	m.store.products[p.ID] = p
	return p, nil
}

func (m *memProductRepo) Update(ctx context.Context, p model.Product) error {
	if _, ok := m.store.products[p.ID]; !ok {
		return repo.ErrNotFound
	}
	m.store.products[p.ID] = p
	return nil
}

func (m *memProductRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.store.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.store.products, id)
	return nil
}

func (m *memProductRepo) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	panic("not used in these tests")
}

func (m *memProductRepo) CountAll(ctx context.Context) (int64, error) {
	panic("not used in these tests")
}

func (m *memProductRepo) CountOutOfStock(ctx context.Context) (int64, error) {
	panic("not used in these tests")
}

func (m *memProductRepo) ListLowStock(ctx context.Context, threshold int64, limit int) ([]model.Product, error) {
	panic("not used in these tests")
}

func (m *memProductRepo) ListFeatured(ctx context.Context, limit int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range m.store.products {
		if p.StockQuantity > 0 {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memCartItemRepo struct{ store *memStore }

var _ repo.CartItemRepository = (*memCartItemRepo)(nil)

func (m *memCartItemRepo) ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error) {
	var out []model.CartItem
	for _, it := range m.store.cartItems {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	// 新しい順
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memCartItemRepo) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	it, ok := m.store.cartItems[cartItemID]
	if !ok {
		return model.CartItem{}, repo.ErrNotFound
	}
	return it, nil
}

func (m *memCartItemRepo) FindByUserAndProductForUpdate(ctx context.Context, userID int64, productID int64) (model.CartItem, error) {
	for _, it := range m.store.cartItems {
		if it.UserID == userID && it.ProductID == productID {
			return it, nil
		}
	}
	return model.CartItem{}, repo.ErrNotFound
}

func (m *memCartItemRepo) Create(ctx context.Context, item model.CartItem) (model.CartItem, error) {
	m.store.nextCartItemID++
	item.ID = m.store.nextCartItemID
	m.store.cartItems[item.ID] = item
	return item, nil
}

func (m *memCartItemRepo) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	it, ok := m.store.cartItems[cartItemID]
	if !ok {
		return repo.ErrNotFound
	}
	it.Quantity = qty
	m.store.cartItems[cartItemID] = it
	return nil
}

func (m *memCartItemRepo) DeleteByID(ctx context.Context, cartItemID int64) error {
	if _, ok := m.store.cartItems[cartItemID]; !ok {
		return repo.ErrNotFound
	}
	delete(m.store.cartItems, cartItemID)
	return nil
}

func (m *memCartItemRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	for id, it := range m.store.cartItems {
		if it.UserID == userID {
			delete(m.store.cartItems, id)
		}
	}
	return nil
}

func (m *memCartItemRepo) CountAll(ctx context.Context) (int64, error) {
	panic("not used in these tests")
}

type memSaleRepo struct{ store *memStore }

var _ repo.SaleRepository = (*memSaleRepo)(nil)

func (m *memSaleRepo) Create(ctx context.Context, s model.Sale) (model.Sale, error) {
	if m.store.failSaleForProductID != 0 && s.ProductID == m.store.failSaleForProductID {
		return model.Sale{}, errForcedFailure
	}
	s.ID = int64(len(m.store.sales) + 1)
	m.store.sales = append(m.store.sales, s)
	return s, nil
}

func (m *memSaleRepo) CountAll(ctx context.Context) (int64, error) {
	panic("not used in these tests")
}

func (m *memSaleRepo) SumRevenue(ctx context.Context) (decimal.Decimal, error) {
	panic("not used in these tests")
}

func (m *memSaleRepo) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	panic("not used in these tests")
}

func (m *memSaleRepo) SumRevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	panic("not used in these tests")
}

func (m *memSaleRepo) ListBetween(ctx context.Context, from, to time.Time) ([]model.Sale, error) {
	panic("not used in these tests")
}

func (m *memSaleRepo) ListRecent(ctx context.Context, limit int) ([]model.Sale, error) {
	panic("not used in these tests")
}

func (m *memSaleRepo) TopSelling(ctx context.Context, since time.Time, limit int) ([]repo.TopSellingRow, error) {
	panic("not used in these tests")
}

type memInventoryRepo struct{ store *memStore }

var _ repo.InventoryRepository = (*memInventoryRepo)(nil)

func (m *memInventoryRepo) Reserve(ctx context.Context, productID int64, qty int64) (model.Product, error) {
	p, ok := m.store.products[productID]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	if p.StockQuantity < qty {
		return model.Product{}, &repo.InsufficientStockError{
			ProductID: productID,
			Requested: qty,
			Available: p.StockQuantity,
		}
	}
	p.StockQuantity -= qty
	m.store.products[productID] = p
	return p, nil
}

func (m *memInventoryRepo) Restore(ctx context.Context, productID int64, qty int64) error {
	p, ok := m.store.products[productID]
	if !ok {
		return repo.ErrNotFound
	}
	p.StockQuantity += qty
	m.store.products[productID] = p
	return nil
}

type memUserRepo struct{}

var _ repo.UserRepository = (*memUserRepo)(nil)

func (m *memUserRepo) FindByID(ctx context.Context, id int64) (model.User, error) {
	panic("not used in these tests")
}

func (m *memUserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	panic("not used in these tests")
}

func (m *memUserRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	panic("not used in these tests")
}

func (m *memUserRepo) Delete(ctx context.Context, id int64) error {
	panic("not used in these tests")
}

func (m *memUserRepo) List(ctx context.Context, q repo.UserListQuery) ([]repo.UserListRow, int64, error) {
	panic("not used in these tests")
}

func (m *memUserRepo) CountShoppers(ctx context.Context) (int64, error) {
	panic("not used in these tests")
}

func (m *memUserRepo) CountShoppersCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	panic("not used in these tests")
}

func (m *memUserRepo) CountVerified(ctx context.Context) (int64, error) {
	panic("not used in these tests")
}

func (m *memUserRepo) CountWithCartItems(ctx context.Context) (int64, error) {
	panic("not used in these tests")
}

// =====================
// キュー（投入記録用）
// =====================

type recordQueue struct {
	mu     sync.Mutex
	alerts []jobs.LowStockAlert
	err    error
}

var _ jobs.Queue = (*recordQueue)(nil)

func (q *recordQueue) Enqueue(ctx context.Context, alert jobs.LowStockAlert) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.alerts = append(q.alerts, alert)
	return nil
}
