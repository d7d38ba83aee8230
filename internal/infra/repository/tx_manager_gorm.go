package repository

import (
	"context"

	repo "github.com/achrafbchir/ecommerce-shopping-cart/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	products  repo.ProductRepository
	cartItems repo.CartItemRepository
	sales     repo.SaleRepository
	inventory repo.InventoryRepository
	users     repo.UserRepository
}

func (r *txReposGorm) Products() repo.ProductRepository   { return r.products }
func (r *txReposGorm) CartItems() repo.CartItemRepository { return r.cartItems }
func (r *txReposGorm) Sales() repo.SaleRepository         { return r.sales }
func (r *txReposGorm) Inventory() repo.InventoryRepository { return r.inventory }
func (r *txReposGorm) Users() repo.UserRepository         { return r.users }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			products:  NewProductGormRepository(tx),
			cartItems: NewCartItemGormRepository(tx),
			sales:     NewSaleGormRepository(tx),
			inventory: NewInventoryGormRepository(tx),
			users:     NewUserGormRepository(tx),
		}
		return fn(r)
	})
}
