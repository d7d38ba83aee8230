package repository

import (
	"context"
	"errors"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/domain/model"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

// 商品一覧の検索条件
type ProductListQuery struct {
	Page        int
	Limit       int
	Search      string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	StockStatus string // all / in_stock / low_stock / out_of_stock
	Sort        string // latest / price_low / price_high / name_asc / name_desc / stock_high / stock_low
	// low_stockフィルタで使う閾値
	LowStockThreshold int64
}

// 商品の永続化（保存・取得）だけを約束。
// 在庫の減算はここではなく InventoryRepository が担う。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error

	// ダッシュボード用
	CountAll(ctx context.Context) (int64, error)
	CountOutOfStock(ctx context.Context) (int64, error)
	ListLowStock(ctx context.Context, threshold int64, limit int) ([]model.Product, error)
	// 在庫ありからランダムに取る（おすすめ表示用）
	ListFeatured(ctx context.Context, limit int) ([]model.Product, error)
}
