package repository

import (
	"context"
	"fmt"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/domain/model"
)

// 在庫不足。requested/availableを持たせてユーザー向けに返せるようにする。
type InsufficientStockError struct {
	ProductID int64
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// 在庫の唯一の更新窓口。
// Reserve は「stock_quantity >= qty のときだけ減算」を1文で行う。
// 同じ商品への同時実行でも合計が在庫を超えないことをDB側で保証する。
type InventoryRepository interface {
	// 成功時は減算後の商品を返す。不足時は *InsufficientStockError。
	Reserve(ctx context.Context, productID int64, qty int64) (model.Product, error)

	// 在庫戻し（管理者の調整など）
	Restore(ctx context.Context, productID int64, qty int64) error
}
