package repository

import (
	"context"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/domain/model"
)

type CartItemRepository interface {
	// 新しい順
	ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error)
	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)

	// 行ロック付きで取得。同じ明細への同時更新で加算が失われないように
	// トランザクション内から呼ぶこと。
	FindByUserAndProductForUpdate(ctx context.Context, userID int64, productID int64) (model.CartItem, error)

	Create(ctx context.Context, item model.CartItem) (model.CartItem, error)
	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error
	DeleteByID(ctx context.Context, cartItemID int64) error

	// チェックアウト確定時のカート全消し
	DeleteByUserID(ctx context.Context, userID int64) error

	// 非管理者ユーザーのカート明細の総数（ダッシュボード用）
	CountAll(ctx context.Context) (int64, error)
}
