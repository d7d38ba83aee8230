package repository

import (
	"context"
	"time"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/domain/model"
)

// 管理画面のユーザー一覧の検索条件
type UserListQuery struct {
	Page          int
	Limit         int
	Search        string // name / email の部分一致
	EmailVerified string // all / verified / unverified
	Sort          string // latest / oldest / name_asc / name_desc / email_asc / email_desc
}

// ユーザー一覧の1行。カート明細数を一緒に返す。
type UserListRow struct {
	model.User
	CartItemCount int64 `json:"cart_item_count"`
}

type UserRepository interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
	Delete(ctx context.Context, id int64) error

	// 一覧は非管理者のみ対象
	List(ctx context.Context, q UserListQuery) ([]UserListRow, int64, error)

	// ダッシュボード用の集計（いずれも非管理者のみ）
	CountShoppers(ctx context.Context) (int64, error)
	CountShoppersCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountVerified(ctx context.Context) (int64, error)
	CountWithCartItems(ctx context.Context) (int64, error)
}
