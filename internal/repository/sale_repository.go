package repository

import (
	"context"
	"time"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/domain/model"
	"github.com/shopspring/decimal"
)

// 30日間の売れ筋集計の1行
type TopSellingRow struct {
	ProductID    int64           `json:"product_id"`
	TotalSold    int64           `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

type SaleRepository interface {
	Create(ctx context.Context, s model.Sale) (model.Sale, error)

	CountAll(ctx context.Context) (int64, error)
	SumRevenue(ctx context.Context) (decimal.Decimal, error)

	// sold_atが[from, to)に入るものを対象にする
	CountBetween(ctx context.Context, from, to time.Time) (int64, error)
	SumRevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]model.Sale, error)

	ListRecent(ctx context.Context, limit int) ([]model.Sale, error)
	TopSelling(ctx context.Context, since time.Time, limit int) ([]TopSellingRow, error)
}
