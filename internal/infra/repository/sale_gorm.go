package repository

import (
	"context"
	"time"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/domain/model"
	repo "github.com/achrafbchir/ecommerce-shopping-cart/internal/repository"
	"github.com/shopspring/decimal"

	"gorm.io/gorm"
)

type SaleGormRepository struct {
	db *gorm.DB
}

// DI
func NewSaleGormRepository(db *gorm.DB) *SaleGormRepository {
	return &SaleGormRepository{db: db}
}

func (r *SaleGormRepository) Create(ctx context.Context, s model.Sale) (model.Sale, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.Sale{}, err
	}
	return s, nil
}

func (r *SaleGormRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).Count(&count).Error
	return count, err
}

// 売上合計。SUM(quantity * price)をnumericのまま受ける。
func (r *SaleGormRepository) SumRevenue(ctx context.Context) (decimal.Decimal, error) {
	return r.sumRevenue(r.db.WithContext(ctx).Model(&model.Sale{}))
}

func (r *SaleGormRepository) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Sale{}).
		Where("sold_at >= ? AND sold_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *SaleGormRepository) SumRevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return r.sumRevenue(r.db.WithContext(ctx).
		Model(&model.Sale{}).
		Where("sold_at >= ? AND sold_at < ?", from, to))
}

func (r *SaleGormRepository) ListBetween(ctx context.Context, from, to time.Time) ([]model.Sale, error) {
	var sales []model.Sale

	err := r.db.WithContext(ctx).
		Where("sold_at >= ? AND sold_at < ?", from, to).
		Order("sold_at asc").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *SaleGormRepository) ListRecent(ctx context.Context, limit int) ([]model.Sale, error) {
	var sales []model.Sale

	err := r.db.WithContext(ctx).
		Order("sold_at desc").
		Limit(limit).
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

// sinceから今までの売れ筋（数量順）
func (r *SaleGormRepository) TopSelling(ctx context.Context, since time.Time, limit int) ([]repo.TopSellingRow, error) {
	var rows []repo.TopSellingRow

	err := r.db.WithContext(ctx).
		Model(&model.Sale{}).
		Select("product_id, SUM(quantity) as total_sold, SUM(quantity * price) as total_revenue").
		Where("sold_at >= ?", since).
		Group("product_id").
		Order("total_sold desc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SaleGormRepository) sumRevenue(q *gorm.DB) (decimal.Decimal, error) {
	// 行が無いとSUMはNULLになるのでCOALESCEしておく
	var out struct {
		Revenue decimal.Decimal
	}
	err := q.Select("COALESCE(SUM(quantity * price), 0) as revenue").Scan(&out).Error
	if err != nil {
		return decimal.Zero, err
	}
	return out.Revenue, nil
}
