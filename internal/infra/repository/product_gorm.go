package repository

import (
	"context"
	"errors"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/domain/model"
	repo "github.com/achrafbchir/ecommerce-shopping-cart/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 検索・絞り込み・並び替え付きの一覧
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Product{})

	if q.Search != "" {
		base = base.Where("name ILIKE ?", "%"+q.Search+"%")
	}
	if q.MinPrice != nil {
		base = base.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		base = base.Where("price <= ?", *q.MaxPrice)
	}

	switch q.StockStatus {
	case "in_stock":
		base = base.Where("stock_quantity > 0")
	case "low_stock":
		base = base.Where("stock_quantity > 0 AND stock_quantity <= ?", q.LowStockThreshold)
	case "out_of_stock":
		base = base.Where("stock_quantity = 0")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch q.Sort {
	case "price_low":
		base = base.Order("price asc")
	case "price_high":
		base = base.Order("price desc")
	case "name_asc":
		base = base.Order("name asc")
	case "name_desc":
		base = base.Order("name desc")
	case "stock_high":
		base = base.Order("stock_quantity desc")
	case "stock_low":
		base = base.Order("stock_quantity asc")
	default:
		// latest
		base = base.Order("created_at desc")
	}

	var items []model.Product
	offset := (q.Page - 1) * q.Limit
	if err := base.Offset(offset).Limit(q.Limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":           p.Name,
			"price":          p.Price,
			"stock_quantity": p.StockQuantity,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 物理削除。参照しているカート明細は残るが、表示側で「消えた商品」は除外する。
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *ProductGormRepository) CountOutOfStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("stock_quantity = 0").
		Count(&count).Error
	return count, err
}

// 在庫が少ない順
func (r *ProductGormRepository) ListLowStock(ctx context.Context, threshold int64, limit int) ([]model.Product, error) {
	var items []model.Product

	err := r.db.WithContext(ctx).
		Where("stock_quantity <= ?", threshold).
		Order("stock_quantity asc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// 在庫ありからランダムに取る
func (r *ProductGormRepository) ListFeatured(ctx context.Context, limit int) ([]model.Product, error) {
	var items []model.Product

	err := r.db.WithContext(ctx).
		Where("stock_quantity > 0").
		Order("RANDOM()").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
