package repository

import (
	"context"
	"errors"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/domain/model"
	repo "github.com/achrafbchir/ecommerce-shopping-cart/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 在庫が足りるときだけ減らす。
// チェックと減算を1つのUPDATEで行うので、同時実行でも売り越さない。
func (r *InventoryGormRepository) Reserve(ctx context.Context, productID int64, qty int64) (model.Product, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND stock_quantity >= ?", productID, qty).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", qty))

	if res.Error != nil {
		return model.Product{}, res.Error
	}

	if res.RowsAffected == 0 {
		// 商品が無いのか在庫不足なのかをここで区別する
		var p model.Product
		err := r.db.WithContext(ctx).Where("id = ?", productID).First(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Product{}, repo.ErrNotFound
		}
		if err != nil {
			return model.Product{}, err
		}
		return model.Product{}, &repo.InsufficientStockError{
			ProductID: productID,
			Requested: qty,
			Available: p.StockQuantity,
		}
	}

	// 減算後の状態を返す（低在庫判定に使う）
	var p model.Product
	if err := r.db.WithContext(ctx).Where("id = ?", productID).First(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 在庫戻し
func (r *InventoryGormRepository) Restore(ctx context.Context, productID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", qty))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
