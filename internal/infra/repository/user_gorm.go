package repository

import (
	"context"
	"errors"
	"time"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/domain/model"
	repo "github.com/achrafbchir/ecommerce-shopping-cart/internal/repository"

	"gorm.io/gorm"
)

type UserGormRepository struct {
	db *gorm.DB
}

// DI
func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) FindByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, repo.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, repo.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (r *UserGormRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		return model.User{}, err
	}
	return u, nil
}

// ユーザー削除。カート明細も一緒に消す。
func (r *UserGormRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}

// 非管理者の一覧（検索・認証状態フィルタ・並び替え・カート明細数付き）
func (r *UserGormRepository) List(ctx context.Context, q repo.UserListQuery) ([]repo.UserListRow, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("is_admin = ?", false)

	if q.Search != "" {
		like := "%" + q.Search + "%"
		base = base.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}

	switch q.EmailVerified {
	case "verified":
		base = base.Where("email_verified_at IS NOT NULL")
	case "unverified":
		base = base.Where("email_verified_at IS NULL")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch q.Sort {
	case "oldest":
		base = base.Order("created_at asc")
	case "name_asc":
		base = base.Order("name asc")
	case "name_desc":
		base = base.Order("name desc")
	case "email_asc":
		base = base.Order("email asc")
	case "email_desc":
		base = base.Order("email desc")
	default:
		base = base.Order("created_at desc")
	}

	var rows []repo.UserListRow
	offset := (q.Page - 1) * q.Limit

	err := base.
		Select("users.*, (SELECT COUNT(*) FROM cart_items WHERE cart_items.user_id = users.id) as cart_item_count").
		Offset(offset).
		Limit(q.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *UserGormRepository) CountShoppers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("is_admin = ?", false).
		Count(&count).Error
	return count, err
}

func (r *UserGormRepository) CountShoppersCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("is_admin = ? AND created_at >= ? AND created_at < ?", false, from, to).
		Count(&count).Error
	return count, err
}

func (r *UserGormRepository) CountVerified(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("is_admin = ? AND email_verified_at IS NOT NULL", false).
		Count(&count).Error
	return count, err
}

// カートに何か入っているユーザー数
func (r *UserGormRepository) CountWithCartItems(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("is_admin = ? AND EXISTS (SELECT 1 FROM cart_items WHERE cart_items.user_id = users.id)", false).
		Count(&count).Error
	return count, err
}
