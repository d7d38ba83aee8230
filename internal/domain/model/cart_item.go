package model

import "time"

// カートの明細。ユーザー×商品で1行（同一商品は数量加算）。
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index;uniqueIndex:idx_cart_items_user_product" json:"user_id"`
	ProductID int64     `gorm:"not null;index;uniqueIndex:idx_cart_items_user_product" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
