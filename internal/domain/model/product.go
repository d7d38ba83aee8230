package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	StockQuantity int64           `gorm:"not null;default:0" json:"stock_quantity"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 在庫が閾値以下かどうか。判定のみで副作用なし。
func (p Product) IsLowStock(threshold int64) bool {
	return p.StockQuantity <= threshold
}

// 在庫切れか
func (p Product) IsOutOfStock() bool {
	return p.StockQuantity <= 0
}
