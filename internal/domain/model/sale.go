package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 販売履歴。チェックアウト確定時のみ作成され、以後更新しない。
// priceは販売時点の商品価格のスナップショット。
type Sale struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64           `gorm:"not null;index" json:"product_id"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	SoldAt    time.Time       `gorm:"not null;index" json:"sold_at"`
}

// この明細の売上金額（quantity × price）
func (s Sale) Total() decimal.Decimal {
	return s.Price.Mul(decimal.NewFromInt(s.Quantity))
}
