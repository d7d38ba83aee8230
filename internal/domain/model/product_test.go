package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProductStockFlags(t *testing.T) {
	// 閾値ちょうどは「少ない」に入る
	assert.True(t, Product{StockQuantity: 10}.IsLowStock(10))
	assert.True(t, Product{StockQuantity: 9}.IsLowStock(10))
	assert.False(t, Product{StockQuantity: 11}.IsLowStock(10))

	assert.True(t, Product{StockQuantity: 0}.IsOutOfStock())
	assert.False(t, Product{StockQuantity: 1}.IsOutOfStock())
}

func TestSaleTotal(t *testing.T) {
	s := Sale{Quantity: 3, Price: decimal.RequireFromString("29.99")}
	assert.Equal(t, "89.97", s.Total().StringFixed(2))
}

func TestUserIsVerified(t *testing.T) {
	now := time.Now()
	assert.True(t, User{EmailVerifiedAt: &now}.IsVerified())
	assert.False(t, User{}.IsVerified())
}
