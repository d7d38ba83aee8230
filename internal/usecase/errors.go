package usecase

import (
	"errors"
	"fmt"
	"strings"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// ここから下は「想定内の失敗」。システムエラーではなく、
// ハンドラが4xxに変換してそのまま表示できるもの。

// カートが空のままチェックアウトしようとした
type EmptyCartError struct{}

func (e *EmptyCartError) Error() string {
	return "your cart is empty"
}

// 1明細ぶんの在庫不足
type StockShortage struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Requested int64  `json:"requested"`
	Available int64  `json:"available"`
}

// チェックアウト時の在庫不足。該当する明細を全部持つ。
type InsufficientStockError struct {
	Shortages []StockShortage
}

func (e *InsufficientStockError) Error() string {
	names := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		names = append(names, fmt.Sprintf("insufficient stock for %s", s.Name))
	}
	return strings.Join(names, "; ")
}

// カート操作時の在庫超過（事前チェック。確定時に再検証される）
type ExceedsStockError struct {
	ProductID int64
	Requested int64
	Available int64
}

func (e *ExceedsStockError) Error() string {
	return "the quantity cannot exceed the available stock"
}

// 他人のカート明細などへの操作
type ForbiddenError struct{}

func (e *ForbiddenError) Error() string {
	return "forbidden"
}

// 対象が存在しない
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return e.Resource + " not found"
}
