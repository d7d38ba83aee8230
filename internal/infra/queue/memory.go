package queue

import (
	"context"
	"errors"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/jobs"
)

var ErrQueueFull = errors.New("queue full")

// チャネルベースのインメモリキュー。開発・テスト用。
// プロセスが落ちると未処理分は消える。
type MemoryQueue struct {
	ch chan jobs.LowStockAlert
}

func NewMemoryQueue(size int) *MemoryQueue {
	if size <= 0 {
		size = 64
	}
	return &MemoryQueue{ch: make(chan jobs.LowStockAlert, size)}
}

// 満杯なら待たずにエラーを返す。呼び出し側はログして握りつぶす。
func (q *MemoryQueue) Enqueue(ctx context.Context, alert jobs.LowStockAlert) error {
	select {
	case q.ch <- alert:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *MemoryQueue) Next(ctx context.Context) (jobs.LowStockAlert, error) {
	select {
	case alert := <-q.ch:
		return alert, nil
	case <-ctx.Done():
		return jobs.LowStockAlert{}, ctx.Err()
	}
}
