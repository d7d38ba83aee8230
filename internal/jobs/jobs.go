package jobs

import "context"

// 低在庫アラートのペイロード
type LowStockAlert struct {
	ProductID     int64  `json:"product_id"`
	Name          string `json:"name"`
	StockQuantity int64  `json:"stock_quantity"`
	Threshold     int64  `json:"threshold"`
}

// ジョブ投入側。fire-and-forgetで、at-least-once配送を許容する。
type Queue interface {
	Enqueue(ctx context.Context, alert LowStockAlert) error
}

// ジョブ取り出し側（ワーカーが使う）
type Consumer interface {
	// 次のジョブが来るまでブロックする。ctxキャンセルで抜ける。
	Next(ctx context.Context) (LowStockAlert, error)
}
