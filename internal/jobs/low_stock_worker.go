package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/mail"

	"github.com/rs/zerolog/log"
)

// 低在庫アラートを1件ずつ取り出して管理者へメールするワーカー。
type LowStockWorker struct {
	consumer   Consumer
	mailer     mail.Mailer
	adminEmail string
}

func NewLowStockWorker(consumer Consumer, mailer mail.Mailer, adminEmail string) *LowStockWorker {
	return &LowStockWorker{
		consumer:   consumer,
		mailer:     mailer,
		adminEmail: adminEmail,
	}
}

// ctxキャンセルまで回り続ける。1件の失敗で止めない。
func (w *LowStockWorker) Run(ctx context.Context) {
	log.Info().Msg("low stock worker started")

	for {
		alert, err := w.consumer.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				log.Info().Msg("low stock worker stopped")
				return
			}
			log.Error().Err(err).Msg("could not read low stock alert")
			continue
		}

		if err := w.handle(ctx, alert); err != nil {
			log.Error().
				Err(err).
				Int64("product_id", alert.ProductID).
				Msg("could not send low stock mail")
		}
	}
}

func (w *LowStockWorker) handle(ctx context.Context, alert LowStockAlert) error {
	subject := fmt.Sprintf("Low stock alert: %s", alert.Name)
	body := fmt.Sprintf(
		"Product %q (id %d) is low on stock.\nRemaining: %d (threshold %d)\n",
		alert.Name, alert.ProductID, alert.StockQuantity, alert.Threshold,
	)

	return w.mailer.Send(ctx, w.adminEmail, subject, body)
}
