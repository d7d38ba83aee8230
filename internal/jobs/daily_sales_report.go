package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/mail"
	repo "github.com/achrafbchir/ecommerce-shopping-cart/internal/repository"
	"github.com/shopspring/decimal"

	"github.com/rs/zerolog/log"
)

// その日の販売実績を集計して管理者へメールするジョブ。
type DailySalesReportJob struct {
	sales      repo.SaleRepository
	products   repo.ProductRepository
	mailer     mail.Mailer
	adminEmail string
}

func NewDailySalesReportJob(
	sales repo.SaleRepository,
	products repo.ProductRepository,
	mailer mail.Mailer,
	adminEmail string,
) *DailySalesReportJob {
	return &DailySalesReportJob{
		sales:      sales,
		products:   products,
		mailer:     mailer,
		adminEmail: adminEmail,
	}
}

// nowの属する日の[0:00, 翌0:00)を対象にする
func (j *DailySalesReportJob) Run(ctx context.Context, now time.Time) error {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, 1)

	sales, err := j.sales.ListBetween(ctx, from, to)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Daily sales report for %s\n\n", from.Format("2006-01-02"))

	total := decimal.Zero
	for _, s := range sales {
		name := fmt.Sprintf("product %d", s.ProductID)
		if p, err := j.products.FindByID(ctx, s.ProductID); err == nil {
			name = p.Name
		}
		fmt.Fprintf(&b, "- %s x%d @ %s = %s\n", name, s.Quantity, s.Price.StringFixed(2), s.Total().StringFixed(2))
		total = total.Add(s.Total())
	}

	fmt.Fprintf(&b, "\nSales: %d\nRevenue: %s\n", len(sales), total.StringFixed(2))

	return j.mailer.Send(ctx, j.adminEmail, fmt.Sprintf("Daily sales report %s", from.Format("2006-01-02")), b.String())
}

// 毎日0時過ぎに実行する。ctxキャンセルで止まる。
func (j *DailySalesReportJob) RunDaily(ctx context.Context) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 0, 5, 0, 0, now.Location()).AddDate(0, 0, 1)

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Until(next)):
		}

		// 前日分を集計する
		if err := j.Run(ctx, time.Now().AddDate(0, 0, -1)); err != nil {
			log.Error().Err(err).Msg("daily sales report failed")
		}
	}
}
