package usecase

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/domain/model"
	"github.com/achrafbchir/ecommerce-shopping-cart/internal/jobs"
	repo "github.com/achrafbchir/ecommerce-shopping-cart/internal/repository"
	"github.com/shopspring/decimal"

	"github.com/rs/zerolog/log"
)

// コミット成功後に呼ばれるフック。在庫が動いた商品ごとに1回。
// 失敗してもチェックアウト自体は成功のまま。
type PostCommitHook func(p model.Product)

// CheckoutUsecase はカートをSaleに変換する一連の流れ。
// 検証→確定（1トランザクション）→後処理フック、の順で進む。
type CheckoutUsecase struct {
	tx    repo.TransactionManager
	hooks []PostCommitHook
}

func NewCheckoutUsecase(tx repo.TransactionManager) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx}
}

// フック登録。通知などの関心事を確定処理の外に置くため。
func (u *CheckoutUsecase) AddPostCommitHook(h PostCommitHook) {
	u.hooks = append(u.hooks, h)
}

type CheckoutInput struct {
	Confirm bool
}

type SoldLine struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type CheckoutOutput struct {
	Items  []SoldLine      `json:"items"`
	Total  decimal.Decimal `json:"total"`
	SoldAt time.Time       `json:"sold_at"`
}

// カート内の1行と対応する商品
type checkoutLine struct {
	item    model.CartItem
	product model.Product
}

func (u *CheckoutUsecase) Checkout(ctx context.Context, userID int64, in CheckoutInput) (CheckoutOutput, error) {
	if userID <= 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !in.Confirm {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "you must confirm your order to proceed")
	}

	var out CheckoutOutput
	var touched []model.Product

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, err := r.CartItems().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 商品が消えた明細は除外
		lines := make([]checkoutLine, 0, len(items))
		for _, it := range items {
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				continue
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			lines = append(lines, checkoutLine{item: it, product: p})
		}

		if len(lines) == 0 {
			return &EmptyCartError{}
		}

		// 検証フェーズ：足りない明細を全部集めてから返す
		var shortages []StockShortage
		for _, l := range lines {
			if l.item.Quantity > l.product.StockQuantity {
				shortages = append(shortages, StockShortage{
					ProductID: l.product.ID,
					Name:      l.product.Name,
					Requested: l.item.Quantity,
					Available: l.product.StockQuantity,
				})
			}
		}
		if len(shortages) > 0 {
			return &InsufficientStockError{Shortages: shortages}
		}

		// ロック取得順を揃えてデッドロックを避ける
		sort.Slice(lines, func(i, j int) bool {
			return lines[i].product.ID < lines[j].product.ID
		})

		now := time.Now()
		out = CheckoutOutput{SoldAt: now, Total: decimal.Zero}

		for _, l := range lines {
			// 検証後に在庫が動いた可能性があるので、確定はここの
			// 条件付き減算だけを信用する。失敗したら全体をロールバック。
			updated, err := r.Inventory().Reserve(ctx, l.product.ID, l.item.Quantity)
			if err != nil {
				var ise *repo.InsufficientStockError
				if errors.As(err, &ise) {
					return &InsufficientStockError{Shortages: []StockShortage{{
						ProductID: ise.ProductID,
						Name:      l.product.Name,
						Requested: ise.Requested,
						Available: ise.Available,
					}}}
				}
				if errors.Is(err, repo.ErrNotFound) {
					return &NotFoundError{Resource: "product"}
				}
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			// priceは販売時点の商品価格をコピーする
			sale := model.Sale{
				ProductID: updated.ID,
				Quantity:  l.item.Quantity,
				Price:     updated.Price,
				SoldAt:    now,
			}
			if _, err := r.Sales().Create(ctx, sale); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			lineTotal := updated.Price.Mul(decimal.NewFromInt(l.item.Quantity))
			out.Items = append(out.Items, SoldLine{
				ProductID: updated.ID,
				Name:      updated.Name,
				Quantity:  l.item.Quantity,
				Price:     updated.Price,
				LineTotal: lineTotal,
			})
			out.Total = out.Total.Add(lineTotal)

			touched = append(touched, updated)
		}

		// カートをクリア
		if err := r.CartItems().DeleteByUserID(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})

	if err != nil {
		return CheckoutOutput{}, err
	}

	// コミット後の副作用。ここでの失敗は結果に影響しない。
	for _, p := range touched {
		for _, h := range u.hooks {
			h(p)
		}
	}

	return out, nil
}

// 低在庫ならアラートをキューに積むフック。
// 投入失敗はログだけ残して握りつぶす。
func LowStockEnqueueHook(q jobs.Queue, threshold int64) PostCommitHook {
	return func(p model.Product) {
		if !p.IsLowStock(threshold) {
			return
		}

		alert := jobs.LowStockAlert{
			ProductID:     p.ID,
			Name:          p.Name,
			StockQuantity: p.StockQuantity,
			Threshold:     threshold,
		}

		if err := q.Enqueue(context.Background(), alert); err != nil {
			log.Warn().
				Err(err).
				Int64("product_id", p.ID).
				Msg("could not enqueue low stock alert")
		}
	}
}
