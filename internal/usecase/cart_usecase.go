package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/domain/model"
	repo "github.com/achrafbchir/ecommerce-shopping-cart/internal/repository"
	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジックです。
// 数量の加算はトランザクション＋行ロックで行い、同じ明細への
// 同時更新で加算が失われないようにする。
type CartUsecase struct {
	tx           repo.TransactionManager
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(
	tx repo.TransactionManager,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		tx:           tx,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

type CartLine struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type CartView struct {
	Items     []CartLine      `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int64           `json:"item_count"`
}

type AddItemInput struct {
	ProductID int64
	Quantity  int64
}

// View はカートの読み取り専用ビュー。副作用なし。
// 商品が消えた明細は「無いもの」として除外する。
func (u *CartUsecase) View(ctx context.Context, userID int64) (CartView, error) {
	if userID <= 0 {
		return CartView{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.cartItemRepo.ListByUserID(ctx, userID)
	if err != nil {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildView(ctx, items, u.productRepo)
}

// AddItem はカートに追加（同一商品は数量加算）。
// 加算後の数量が現在庫を超えるなら何も変更しない。
func (u *CartUsecase) AddItem(ctx context.Context, userID int64, in AddItemInput) (CartView, error) {
	if userID <= 0 {
		return CartView{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, in.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			return &NotFoundError{Resource: "product"}
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 既存明細を行ロック付きで読む
		existing, err := r.CartItems().FindByUserAndProductForUpdate(ctx, userID, in.ProductID)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		newQty := in.Quantity
		if err == nil {
			newQty += existing.Quantity
		}

		// 事前チェック。確定時にもう一度検証されるのであくまで早期フィードバック。
		if newQty > p.StockQuantity {
			return &ExceedsStockError{
				ProductID: p.ID,
				Requested: newQty,
				Available: p.StockQuantity,
			}
		}

		if existing.ID != 0 {
			if err := r.CartItems().UpdateQuantity(ctx, existing.ID, newQty); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			return nil
		}

		_, err = r.CartItems().Create(ctx, model.CartItem{
			UserID:    userID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return CartView{}, err
	}
	return u.View(ctx, userID)
}

// 数量変更（所有チェック＋在庫チェック）。上書きのみで加算はしない。
func (u *CartUsecase) UpdateItem(ctx context.Context, userID int64, cartItemID int64, quantity int64) (CartView, error) {
	if userID <= 0 {
		return CartView{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if quantity < 1 {
		return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartView{}, &NotFoundError{Resource: "cart item"}
	}
	if err != nil {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//所有チェック（他人の明細なら403）
	if item.UserID != userID {
		return CartView{}, &ForbiddenError{}
	}

	p, err := u.productRepo.FindByID(ctx, item.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		// 商品が消えた明細は無いもの扱い
		return CartView{}, &NotFoundError{Resource: "product"}
	}
	if err != nil {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if quantity > p.StockQuantity {
		return CartView{}, &ExceedsStockError{
			ProductID: p.ID,
			Requested: quantity,
			Available: p.StockQuantity,
		}
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, quantity); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartView{}, &NotFoundError{Resource: "cart item"}
		}
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.View(ctx, userID)
}

// 明細削除
func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, cartItemID int64) (CartView, error) {
	if userID <= 0 {
		return CartView{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartView{}, &NotFoundError{Resource: "cart item"}
	}
	if err != nil {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if item.UserID != userID {
		return CartView{}, &ForbiddenError{}
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil && !errors.Is(err, repo.ErrNotFound) {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.View(ctx, userID)
}

// 明細一覧からビューを組み立てる（products経由で現在価格を引く）
func (u *CartUsecase) buildView(ctx context.Context, items []model.CartItem, products repo.ProductRepository) (CartView, error) {
	lines := make([]CartLine, 0, len(items))
	subtotal := decimal.Zero
	var itemCount int64 = 0

	for _, it := range items {
		p, err := products.FindByID(ctx, it.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		lineTotal := p.Price.Mul(decimal.NewFromInt(it.Quantity))

		lines = append(lines, CartLine{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  it.Quantity,
			LineTotal: lineTotal,
		})

		subtotal = subtotal.Add(lineTotal)
		itemCount += it.Quantity
	}

	return CartView{Items: lines, Subtotal: subtotal, ItemCount: itemCount}, nil
}
