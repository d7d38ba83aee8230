package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/domain/model"
	repo "github.com/achrafbchir/ecommerce-shopping-cart/internal/repository"
	"github.com/shopspring/decimal"
)

// 商品の管理CRUD。在庫の直接セットはここ（管理操作）だけに許す。
type AdminProductUsecase struct {
	productRepo       repo.ProductRepository
	lowStockThreshold int64
}

func NewAdminProductUsecase(productRepo repo.ProductRepository, lowStockThreshold int64) *AdminProductUsecase {
	return &AdminProductUsecase{
		productRepo:       productRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

type SaveProductInput struct {
	Name          string
	Price         decimal.Decimal
	StockQuantity int64
}

func (in SaveProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if len(in.Name) > 255 {
		return NewHTTPError(http.StatusBadRequest, "name too long")
	}
	if in.Price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.StockQuantity < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock_quantity must be >= 0")
	}
	return nil
}

func (u *AdminProductUsecase) Create(ctx context.Context, in SaveProductInput) (model.Product, error) {
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}

	created, err := u.productRepo.Create(ctx, model.Product{
		Name:          strings.TrimSpace(in.Name),
		Price:         in.Price.Round(2),
		StockQuantity: in.StockQuantity,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *AdminProductUsecase) Update(ctx context.Context, productID int64, in SaveProductInput) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, &NotFoundError{Resource: "product"}
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Price = in.Price.Round(2)
	p.StockQuantity = in.StockQuantity

	if err := u.productRepo.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, &NotFoundError{Resource: "product"}
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return p, nil
}

// 削除。参照しているカート明細は消さない（表示側で除外される）。
func (u *AdminProductUsecase) Delete(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.productRepo.Delete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return &NotFoundError{Resource: "product"}
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 管理画面の一覧。公開側と同じ検索だが価格フィルタは持たない。
func (u *AdminProductUsecase) List(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:              in.Page,
		Limit:             in.Limit,
		Search:            strings.TrimSpace(in.Search),
		StockStatus:       in.StockStatus,
		Sort:              in.Sort,
		LowStockThreshold: u.lowStockThreshold,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}
