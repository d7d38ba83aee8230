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

type ProductUsecase struct {
	productRepo repo.ProductRepository
	// low_stockフィルタの閾値
	lowStockThreshold int64
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, lowStockThreshold int64) *ProductUsecase {
	return &ProductUsecase{
		productRepo:       productRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page        int
	Limit       int
	Search      string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	StockStatus string
	Sort        string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Search) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "search too long")
	}
	if in.MinPrice != nil && in.MinPrice.IsNegative() {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price must be >= 0")
	}
	if in.MaxPrice != nil && in.MaxPrice.IsNegative() {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "max_price must be >= 0")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && in.MinPrice.GreaterThan(*in.MaxPrice) {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price must be <= max_price")
	}

	switch in.StockStatus {
	case "", "all", "in_stock", "low_stock", "out_of_stock":
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid stock_status")
	}

	switch in.Sort {
	case "", "latest", "price_low", "price_high", "name_asc", "name_desc", "stock_high", "stock_low":
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:              in.Page,
		Limit:             in.Limit,
		Search:            strings.TrimSpace(in.Search),
		MinPrice:          in.MinPrice,
		MaxPrice:          in.MaxPrice,
		StockStatus:       in.StockStatus,
		Sort:              in.Sort,
		LowStockThreshold: u.lowStockThreshold,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, &NotFoundError{Resource: "product"}
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return p, nil
}
