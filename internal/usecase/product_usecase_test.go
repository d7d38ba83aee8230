package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/domain/model"
	repo "github.com/achrafbchir/ecommerce-shopping-cart/internal/repository"
	"github.com/achrafbchir/ecommerce-shopping-cart/internal/usecase"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// ProductRepository モック
// =====================

type MockProductRepo struct {
	mock.Mock
}

var _ repo.ProductRepository = (*MockProductRepo)(nil)

func (m *MockProductRepo) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepo) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *MockProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *MockProductRepo) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepo) CountAll(ctx context.Context) (int64, error) {
	panic("not used in ProductUsecase tests")
}

func (m *MockProductRepo) CountOutOfStock(ctx context.Context) (int64, error) {
	panic("not used in ProductUsecase tests")
}

func (m *MockProductRepo) ListLowStock(ctx context.Context, threshold int64, limit int) ([]model.Product, error) {
	panic("not used in ProductUsecase tests")
}

func (m *MockProductRepo) ListFeatured(ctx context.Context, limit int) ([]model.Product, error) {
	panic("not used in ProductUsecase tests")
}

func TestListProducts_PassesThresholdToRepo(t *testing.T) {
	repoMock := new(MockProductRepo)
	uc := usecase.NewProductUsecase(repoMock, 10)

	repoMock.On("List", mock.Anything, mock.MatchedBy(func(q repo.ProductListQuery) bool {
		return q.LowStockThreshold == 10 && q.Search == "lamp" && q.StockStatus == "low_stock"
	})).Return([]model.Product{{ID: 1, Name: "Desk Lamp"}}, int64(1), nil)

	out, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{
		Page:        1,
		Limit:       12,
		Search:      "  lamp  ", // 前後の空白は落とされる
		StockStatus: "low_stock",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	require.Len(t, out.Items, 1)
	repoMock.AssertExpectations(t)
}

func TestListProducts_Validation(t *testing.T) {
	uc := usecase.NewProductUsecase(new(MockProductRepo), 10)
	neg := decimal.NewFromInt(-1)
	low := decimal.NewFromInt(10)
	high := decimal.NewFromInt(5)

	cases := []struct {
		name string
		in   usecase.ListProductsInput
	}{
		{"page zero", usecase.ListProductsInput{Page: 0, Limit: 12}},
		{"limit too big", usecase.ListProductsInput{Page: 1, Limit: 101}},
		{"negative min_price", usecase.ListProductsInput{Page: 1, Limit: 12, MinPrice: &neg}},
		{"min over max", usecase.ListProductsInput{Page: 1, Limit: 12, MinPrice: &low, MaxPrice: &high}},
		{"unknown stock_status", usecase.ListProductsInput{Page: 1, Limit: 12, StockStatus: "plenty"}},
		{"unknown sort", usecase.ListProductsInput{Page: 1, Limit: 12, Sort: "random"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.ListProducts(context.Background(), tc.in)
			he, ok := usecase.AsHTTPError(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, he.Status)
		})
	}
}

func TestGetProductDetail(t *testing.T) {
	repoMock := new(MockProductRepo)
	uc := usecase.NewProductUsecase(repoMock, 10)

	repoMock.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, Name: "Laptop Computer"}, nil)
	repoMock.On("FindByID", mock.Anything, int64(2)).
		Return(model.Product{}, repo.ErrNotFound)

	p, err := uc.GetProductDetail(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Laptop Computer", p.Name)

	_, err = uc.GetProductDetail(context.Background(), 2)
	var nfe *usecase.NotFoundError
	require.ErrorAs(t, err, &nfe)
}

func TestAdminProductValidation(t *testing.T) {
	uc := usecase.NewAdminProductUsecase(new(MockProductRepo), 10)

	cases := []struct {
		name string
		in   usecase.SaveProductInput
	}{
		{"empty name", usecase.SaveProductInput{Name: "  ", Price: decimal.NewFromInt(1)}},
		{"negative price", usecase.SaveProductInput{Name: "x", Price: decimal.NewFromInt(-1)}},
		{"negative stock", usecase.SaveProductInput{Name: "x", Price: decimal.NewFromInt(1), StockQuantity: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tc.in)
			he, ok := usecase.AsHTTPError(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, he.Status)
		})
	}
}

func TestAdminProductCreate_RoundsPrice(t *testing.T) {
	repoMock := new(MockProductRepo)
	uc := usecase.NewAdminProductUsecase(repoMock, 10)

	repoMock.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Price.Equal(decimal.RequireFromString("19.99"))
	})).Return(model.Product{ID: 1, Name: "Cable", Price: decimal.RequireFromString("19.99")}, nil)

	created, err := uc.Create(context.Background(), usecase.SaveProductInput{
		Name:  "Cable",
		Price: decimal.RequireFromString("19.994"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	repoMock.AssertExpectations(t)
}
