package jobs_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/domain/model"
	"github.com/achrafbchir/ecommerce-shopping-cart/internal/jobs"
	repo "github.com/achrafbchir/ecommerce-shopping-cart/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reportSaleRepoMock struct{ mock.Mock }

var _ repo.SaleRepository = (*reportSaleRepoMock)(nil)

func (m *reportSaleRepoMock) ListBetween(ctx context.Context, from, to time.Time) ([]model.Sale, error) {
	args := m.Called(ctx, from, to)
	sales, _ := args.Get(0).([]model.Sale)
	return sales, args.Error(1)
}

func (m *reportSaleRepoMock) Create(ctx context.Context, s model.Sale) (model.Sale, error) {
	panic("not used in report tests")
}

func (m *reportSaleRepoMock) CountAll(ctx context.Context) (int64, error) {
	panic("not used in report tests")
}

func (m *reportSaleRepoMock) SumRevenue(ctx context.Context) (decimal.Decimal, error) {
	panic("not used in report tests")
}

func (m *reportSaleRepoMock) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	panic("not used in report tests")
}

func (m *reportSaleRepoMock) SumRevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	panic("not used in report tests")
}

func (m *reportSaleRepoMock) ListRecent(ctx context.Context, limit int) ([]model.Sale, error) {
	panic("not used in report tests")
}

func (m *reportSaleRepoMock) TopSelling(ctx context.Context, since time.Time, limit int) ([]repo.TopSellingRow, error) {
	panic("not used in report tests")
}

type reportProductRepoMock struct{ mock.Mock }

var _ repo.ProductRepository = (*reportProductRepoMock)(nil)

func (m *reportProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *reportProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	panic("not used in report tests")
}

func (m *reportProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	panic("not used in report tests")
}

func (m *reportProductRepoMock) Update(ctx context.Context, p model.Product) error {
	panic("not used in report tests")
}

func (m *reportProductRepoMock) Delete(ctx context.Context, id int64) error {
	panic("not used in report tests")
}

func (m *reportProductRepoMock) CountAll(ctx context.Context) (int64, error) {
	panic("not used in report tests")
}

func (m *reportProductRepoMock) CountOutOfStock(ctx context.Context) (int64, error) {
	panic("not used in report tests")
}

func (m *reportProductRepoMock) ListLowStock(ctx context.Context, threshold int64, limit int) ([]model.Product, error) {
	panic("not used in report tests")
}

func (m *reportProductRepoMock) ListFeatured(ctx context.Context, limit int) ([]model.Product, error) {
	panic("not used in report tests")
}

func TestDailySalesReport_CoversWholeDayAndSumsRevenue(t *testing.T) {
	sales := new(reportSaleRepoMock)
	products := new(reportProductRepoMock)
	mailer := newRecordMailer()

	now := time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)
	dayStart := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	sales.On("ListBetween", mock.Anything, dayStart, dayStart.AddDate(0, 0, 1)).
		Return([]model.Sale{
			{ID: 1, ProductID: 1, Quantity: 2, Price: decimal.RequireFromString("100.00"), SoldAt: now},
			{ID: 2, ProductID: 2, Quantity: 1, Price: decimal.RequireFromString("29.99"), SoldAt: now},
		}, nil)

	products.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, Name: "Laptop Computer"}, nil)
	// 消えた商品はIDで載る
	products.On("FindByID", mock.Anything, int64(2)).
		Return(model.Product{}, repo.ErrNotFound)

	job := jobs.NewDailySalesReportJob(sales, products, mailer, "admin@example.com")
	require.NoError(t, job.Run(context.Background(), now))

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	require.Len(t, mailer.body, 1)
	body := mailer.body[0]
	assert.Contains(t, mailer.subj[0], "2026-08-29")
	assert.Contains(t, body, "Laptop Computer x2 @ 100.00 = 200.00")
	assert.Contains(t, body, "product 2 x1")
	assert.Contains(t, body, "Revenue: 229.99")
	sales.AssertExpectations(t)
}

func TestDailySalesReport_EmptyDay(t *testing.T) {
	sales := new(reportSaleRepoMock)
	products := new(reportProductRepoMock)
	mailer := newRecordMailer()

	now := time.Date(2026, 8, 29, 1, 0, 0, 0, time.UTC)
	sales.On("ListBetween", mock.Anything, mock.Anything, mock.Anything).
		Return([]model.Sale{}, nil)

	job := jobs.NewDailySalesReportJob(sales, products, mailer, "admin@example.com")
	require.NoError(t, job.Run(context.Background(), now))

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	require.Len(t, mailer.body, 1)
	assert.True(t, strings.Contains(mailer.body[0], "Sales: 0"))
}
