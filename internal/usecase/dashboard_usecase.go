package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/domain/model"
	repo "github.com/achrafbchir/ecommerce-shopping-cart/internal/repository"
	"github.com/shopspring/decimal"
)

// 現在時刻の注入用
type Clock interface {
	Now() time.Time
}

// ダッシュボードの集計。読み取り専用。
type DashboardUsecase struct {
	userRepo     repo.UserRepository
	productRepo  repo.ProductRepository
	saleRepo     repo.SaleRepository
	cartItemRepo repo.CartItemRepository
	cartUC       *CartUsecase
	clock        Clock

	lowStockThreshold int64
}

func NewDashboardUsecase(
	userRepo repo.UserRepository,
	productRepo repo.ProductRepository,
	saleRepo repo.SaleRepository,
	cartItemRepo repo.CartItemRepository,
	cartUC *CartUsecase,
	clock Clock,
	lowStockThreshold int64,
) *DashboardUsecase {
	return &DashboardUsecase{
		userRepo:          userRepo,
		productRepo:       productRepo,
		saleRepo:          saleRepo,
		cartItemRepo:      cartItemRepo,
		cartUC:            cartUC,
		clock:             clock,
		lowStockThreshold: lowStockThreshold,
	}
}

type DashboardStatistics struct {
	TotalUsers          int64           `json:"total_users"`
	TotalProducts       int64           `json:"total_products"`
	TotalSales          int64           `json:"total_sales"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	TodaySales          int64           `json:"today_sales"`
	TodayRevenue        decimal.Decimal `json:"today_revenue"`
	MonthSales          int64           `json:"month_sales"`
	MonthRevenue        decimal.Decimal `json:"month_revenue"`
	OutOfStockProducts  int64           `json:"out_of_stock_products"`
	NewUsersToday       int64           `json:"new_users_today"`
	NewUsersThisMonth   int64           `json:"new_users_this_month"`
	VerifiedUsers       int64           `json:"verified_users"`
	UsersWithActiveCart int64           `json:"users_with_active_cart"`
	TotalCartItems      int64           `json:"total_cart_items"`
}

type TopSellingProduct struct {
	Product      model.Product   `json:"product"`
	TotalSold    int64           `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

type RecentSale struct {
	model.Sale
	ProductName string          `json:"product_name"`
	Total       decimal.Decimal `json:"total"`
}

// 直近7日のチャートの1点
type ChartPoint struct {
	Date    string          `json:"date"`
	Sales   int64           `json:"sales"`
	Revenue decimal.Decimal `json:"revenue"`
	Users   int64           `json:"users"`
}

type AdminDashboardOutput struct {
	Statistics                DashboardStatistics `json:"statistics"`
	LowStockProducts          []model.Product     `json:"low_stock_products"`
	TopSellingProducts        []TopSellingProduct `json:"top_selling_products"`
	RecentSales               []RecentSale        `json:"recent_sales"`
	SalesChartData            []ChartPoint        `json:"sales_chart_data"`
	UserRegistrationChartData []ChartPoint        `json:"user_registration_chart_data"`
}

type UserDashboardOutput struct {
	Cart             CartView        `json:"cart"`
	FeaturedProducts []model.Product `json:"featured_products"`
}

func (u *DashboardUsecase) AdminDashboard(ctx context.Context) (AdminDashboardOutput, error) {
	stats, err := u.statistics(ctx)
	if err != nil {
		return AdminDashboardOutput{}, err
	}

	lowStock, err := u.productRepo.ListLowStock(ctx, u.lowStockThreshold, 10)
	if err != nil {
		return AdminDashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	topSelling, err := u.topSelling(ctx)
	if err != nil {
		return AdminDashboardOutput{}, err
	}

	recent, err := u.recentSales(ctx)
	if err != nil {
		return AdminDashboardOutput{}, err
	}

	salesChart, usersChart, err := u.chartData(ctx)
	if err != nil {
		return AdminDashboardOutput{}, err
	}

	return AdminDashboardOutput{
		Statistics:                stats,
		LowStockProducts:          lowStock,
		TopSellingProducts:        topSelling,
		RecentSales:               recent,
		SalesChartData:            salesChart,
		UserRegistrationChartData: usersChart,
	}, nil
}

// ユーザー向け：カートの中身＋おすすめ商品
func (u *DashboardUsecase) UserDashboard(ctx context.Context, userID int64) (UserDashboardOutput, error) {
	if userID <= 0 {
		return UserDashboardOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartUC.View(ctx, userID)
	if err != nil {
		return UserDashboardOutput{}, err
	}

	featured, err := u.productRepo.ListFeatured(ctx, 6)
	if err != nil {
		return UserDashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return UserDashboardOutput{Cart: cart, FeaturedProducts: featured}, nil
}

func (u *DashboardUsecase) statistics(ctx context.Context) (DashboardStatistics, error) {
	now := u.clock.Now()
	todayStart := startOfDay(now)
	tomorrowStart := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonthStart := monthStart.AddDate(0, 1, 0)

	var s DashboardStatistics
	var err error

	if s.TotalUsers, err = u.userRepo.CountShoppers(ctx); err != nil {
		return s, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if s.TotalProducts, err = u.productRepo.CountAll(ctx); err != nil {
		return s, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if s.TotalSales, err = u.saleRepo.CountAll(ctx); err != nil {
		return s, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if s.TotalRevenue, err = u.saleRepo.SumRevenue(ctx); err != nil {
		return s, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if s.TodaySales, err = u.saleRepo.CountBetween(ctx, todayStart, tomorrowStart); err != nil {
		return s, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if s.TodayRevenue, err = u.saleRepo.SumRevenueBetween(ctx, todayStart, tomorrowStart); err != nil {
		return s, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if s.MonthSales, err = u.saleRepo.CountBetween(ctx, monthStart, nextMonthStart); err != nil {
		return s, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if s.MonthRevenue, err = u.saleRepo.SumRevenueBetween(ctx, monthStart, nextMonthStart); err != nil {
		return s, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if s.OutOfStockProducts, err = u.productRepo.CountOutOfStock(ctx); err != nil {
		return s, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if s.NewUsersToday, err = u.userRepo.CountShoppersCreatedBetween(ctx, todayStart, tomorrowStart); err != nil {
		return s, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if s.NewUsersThisMonth, err = u.userRepo.CountShoppersCreatedBetween(ctx, monthStart, nextMonthStart); err != nil {
		return s, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if s.VerifiedUsers, err = u.userRepo.CountVerified(ctx); err != nil {
		return s, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if s.UsersWithActiveCart, err = u.userRepo.CountWithCartItems(ctx); err != nil {
		return s, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if s.TotalCartItems, err = u.cartItemRepo.CountAll(ctx); err != nil {
		return s, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return s, nil
}

// 直近30日の売れ筋（数量順、上位10件）
func (u *DashboardUsecase) topSelling(ctx context.Context) ([]TopSellingProduct, error) {
	since := u.clock.Now().AddDate(0, 0, -30)

	rows, err := u.saleRepo.TopSelling(ctx, since, 10)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]TopSellingProduct, 0, len(rows))
	for _, row := range rows {
		p, err := u.productRepo.FindByID(ctx, row.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			// 削除済み商品の売上は商品情報なしで出さない
			continue
		}
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = append(out, TopSellingProduct{
			Product:      p,
			TotalSold:    row.TotalSold,
			TotalRevenue: row.TotalRevenue,
		})
	}

	return out, nil
}

func (u *DashboardUsecase) recentSales(ctx context.Context) ([]RecentSale, error) {
	sales, err := u.saleRepo.ListRecent(ctx, 10)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]RecentSale, 0, len(sales))
	for _, s := range sales {
		name := ""
		if p, err := u.productRepo.FindByID(ctx, s.ProductID); err == nil {
			name = p.Name
		}

		out = append(out, RecentSale{
			Sale:        s,
			ProductName: name,
			Total:       s.Total(),
		})
	}

	return out, nil
}

// 直近7日（今日を含む）の日別データ
func (u *DashboardUsecase) chartData(ctx context.Context) (sales []ChartPoint, users []ChartPoint, err error) {
	now := u.clock.Now()

	for i := 6; i >= 0; i-- {
		dayStart := startOfDay(now.AddDate(0, 0, -i))
		dayEnd := dayStart.AddDate(0, 0, 1)
		label := dayStart.Format("Jan 2")

		daySales, err := u.saleRepo.CountBetween(ctx, dayStart, dayEnd)
		if err != nil {
			return nil, nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		dayRevenue, err := u.saleRepo.SumRevenueBetween(ctx, dayStart, dayEnd)
		if err != nil {
			return nil, nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		dayUsers, err := u.userRepo.CountShoppersCreatedBetween(ctx, dayStart, dayEnd)
		if err != nil {
			return nil, nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		sales = append(sales, ChartPoint{Date: label, Sales: daySales, Revenue: dayRevenue})
		users = append(users, ChartPoint{Date: label, Users: dayUsers})
	}

	return sales, users, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
