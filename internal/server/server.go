package server

import (
	"github.com/achrafbchir/ecommerce-shopping-cart/internal/config"
	"github.com/achrafbchir/ecommerce-shopping-cart/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// 全ハンドラのルート登録をここに集める
type Handlers struct {
	Product        *handler.ProductHandler
	Cart           *handler.CartHandler
	Dashboard      *handler.DashboardHandler
	AdminProduct   *handler.AdminProductHandler
	AdminUser      *handler.AdminUserHandler
	AdminDashboard *handler.AdminDashboardHandler
}

func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())

	h.Product.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e, cfg)
	h.Dashboard.RegisterRoutes(e, cfg)
	h.AdminProduct.RegisterRoutes(e, cfg)
	h.AdminUser.RegisterRoutes(e, cfg)
	h.AdminDashboard.RegisterRoutes(e, cfg)

	return e
}

func Start(addr string, cfg config.Config, h Handlers) error {
	e := New(cfg, h)
	return e.Start(addr)
}
