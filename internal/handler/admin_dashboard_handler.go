package handler

import (
	"net/http"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/config"
	"github.com/achrafbchir/ecommerce-shopping-cart/internal/middleware"
	"github.com/achrafbchir/ecommerce-shopping-cart/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/dashboard
type AdminDashboardHandler struct {
	uc *usecase.DashboardUsecase
}

func NewAdminDashboardHandler(uc *usecase.DashboardUsecase) *AdminDashboardHandler {
	return &AdminDashboardHandler{uc: uc}
}

func (h *AdminDashboardHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/dashboard")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.GET("", h.show)
}

func (h *AdminDashboardHandler) show(c echo.Context) error {
	out, err := h.uc.AdminDashboard(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
