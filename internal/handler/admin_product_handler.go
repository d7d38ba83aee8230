package handler

import (
	"net/http"
	"strconv"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/config"
	"github.com/achrafbchir/ecommerce-shopping-cart/internal/middleware"
	"github.com/achrafbchir/ecommerce-shopping-cart/internal/usecase"
	"github.com/shopspring/decimal"

	"github.com/labstack/echo/v4"
)

// /admin/products の管理API
type AdminProductHandler struct {
	uc *usecase.AdminProductUsecase
}

// DI
func NewAdminProductHandler(uc *usecase.AdminProductUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

type SaveProductRequest struct {
	Name          string `json:"name"`
	Price         string `json:"price"`
	StockQuantity int64  `json:"stock_quantity"`
}

func (h *AdminProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/products")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.GET("", h.list)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

func (h *AdminProductHandler) list(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 15
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListProductsInput{
		Page:        page,
		Limit:       limit,
		Search:      c.QueryParam("search"),
		StockStatus: c.QueryParam("stock_status"),
		Sort:        c.QueryParam("sort_by"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) create(c echo.Context) error {
	in, ok := bindSaveProduct(c)
	if !ok {
		return nil
	}

	p, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, p)
}

func (h *AdminProductHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	in, ok := bindSaveProduct(c)
	if !ok {
		return nil
	}

	p, err := h.uc.Update(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *AdminProductHandler) remove(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// priceは文字列で受けてdecimalに変換する（floatを経由させない）。
// 失敗時はここでレスポンスを書いてfalseを返す。
func bindSaveProduct(c echo.Context) (usecase.SaveProductInput, bool) {
	var req SaveProductRequest
	if err := c.Bind(&req); err != nil {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
		return usecase.SaveProductInput{}, false
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid price"})
		return usecase.SaveProductInput{}, false
	}

	return usecase.SaveProductInput{
		Name:          req.Name,
		Price:         price,
		StockQuantity: req.StockQuantity,
	}, true
}
