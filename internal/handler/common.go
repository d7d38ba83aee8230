package handler

import (
	"errors"
	"net/http"

	"github.com/achrafbchir/ecommerce-shopping-cart/internal/middleware"
	"github.com/achrafbchir/ecommerce-shopping-cart/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
	// 在庫不足のときだけ入る
	Shortages []usecase.StockShortage `json:"shortages,omitempty"`
}

// usecaseの失敗をHTTPに変換する。想定内の失敗は4xx、それ以外は500。
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	var emptyCart *usecase.EmptyCartError
	if errors.As(err, &emptyCart) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: emptyCart.Error()})
	}

	var insufficient *usecase.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     insufficient.Error(),
			Shortages: insufficient.Shortages,
		})
	}

	var exceeds *usecase.ExceedsStockError
	if errors.As(err, &exceeds) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: exceeds.Error()})
	}

	var forbidden *usecase.ForbiddenError
	if errors.As(err, &forbidden) {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: forbidden.Error()})
	}

	var notFound *usecase.NotFoundError
	if errors.As(err, &notFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: notFound.Error()})
	}

	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// AuthJWTが入れたuser_idを取り出す
func getUserIDFromContext(c echo.Context) (int64, bool) {
	raw := c.Get(middleware.CtxUserIDKey)
	userID, ok := raw.(int64)
	if !ok || userID <= 0 {
		return 0, false
	}
	return userID, true
}
