package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

//contextに入っているis_adminを確認します。

func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Get(CtxIsAdminKey)
			isAdmin, ok := raw.(bool)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//一般ユーザーは拒否、管理者だけ許可
			if !isAdmin {
				return c.JSON(http.StatusForbidden, errorJSON("admin only"))
			}

			return next(c)
		}
	}
}
