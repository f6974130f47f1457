package middleware

import (
	"crypto/subtle"

	"digital-storefront/internal/config"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuth gates admin routes with basic auth against a bcrypt password hash.
// Failures answer 401 with a WWW-Authenticate challenge.
func AdminAuth(cfg *config.Admin) echo.MiddlewareFunc {
	return echomw.BasicAuthWithConfig(echomw.BasicAuthConfig{
		Realm: "Admin",
		Validator: func(username, password string, c echo.Context) (bool, error) {
			if subtle.ConstantTimeCompare([]byte(username), []byte(cfg.Username)) != 1 {
				return false, nil
			}
			return bcrypt.CompareHashAndPassword([]byte(cfg.HashedPassword), []byte(password)) == nil, nil
		},
	})
}
