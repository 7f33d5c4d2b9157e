package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const userIDKey = "user_id"

// OptionalAuth attaches the authenticated user id when a valid bearer
// token is present. Checkout works for guests, so a missing or invalid
// token leaves the request anonymous rather than rejecting it.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if jwtSecret == "" {
				return next(c)
			}

			auth := c.Request().Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok {
				return next(c)
			}

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				return next(c)
			}

			if sub, err := token.Claims.GetSubject(); err == nil && sub != "" {
				c.Set(userIDKey, sub)
			}

			return next(c)
		}
	}
}

// UserID returns the authenticated user id or "" for anonymous requests.
func UserID(c echo.Context) string {
	userID, _ := c.Get(userIDKey).(string)
	return userID
}
