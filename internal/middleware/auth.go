package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/tphappenings/campus-events/internal/models"
)

// ClaimsKey is the echo context key the authenticated claims live under.
const ClaimsKey = "claims"

// Claims is the session token payload issued at login.
type Claims struct {
	UserID   uint            `json:"uid"`
	Email    string          `json:"email"`
	UserType models.UserType `json:"userType"`
	jwt.RegisteredClaims
}

// RequireAuth validates the Bearer token and stores the claims on the
// request context. Missing, malformed or expired tokens get 401.
func RequireAuth(secret string) echo.MiddlewareFunc {
	key := []byte(secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed authorization header")
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(
				strings.TrimPrefix(header, "Bearer "),
				claims,
				func(t *jwt.Token) (any, error) { return key, nil },
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			)
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

// RequireOrganiser guards organiser-only routes; must run after RequireAuth.
func RequireOrganiser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := ClaimsFrom(c)
		if claims == nil || claims.UserType != models.UserTypeOrganiser {
			return echo.NewHTTPError(http.StatusForbidden, "organiser access required")
		}
		return next(c)
	}
}

// ClaimsFrom returns the authenticated claims, or nil on public routes.
func ClaimsFrom(c echo.Context) *Claims {
	claims, _ := c.Get(ClaimsKey).(*Claims)
	return claims
}
