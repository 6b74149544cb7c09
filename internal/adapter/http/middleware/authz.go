package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Dineep4/QuickBite/configs"
)

// StaffAuth guards the staff-only surface (menu mutations, the order
// overview, status updates). It only verifies the bearer token carries
// the staff role; issuing tokens is the login handler's job.
type StaffAuth struct {
	cfg configs.Config
}

func NewStaffAuth(cfg configs.Config) *StaffAuth {
	return &StaffAuth{cfg: cfg}
}

func (a *StaffAuth) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			unauth(c, "missing bearer token")
			return
		}

		raw := strings.TrimPrefix(auth, "Bearer ")
		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(a.cfg.Staff.JWTSecret), nil
		}, jwt.WithLeeway(30*time.Second))
		if err != nil || !token.Valid {
			unauth(c, "invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["role"] != "staff" {
			forbidden(c, "staff role required")
			return
		}

		c.Next()
	}
}

func unauth(c *gin.Context, desc string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": desc})
}

func forbidden(c *gin.Context, desc string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": desc})
}
