package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/domainmart/domainmart/internal/pkg/auth"
)

const operatorTokenHeader = "X-Operator-Token"

// OperatorRequired ensures the request carries a valid operator token before
// accessing handler.
func OperatorRequired(operator *pkgAuth.OperatorAuth) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := operator.Check(extractToken(c)); err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return c.GetHeader(operatorTokenHeader)
}
