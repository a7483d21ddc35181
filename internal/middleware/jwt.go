package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gpsbazar/school-records-api/internal/models"
	appErrors "github.com/gpsbazar/school-records-api/pkg/errors"
	"github.com/gpsbazar/school-records-api/pkg/response"
)

// ContextUserKey stores the validated admin claims in the gin context.
const ContextUserKey = "auth_claims"

type tokenValidator interface {
	ValidateToken(tokenString string) (*models.JWTClaims, error)
}

// Auth validates the Authorization bearer token on protected routes.
func Auth(auth tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing bearer token"))
			c.Abort()
			return
		}
		claims, err := auth.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Set(ContextUserKey, claims)
		c.Next()
	}
}
