package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/service/account"
	"github.com/gin-gonic/gin"
)

const userKey = "storefront/user"

// authMiddleware resolves the bearer token before any validation or store
// access happens; unauthenticated calls never reach a handler.
func authMiddleware(svc accountService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		u, err := svc.LookupByToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, account.ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				return
			}
			logger.Printf("auth: lookup token error=%v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.Set(userKey, u)
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
