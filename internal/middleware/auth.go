package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/Ordy-97/GestionProjet/internal/model"
	"github.com/Ordy-97/GestionProjet/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// AuthMiddleware validates the bearer token, rejects tokens denylisted by
// logout, and loads the current user into the request context.
func AuthMiddleware(jwtSecret string, db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenStr = strings.TrimPrefix(authHeader, "Bearer ")
			if tokenStr == authHeader {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 40104, "message": "malformed authorization header", "data": nil})
				return
			}
		}

		// Fallback for SSE/EventSource, which cannot set custom headers.
		if tokenStr == "" {
			tokenStr = c.Query("token")
		}

		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 40105, "message": "missing token", "data": nil})
			return
		}

		claims, err := jwt.ParseToken(jwtSecret, tokenStr)
		if err != nil {
			if strings.Contains(err.Error(), "expired") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 40106, "message": "token expired, please sign in again", "data": nil})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 40107, "message": "invalid token", "data": nil})
			}
			return
		}

		if rdb != nil && claims.ID != "" {
			if exists, _ := rdb.Exists(c.Request.Context(), "auth:denylist:"+claims.ID).Result(); exists > 0 {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 40108, "message": "token revoked", "data": nil})
				return
			}
		}

		var user model.User
		if err := db.WithContext(c.Request.Context()).First(&user, claims.UserID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": 40107, "message": "invalid token", "data": nil})
			return
		}

		var expiresAt time.Time
		if claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}

		c.Set("userID", user.ID)
		c.Set("user", &user)
		c.Set("tokenID", claims.ID)
		c.Set("tokenExpiresAt", expiresAt)
		c.Next()
	}
}

func GetCurrentUser(c *gin.Context) *model.User {
	u, exists := c.Get("user")
	if !exists {
		return nil
	}
	return u.(*model.User)
}

func GetCurrentUserID(c *gin.Context) uint {
	id, _ := c.Get("userID")
	return id.(uint)
}

func GetTokenID(c *gin.Context) string {
	v, _ := c.Get("tokenID")
	s, _ := v.(string)
	return s
}
