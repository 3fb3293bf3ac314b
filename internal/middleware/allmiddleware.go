package middleware

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/IDobkov90/ufc/config"
	"github.com/IDobkov90/ufc/internal/model"
	"github.com/IDobkov90/ufc/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"

	"net/http"
	"strings"
)

type Claims struct {
	ID       uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		tokenString := authHeader
		if !strings.HasPrefix(tokenString, "Bearer ") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed token"})
			c.Abort()
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")
		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(config.Setting.JWT.Secret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token invalid"})
			c.Abort()
			return
		}
		if claims, ok := token.Claims.(*Claims); ok {
			c.Set("user_id", claims.ID)
			c.Set("username", claims.Username)
			c.Set("role", claims.Role)
		}
		c.Next()
	}
}

// RequireRole gates a route group on the caller's role claim. Admins pass
// every gate.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		role := model.Role(roleValue.(string))
		if role == model.RoleAdmin {
			c.Next()
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
		c.Abort()
	}
}

func RateLimit(rdb *redis.Client, requestLimit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.Next()
			return
		}
		key := fmt.Sprintf("rate_limit:user:%v", userID)
		ctx := context.Background()
		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, time.Minute)
		}
		if count > int64(requestLimit) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(requestLimit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(requestLimit)-int(count)))
		c.Next()
	}
}

func CheckStatus(userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown identity"})
			c.Abort()
			return
		}
		uid := userID.(uint)
		isBanned, err := userRepo.IsUserBanned(c.Request.Context(), nil, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not verify account status"})
			c.Abort()
			return
		}
		if isBanned {
			c.JSON(http.StatusForbidden, gin.H{"error": "account is banned"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[panic recovered]URI:%s|Error:%v\n", c.Request.URL.Path, err)
				c.JSON(http.StatusInternalServerError, gin.H{
					"code": 500,
					"msg":  "internal server error",
					"data": nil,
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
