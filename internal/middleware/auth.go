package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"eng_assess_backend/internal/model"
	"eng_assess_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// IdentityResolver 确认令牌中的用户仍然存在
type IdentityResolver interface {
	ResolveUser(ctx context.Context, id uint) (*model.User, error)
}

// AuthMiddleware 只接受 Authorization: Bearer <token>
func AuthMiddleware(secret string, resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := ""
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		}

		if tokenString == "" {
			util.AbortWithError(c, http.StatusUnauthorized, "No token provided")
			return
		}

		claims, err := util.ParseJWT(tokenString, secret)
		if err != nil {
			if errors.Is(err, util.ErrTokenExpired) {
				util.AbortWithError(c, http.StatusUnauthorized, "Token expired")
				return
			}
			util.AbortWithError(c, http.StatusUnauthorized, "Not authorized")
			return
		}

		user, err := resolver.ResolveUser(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, util.ErrUserNotFound) {
				util.AbortWithError(c, http.StatusUnauthorized, "User not found")
				return
			}
			util.LogInternalError(c, "Failed to resolve user", err)
			c.Abort()
			return
		}

		// 以数据库中的角色为准
		claims.Role = user.Role
		claims.Name = user.Name
		c.Set(util.UserContextKey, claims)
		c.Next()
	}
}

// RequireRole 按路由应用 util.Authorize
func RequireRole(role model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := util.GetUserFromContext(c)
		if identity == nil {
			util.AbortWithError(c, http.StatusUnauthorized, "Not authorized")
			return
		}

		if !util.Authorize(identity, role) {
			util.AbortWithError(c, http.StatusForbidden, "Not authorized as "+string(role))
			return
		}
		c.Next()
	}
}
