package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/HimanshuNaik19/Blog-Platform/auth"
	"github.com/HimanshuNaik19/Blog-Platform/models"
	"github.com/HimanshuNaik19/Blog-Platform/utils"
)

const (
	// ContextUserKey stores the authenticated *models.User in Gin context.
	ContextUserKey = "current_user"
	// ContextTokenKey stores the raw bearer token, needed for logout.
	ContextTokenKey = "bearer_token"
)

// AuthRequired ensures the request carries a valid bearer token and resolves
// it to a live user record through the identity provider.
func AuthRequired(svc *auth.Service) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authorization header missing")
			ctx.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Error(ctx, http.StatusUnauthorized, 40102, "invalid authorization header format")
			ctx.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40103, "empty bearer token")
			ctx.Abort()
			return
		}

		user, err := svc.Verify(ctx.Request.Context(), tokenString)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40104, "invalid token")
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserKey, user)
		ctx.Set(ContextTokenKey, tokenString)
		ctx.Next()
	}
}

// CurrentUser returns the authenticated user set by AuthRequired, or nil on
// routes where authentication is optional.
func CurrentUser(ctx *gin.Context) *models.User {
	value, exists := ctx.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}
