package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/HimanshuNaik19/Blog-Platform/auth"
	"github.com/HimanshuNaik19/Blog-Platform/middleware"
	"github.com/HimanshuNaik19/Blog-Platform/models"
	"github.com/HimanshuNaik19/Blog-Platform/utils"
)

// AuthController exposes the identity provider over HTTP: registration,
// login, token verification, logout, and admin role management.
type AuthController struct {
	svc *auth.Service
}

// NewAuthController creates an AuthController.
func NewAuthController(svc *auth.Service) *AuthController {
	return &AuthController{svc: svc}
}

// Register creates an account and returns a session token with the user.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,min=3,max=64"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	token, user, err := a.svc.Register(ctx.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsernameTaken):
			utils.Error(ctx, http.StatusConflict, 40901, "username already exists")
		case errors.Is(err, auth.ErrEmailTaken):
			utils.Error(ctx, http.StatusConflict, 40902, "email already registered")
		default:
			utils.Sugar.Errorf("register failed: %v", err)
			utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to register")
		}
		return
	}

	utils.Success(ctx, gin.H{"token": token, "user": user})
}

// Login exchanges email and password for a session token.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid request payload")
		return
	}

	token, user, err := a.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			utils.Error(ctx, http.StatusUnauthorized, 40110, "invalid email or password")
			return
		}
		utils.Sugar.Errorf("login failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to login")
		return
	}

	utils.Success(ctx, gin.H{"token": token, "user": user})
}

// Verify returns the user record behind the presented bearer token.
func (a *AuthController) Verify(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"user": middleware.CurrentUser(ctx)})
}

// Logout revokes the presented token.
func (a *AuthController) Logout(ctx *gin.Context) {
	if token := ctx.GetString(middleware.ContextTokenKey); token != "" {
		a.svc.Logout(token)
	}
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// UpdateRole changes a user's role. Admin only.
func (a *AuthController) UpdateRole(ctx *gin.Context) {
	viewer := middleware.CurrentUser(ctx)
	if viewer == nil || viewer.Role != models.RoleAdmin {
		utils.Error(ctx, http.StatusForbidden, 40301, "admin access required")
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid request payload")
		return
	}
	if !models.ValidRole(req.Role) {
		utils.Error(ctx, http.StatusBadRequest, 40004, "unknown role")
		return
	}

	userID := strings.TrimSpace(ctx.Param("id"))
	user, err := a.svc.SetRole(ctx.Request.Context(), userID, req.Role)
	if err != nil {
		utils.Sugar.Errorf("role update failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to update role")
		return
	}
	if user == nil {
		utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		return
	}

	utils.Success(ctx, gin.H{"user": user})
}
