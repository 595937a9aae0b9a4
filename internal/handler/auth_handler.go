package handler

import (
	"invite-auth/internal/service"
	"invite-auth/shared/models"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.Engine) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/validate-invite-code", h.validateInviteCode)
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
		authGroup.POST("/logout", h.logout)
		authGroup.GET("/user-info", h.AuthMiddleware(), h.userInfo)
		authGroup.POST("/invite-codes", h.AuthMiddleware(), RequireRole(models.RoleAdmin), h.createInviteCode)
	}

	router.NoRoute(noRoute)
}
