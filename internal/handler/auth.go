package handler

import (
	"log"
	"time"

	"github.com/Ordy-97/GestionProjet/internal/middleware"
	"github.com/Ordy-97/GestionProjet/internal/service"
	"github.com/Ordy-97/GestionProjet/pkg/filestore"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
	files       filestore.FileStore
	maxUpload   int64
}

func NewAuthHandler(authService *service.AuthService, files filestore.FileStore, maxUploadMB int64) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		files:       files,
		maxUpload:   maxUploadMB << 20,
	}
}

// POST /auth/register (multipart: username, email, password, optional avatar)
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `form:"username" binding:"required,min=3,max=64"`
		Email    string `form:"email" binding:"required,email"`
		Password string `form:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBind(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	avatar := ""
	if file, err := c.FormFile("avatar"); err == nil {
		if file.Size > h.maxUpload {
			BadRequest(c, 40004, "avatar too large")
			return
		}
		src, err := file.Open()
		if err != nil {
			InternalError(c, "could not read avatar")
			return
		}
		defer src.Close()

		ref, err := h.files.SaveFile(c.Request.Context(), file.Filename, file.Header.Get("Content-Type"), src)
		if err != nil {
			InternalError(c, "avatar upload failed")
			return
		}
		avatar = ref.Key
	}

	user, token, expireAt, err := h.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password, avatar)
	if err != nil {
		// No user record took ownership of the avatar: delete it again.
		discardFile(c.Request.Context(), h.files, avatar)
		ServiceError(c, err)
		return
	}

	Success(c, gin.H{
		"user":       user.Brief(),
		"token":      token,
		"expires_at": expireAt,
	})
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	user, token, expireAt, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, gin.H{
		"user":       user.Brief(),
		"token":      token,
		"expires_at": expireAt,
	})
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenID := middleware.GetTokenID(c)
	expiresAt, _ := c.Get("tokenExpiresAt")
	exp, _ := expiresAt.(time.Time)

	if err := h.authService.Logout(c.Request.Context(), tokenID, exp); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"message": "signed out"})
}

// GET /auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		Unauthorized(c, 40105, "not authenticated")
		return
	}

	data := gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"email":         user.Email,
		"avatar":        user.Avatar,
		"last_login_at": user.LastLoginAt,
		"created_at":    user.CreatedAt,
	}
	if user.Avatar != "" {
		data["avatar_url"] = h.files.URLOf(user.Avatar)
	}
	Success(c, data)
}

// POST /auth/password-reset
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	token, err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		ServiceError(c, err)
		return
	}
	if token != "" {
		// Mail delivery is not wired up; the token lands in the server log
		// where an operator can forward it.
		log.Printf("password reset token issued for %s: %s", req.Email, token)
	}

	// Identical response whether or not the account exists.
	Success(c, gin.H{"message": "if the address is registered, a reset link has been sent"})
}

// POST /auth/password-reset/confirm
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	if err := h.authService.ConfirmPasswordReset(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{"message": "password updated"})
}
