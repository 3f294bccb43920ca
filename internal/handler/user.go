package handler

import (
	"github.com/Ordy-97/GestionProjet/internal/middleware"
	"github.com/Ordy-97/GestionProjet/internal/service"
	"github.com/Ordy-97/GestionProjet/pkg/filestore"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
	files       filestore.FileStore
	maxUpload   int64
}

func NewUserHandler(userService *service.UserService, files filestore.FileStore, maxUploadMB int64) *UserHandler {
	return &UserHandler{
		userService: userService,
		files:       files,
		maxUpload:   maxUploadMB << 20,
	}
}

// GET /users/search
func (h *UserHandler) Search(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	keyword := c.Query("keyword")

	users, err := h.userService.Search(c.Request.Context(), keyword, userID, 100)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	list := make([]gin.H, 0, len(users))
	for _, u := range users {
		list = append(list, gin.H{
			"id":       u.ID,
			"username": u.Username,
			"email":    u.Email,
			"avatar":   u.Avatar,
		})
	}
	Success(c, list)
}

// PUT /users/me (multipart: optional email, passwords, avatar)
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req struct {
		Email           string `form:"email" binding:"omitempty,email"`
		CurrentPassword string `form:"current_password"`
		NewPassword     string `form:"new_password" binding:"omitempty,min=8"`
	}
	if err := c.ShouldBind(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	upd := service.ProfileUpdate{
		Email:           req.Email,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}

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
		key := ref.Key
		upd.Avatar = &key
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, upd)
	if err != nil {
		if upd.Avatar != nil {
			// The profile kept its old avatar: delete the new upload again.
			discardFile(c.Request.Context(), h.files, *upd.Avatar)
		}
		ServiceError(c, err)
		return
	}

	data := gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"avatar":   user.Avatar,
	}
	if user.Avatar != "" {
		data["avatar_url"] = h.files.URLOf(user.Avatar)
	}
	Success(c, data)
}
