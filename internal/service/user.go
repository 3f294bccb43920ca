package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ordy-97/GestionProjet/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Search returns users matching keyword by username or email, excluding the
// requesting user. Used by the member picker.
func (s *UserService) Search(ctx context.Context, keyword string, excludeID uint, limit int) ([]model.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	query := s.db.WithContext(ctx).Model(&model.User{}).Where("id != ?", excludeID)
	if keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("username LIKE ? OR email LIKE ?", pattern, pattern)
	}

	var users []model.User
	if err := query.Order("username asc").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

type ProfileUpdate struct {
	Email           string
	Avatar          *string
	CurrentPassword string
	NewPassword     string
}

// UpdateProfile changes the mutable profile fields: email, avatar, password.
// Username is fixed at registration.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, upd ProfileUpdate) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if upd.Email != "" {
		email := strings.ToLower(strings.TrimSpace(upd.Email))
		if email != user.Email {
			var count int64
			s.db.WithContext(ctx).Model(&model.User{}).Where("email = ? AND id != ?", email, userID).Count(&count)
			if count > 0 {
				return nil, fmt.Errorf("40006:email already registered")
			}
			updates["email"] = email
		}
	}

	if upd.Avatar != nil {
		updates["avatar"] = *upd.Avatar
	}

	if upd.NewPassword != "" {
		if upd.CurrentPassword == "" {
			return nil, fmt.Errorf("40001:current password is required to change password")
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(upd.CurrentPassword)) != nil {
			return nil, fmt.Errorf("40103:current password is incorrect")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(upd.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		updates["password_hash"] = string(hash)
	}

	if len(updates) == 0 {
		return &user, nil
	}

	if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("40401:user not found")
		}
		return nil, err
	}
	return &user, nil
}
