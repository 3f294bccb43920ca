package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Ordy-97/GestionProjet/internal/model"
	jwtpkg "github.com/Ordy-97/GestionProjet/pkg/jwt"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	denylistKeyPrefix = "auth:denylist:"
	resetKeyPrefix    = "auth:reset:"
)

type AuthService struct {
	db        *gorm.DB
	rdb       *redis.Client
	jwtSecret string
	jwtExpire int
	resetTTL  time.Duration
}

func NewAuthService(db *gorm.DB, rdb *redis.Client, jwtSecret string, jwtExpire int, resetTTL time.Duration) *AuthService {
	return &AuthService{
		db:        db,
		rdb:       rdb,
		jwtSecret: jwtSecret,
		jwtExpire: jwtExpire,
		resetTTL:  resetTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, password, avatar string) (*model.User, string, time.Time, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	s.db.WithContext(ctx).Model(&model.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return nil, "", time.Time{}, fmt.Errorf("40005:username already taken")
	}
	s.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil, "", time.Time{}, fmt.Errorf("40006:email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Avatar:       avatar,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, "", time.Time{}, fmt.Errorf("create user: %w", err)
	}

	token, expireAt, err := jwtpkg.GenerateToken(s.jwtSecret, user.ID, user.Username, s.jwtExpire)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expireAt, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, string, time.Time, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", time.Time{}, fmt.Errorf("40101:invalid username or password")
		}
		return nil, "", time.Time{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", time.Time{}, fmt.Errorf("40101:invalid username or password")
	}

	now := time.Now()
	s.db.WithContext(ctx).Model(&user).Update("last_login_at", &now)

	token, expireAt, err := jwtpkg.GenerateToken(s.jwtSecret, user.ID, user.Username, s.jwtExpire)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return &user, token, expireAt, nil
}

// Logout denylists the token's unique ID until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, denylistKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("50001:logout failed")
	}
	return nil
}

// RequestPasswordReset issues a single-use reset token for the account behind
// email. An unknown email yields an empty token and no error, so callers
// cannot probe which addresses are registered.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	token := uuid.NewString()
	key := resetKeyPrefix + token
	if err := s.rdb.Set(ctx, key, strconv.FormatUint(uint64(user.ID), 10), s.resetTTL).Err(); err != nil {
		return "", fmt.Errorf("50001:could not issue reset token")
	}
	return token, nil
}

func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	val, err := s.rdb.GetDel(ctx, resetKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("40102:invalid or expired reset token")
		}
		return fmt.Errorf("50001:could not verify reset token")
	}

	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return fmt.Errorf("40102:invalid or expired reset token")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	result := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", uint(userID)).
		Update("password_hash", string(hash))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("40401:user not found")
	}
	return nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
