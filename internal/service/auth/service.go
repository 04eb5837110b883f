package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ashwinyue/next-blog/internal/model"
	"github.com/ashwinyue/next-blog/internal/pkg/jwt"
	pkglogger "github.com/ashwinyue/next-blog/internal/pkg/logger"
	"github.com/ashwinyue/next-blog/internal/repository"
)

var (
	// ErrInvalidCredentials 邮箱或密码错误
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountDisabled 账号已禁用
	ErrAccountDisabled = errors.New("account is disabled")
	// ErrUserExists 用户名或邮箱已被占用
	ErrUserExists = errors.New("user already exists")
	// ErrUnauthorized 令牌无效或用户不存在
	ErrUnauthorized = errors.New("unauthorized")
)

// Service 认证服务
type Service struct {
	repo   *repository.Repositories
	jwt    *jwt.Manager
	logger *zap.Logger
}

// NewService 创建认证服务
func NewService(repo *repository.Repositories, manager *jwt.Manager, logger *zap.Logger) *Service {
	return &Service{repo: repo, jwt: manager, logger: pkglogger.OrNop(logger)}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	User      *model.UserInfo `json:"user"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Username string
	Email    string
	Password string
	Role     string
}

// Login 用户登录
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := s.repo.User.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// 检查用户是否激活
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID))
	return &LoginResponse{
		User:      user.ToUserInfo(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// CreateUser 创建后台用户
func (s *Service) CreateUser(ctx context.Context, req *CreateUserRequest) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)
	if email == "" || username == "" || len(req.Password) < 6 {
		return nil, errors.New("username, email and a password of at least 6 characters are required")
	}

	if _, err := s.repo.User.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if _, err := s.repo.User.GetUserByUsername(ctx, username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	// 哈希密码
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleEditor
	}
	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.User.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// ValidateToken 校验令牌并返回当前用户
func (s *Service) ValidateToken(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.repo.User.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrUnauthorized
	}
	return user, nil
}
