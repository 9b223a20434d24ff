package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/silkloom/storefront/internal/cache"
	"github.com/silkloom/storefront/internal/config"
	"github.com/silkloom/storefront/internal/constants"
	"github.com/silkloom/storefront/internal/logger"
	"github.com/silkloom/storefront/internal/models"
	"github.com/silkloom/storefront/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultSessionExpireHours = 168

// AuthService 用户注册、登录与会话校验
type AuthService struct {
	cfg         *config.Config
	userRepo    repository.UserRepository
	loginLogSvc *UserLoginLogService
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository, loginLogSvc *UserLoginLogService) *AuthService {
	return &AuthService{
		cfg:         cfg,
		userRepo:    userRepo,
		loginLogSvc: loginLogSvc,
	}
}

// SessionClaims 会话 JWT 声明
type SessionClaims struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	IsAdmin      bool   `json:"is_admin"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// SessionUser 已校验的会话用户
type SessionUser struct {
	UserID   uint
	Username string
	IsAdmin  bool
}

// RegisterInput 注册输入
type RegisterInput struct {
	Username string
	Password string
	Name     string
	Email    string
}

// LoginInput 登录输入
type LoginInput struct {
	Username  string
	Password  string
	ClientIP  string
	UserAgent string
	RequestID string
}

// HashPassword 使用 bcrypt 加密密码
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// Register 用户注册
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	username := normalizeUsername(input.Username)
	if !usernamePattern.MatchString(username) {
		return nil, ErrUsernameInvalid
	}
	if err := ValidatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}
	email := ""
	if strings.TrimSpace(input.Email) != "" {
		normalized, err := normalizeEmail(input.Email)
		if err != nil {
			return nil, err
		}
		email = normalized
	}

	exist, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrUsernameExists
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 用户登录，返回用户、Token 与过期时间
func (s *AuthService) Login(input LoginInput) (*models.User, string, time.Time, error) {
	username := normalizeUsername(input.Username)
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		s.recordLogin(input, 0, constants.LoginLogStatusFailed, constants.LoginLogFailReasonInternalError)
		return nil, "", time.Time{}, err
	}
	if user == nil || VerifyPassword(user.PasswordHash, input.Password) != nil {
		var userID uint
		if user != nil {
			userID = user.ID
		}
		s.recordLogin(input, userID, constants.LoginLogStatusFailed, constants.LoginLogFailReasonInvalidCredentials)
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		s.recordLogin(input, user.ID, constants.LoginLogStatusFailed, constants.LoginLogFailReasonInternalError)
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		return nil, "", time.Time{}, err
	}
	user.LastLoginAt = &now
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	s.recordLogin(input, user.ID, constants.LoginLogStatusSuccess, "")

	return user, token, expiresAt, nil
}

// RecordLoginFailure 记录登录前置校验（如验证码）失败
func (s *AuthService) RecordLoginFailure(input LoginInput, reason string) {
	s.recordLogin(input, 0, constants.LoginLogStatusFailed, reason)
}

func (s *AuthService) recordLogin(input LoginInput, userID uint, status, reason string) {
	if s.loginLogSvc == nil {
		return
	}
	if status == constants.LoginLogStatusSuccess {
		reason = ""
	} else if reason == "" {
		reason = constants.LoginLogFailReasonInternalError
	}
	err := s.loginLogSvc.RecordAttempt(LoginAttempt{
		UserID:     userID,
		Username:   input.Username,
		FailReason: reason,
		ClientIP:   input.ClientIP,
		UserAgent:  input.UserAgent,
		RequestID:  input.RequestID,
	})
	if err != nil {
		logger.Warnw("user_login_log_record_failed", "username", input.Username, "error", err)
	}
}

// Logout 递增 token_version 使该用户所有已签发会话失效
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	if userID == 0 {
		return ErrUserNotFound
	}
	if err := s.userRepo.BumpTokenVersion(userID, time.Now()); err != nil {
		return err
	}
	if err := cache.DelUserAuthState(ctx, userID); err != nil {
		logger.Warnw("auth_state_cache_delete_failed", "user_id", userID, "error", err)
	}
	return nil
}

// GetUser 获取用户
func (s *AuthService) GetUser(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GenerateJWT 生成会话 Token
func (s *AuthService) GenerateJWT(user *models.User) (string, time.Time, error) {
	secret := s.secret()
	if secret == "" {
		return "", time.Time{}, ErrJWTSecretMissing
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(resolveSessionExpireHours(s.cfg.Session)) * time.Hour)
	claims := SessionClaims{
		UserID:       user.ID,
		Username:     user.Username,
		IsAdmin:      user.IsAdmin,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT 解析会话 Token
func (s *AuthService) ParseJWT(tokenString string) (*SessionClaims, error) {
	secret := s.secret()
	if secret == "" {
		return nil, ErrJWTSecretMissing
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &SessionClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// ValidateSession 校验 Token 并比对用户当前的 token_version，优先读取鉴权缓存
func (s *AuthService) ValidateSession(ctx context.Context, tokenString string) (*SessionUser, error) {
	claims, err := s.ParseJWT(tokenString)
	if err != nil {
		return nil, err
	}

	if cached, hit, cacheErr := cache.GetUserAuthState(ctx, claims.UserID); cacheErr == nil && hit && cached != nil {
		if claims.TokenVersion != cached.TokenVersion || !isIssuedAfterInvalidBeforeUnix(claims.IssuedAt, cached.TokenInvalidBefore) {
			return nil, ErrTokenRevoked
		}
		return &SessionUser{UserID: cached.UserID, Username: cached.Username, IsAdmin: cached.IsAdmin}, nil
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrTokenInvalid
	}
	if claims.TokenVersion != user.TokenVersion || !isIssuedAfterInvalidBefore(claims.IssuedAt, user.TokenInvalidBefore) {
		return nil, ErrTokenRevoked
	}
	_ = cache.SetUserAuthState(ctx, cache.BuildUserAuthState(user))
	return &SessionUser{UserID: user.ID, Username: user.Username, IsAdmin: user.IsAdmin}, nil
}

// IsSessionError 判断是否为会话类错误（映射为 401）
func IsSessionError(err error) bool {
	return errors.Is(err, ErrTokenInvalid) || errors.Is(err, ErrTokenRevoked) || errors.Is(err, ErrJWTSecretMissing)
}

func (s *AuthService) secret() string {
	if s == nil || s.cfg == nil {
		return ""
	}
	return strings.TrimSpace(s.cfg.Session.Secret)
}

func resolveSessionExpireHours(cfg config.SessionConfig) int {
	if cfg.ExpireHours <= 0 {
		return defaultSessionExpireHours
	}
	return cfg.ExpireHours
}

func isIssuedAfterInvalidBefore(issuedAt *jwt.NumericDate, invalidBefore *time.Time) bool {
	if invalidBefore == nil {
		return true
	}
	return isIssuedAfterInvalidBeforeUnix(issuedAt, invalidBefore.Unix())
}

func isIssuedAfterInvalidBeforeUnix(issuedAt *jwt.NumericDate, invalidBeforeUnix int64) bool {
	if invalidBeforeUnix <= 0 {
		return true
	}
	if issuedAt == nil {
		return false
	}
	return issuedAt.Time.Unix() >= invalidBeforeUnix
}
