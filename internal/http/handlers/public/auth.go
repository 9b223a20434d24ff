package public

import (
	"net/http"
	"time"

	"github.com/silkloom/storefront/internal/constants"
	handlershared "github.com/silkloom/storefront/internal/http/handlers/shared"
	"github.com/silkloom/storefront/internal/http/response"
	"github.com/silkloom/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"max=120"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username       string                       `json:"username" binding:"required"`
	Password       string                       `json:"password" binding:"required"`
	CaptchaPayload service.CaptchaVerifyPayload `json:"captcha_payload"`
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := h.AuthService.Register(service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Email:    req.Email,
	})
	if err != nil {
		respondWithMappedError(c, err, handlershared.AuthErrorRules, "error.register_failed")
		return
	}
	response.Created(c, user)
}

// Login 用户登录，Token 同时写入 HttpOnly Cookie 与响应体
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	input := service.LoginInput{
		Username:  req.Username,
		Password:  req.Password,
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: c.GetString(constants.ContextKeyRequestID),
	}

	if err := h.CaptchaService.Verify(constants.CaptchaSceneLogin, req.CaptchaPayload); err != nil {
		h.AuthService.RecordLoginFailure(input, constants.LoginLogFailReasonCaptchaInvalid)
		respondWithMappedError(c, err, loginErrorRules, "error.captcha_verify_failed")
		return
	}

	user, token, expiresAt, err := h.AuthService.Login(input)
	if err != nil {
		respondWithMappedError(c, err, loginErrorRules, "error.login_failed")
		return
	}

	h.setSessionCookie(c, token, int(time.Until(expiresAt).Seconds()))
	response.Success(c, gin.H{
		"user":       user,
		"token":      token,
		"expires_at": expiresAt,
	})
}

// Logout 退出登录，使该用户所有会话失效并清除 Cookie
func (h *Handler) Logout(c *gin.Context) {
	if userID := optionalUserID(c); userID != nil {
		if err := h.AuthService.Logout(c.Request.Context(), *userID); err != nil {
			respondWithMappedError(c, err, handlershared.AuthErrorRules, "error.internal")
			return
		}
	}
	h.setSessionCookie(c, "", -1)
	response.NoContent(c)
}

// GetCurrentUser 获取当前登录用户
func (h *Handler) GetCurrentUser(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.AuthService.GetUser(uid)
	if err != nil {
		respondWithMappedError(c, err, handlershared.AuthErrorRules, "error.user_fetch_failed")
		return
	}
	response.Success(c, user)
}

func (h *Handler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	session := h.Config.Session
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, maxAge, "/", session.CookieDomain, session.CookieSecure, true)
}
