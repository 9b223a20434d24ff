package public

import (
	"errors"

	handlershared "github.com/silkloom/storefront/internal/http/handlers/shared"
	"github.com/silkloom/storefront/internal/http/response"
	"github.com/silkloom/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// GetImageCaptcha 签发图片验证码，校验时提交 captcha_id 与识别出的字符
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if errors.Is(err, service.ErrCaptchaConfigInvalid) {
		handlershared.RequestLog(c).Warnw("captcha_config_invalid")
		respondError(c, response.CodeBadRequest, "error.captcha_generate_failed", nil)
		return
	}
	if err != nil {
		respondError(c, response.CodeInternal, "error.captcha_generate_failed", err)
		return
	}
	response.Success(c, challenge)
}
