package admin

import (
	"strings"
	"time"

	"github.com/silkloom/storefront/internal/constants"
	handlershared "github.com/silkloom/storefront/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	return handlershared.ParseIDParam(c, name)
}

func currentUserID(c *gin.Context) uint {
	if id := handlershared.OptionalUserID(c); id != nil {
		return *id
	}
	return 0
}

func currentUsername(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(constants.ContextKeyUsername))
}

func currentRequestID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(constants.ContextKeyRequestID))
}

func parseTimeNullable(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
