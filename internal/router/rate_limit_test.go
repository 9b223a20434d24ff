package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/silkloom/storefront/internal/config"
	"github.com/silkloom/storefront/internal/constants"

	"github.com/gin-gonic/gin"
)

func TestKeyByIPAndJSONField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":" Meera "}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "1.2.3.4:5678"

	key := KeyByIPAndJSONField("username")(c)
	if key != "meera|1.2.3.4" {
		t.Fatalf("key want meera|1.2.3.4 got %s", key)
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body after key extraction failed: %v", err)
	}
	if !strings.Contains(string(body), " Meera ") {
		t.Fatalf("request body should be restored after reading field")
	}
}

func TestKeyByUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/reviews/1/helpful", nil)
	c.Request.RemoteAddr = "5.6.7.8:1000"
	if got := KeyByUserID(c); got != "5.6.7.8" {
		t.Fatalf("anonymous key want ip got %s", got)
	}
	c.Set(constants.ContextKeyUserID, uint(42))
	if got := KeyByUserID(c); got != "user:42" {
		t.Fatalf("user key want user:42 got %s", got)
	}
}

func TestNewRateLimitRulePrefix(t *testing.T) {
	rule := NewRateLimitRule("", "login", config.RateLimitConfig{WindowSeconds: 300, MaxRequests: 10}, "error.login_too_many")
	if rule.Prefix != "sf:rate:login" {
		t.Fatalf("prefix want sf:rate:login got %s", rule.Prefix)
	}
	rule = NewRateLimitRule("shop", "custom_order", config.RateLimitConfig{}, "")
	if rule.Prefix != "shop:rate:custom_order" {
		t.Fatalf("prefix want shop:rate:custom_order got %s", rule.Prefix)
	}
	if rule.MessageKey != "error.rate_limited" || rule.active() {
		t.Fatalf("empty config should be inactive with default message, got %+v", rule)
	}
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d status want 200 got %d", i, w.Code)
		}
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	cases := []struct {
		ttlMillis int64
		window    int
		want      int
	}{
		{ttlMillis: 1500, window: 60, want: 2},
		{ttlMillis: 1000, window: 60, want: 1},
		{ttlMillis: 1, window: 60, want: 1},
		{ttlMillis: -1, window: 60, want: 60},
		{ttlMillis: -2, window: 0, want: 1},
	}
	for _, tc := range cases {
		if got := retryAfterSeconds(tc.ttlMillis, tc.window); got != tc.want {
			t.Fatalf("retryAfterSeconds(%d, %d) want %d got %d", tc.ttlMillis, tc.window, tc.want, got)
		}
	}
}

func TestKeyByIPAndJSONFieldIgnoresNonString(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":42}`))
	c.Request.RemoteAddr = "1.2.3.4:5678"
	if key := KeyByIPAndJSONField("username")(c); key != "1.2.3.4" {
		t.Fatalf("non-string field should fall back to ip, got %s", key)
	}
}
