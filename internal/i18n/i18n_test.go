package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{
		"":        LocaleEN,
		"zh":      LocaleZH,
		"zh-TW":   LocaleZH,
		"en-GB":   LocaleEN,
		"fr-FR":   LocaleEN,
		" ZH-cn ": LocaleZH,
	}
	for input, want := range cases {
		if got := NormalizeLocale(input); got != want {
			t.Fatalf("NormalizeLocale(%q) want %s got %s", input, want, got)
		}
	}
}

func TestResolveLocaleFromHeaderAndQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/products", nil)
	c.Request.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")
	if got := ResolveLocale(c); got != LocaleZH {
		t.Fatalf("header locale want %s got %s", LocaleZH, got)
	}

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/products?lang=en", nil)
	c.Request.Header.Set("Accept-Language", "zh-CN")
	if got := ResolveLocale(c); got != LocaleEN {
		t.Fatalf("query locale want %s got %s", LocaleEN, got)
	}
}

func TestTranslateFallback(t *testing.T) {
	if got := T(LocaleZH, "error.cart_empty"); got != "购物车为空" {
		t.Fatalf("zh message mismatch: %s", got)
	}
	if got := T(LocaleZH, "error.unknown_key"); got != "error.unknown_key" {
		t.Fatalf("missing key should fall back to key, got %s", got)
	}
	if got := Sprintf(LocaleEN, "error.rate_limited", 30); got != "Too many requests, please retry in 30 seconds" {
		t.Fatalf("sprintf mismatch: %s", got)
	}
}

func TestEveryLocaleHasSameKeys(t *testing.T) {
	base := messages[DefaultLocale]
	for _, locale := range SupportedLocales {
		table := messages[locale]
		for key := range base {
			if _, ok := table[key]; !ok {
				t.Fatalf("locale %s missing key %s", locale, key)
			}
		}
		if len(table) != len(base) {
			t.Fatalf("locale %s has %d keys, want %d", locale, len(table), len(base))
		}
	}
}
