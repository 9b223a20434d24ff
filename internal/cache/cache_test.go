package cache

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/silkloom/storefront/internal/config"
	"github.com/silkloom/storefront/internal/models"

	"github.com/alicebob/miniredis/v2"
)

func startTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	host, portText, err := net.SplitHostPort(mr.Addr())
	if err != nil {
		t.Fatalf("split miniredis addr failed: %v", err)
	}
	port, err := strconv.Atoi(portText)
	if err != nil {
		t.Fatalf("parse miniredis port failed: %v", err)
	}
	if err := InitRedis(&config.RedisConfig{Enabled: true, Host: host, Port: port}); err != nil {
		t.Fatalf("init redis failed: %v", err)
	}
	t.Cleanup(func() { _ = Close() })
	return mr
}

func TestDisabledCacheIsNoop(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init redis failed: %v", err)
	}
	ctx := context.Background()
	if Enabled() || Client() != nil {
		t.Fatalf("cache should be disabled")
	}
	if err := SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute); err != nil {
		t.Fatalf("set on disabled cache should be noop, got %v", err)
	}
	var dest map[string]int
	hit, err := GetJSON(ctx, "k", &dest)
	if err != nil || hit {
		t.Fatalf("get on disabled cache want miss got hit=%v err=%v", hit, err)
	}
	version, err := BumpCatalogVersion(ctx)
	if err != nil || version != 0 {
		t.Fatalf("bump on disabled cache want 0 got %d err=%v", version, err)
	}
	if _, hit, err := GetUserAuthState(ctx, 1); hit || err != nil {
		t.Fatalf("auth state on disabled cache want miss got hit=%v err=%v", hit, err)
	}
}

func TestCatalogKeyDependsOnVersionAndParams(t *testing.T) {
	type params struct {
		Search string `json:"search"`
	}
	a := CatalogKey(1, "products", params{Search: "silk"})
	b := CatalogKey(1, "products", params{Search: "silk"})
	c := CatalogKey(2, "products", params{Search: "silk"})
	d := CatalogKey(1, "products", params{Search: "cotton"})
	if a != b {
		t.Fatalf("same input should produce same key: %s vs %s", a, b)
	}
	if a == c || a == d {
		t.Fatalf("version and params must change the key: %s %s %s", a, c, d)
	}
	if got := CatalogKey(3, "categories", nil); got != "catalog:v3:categories:all" {
		t.Fatalf("nil params key mismatch: %s", got)
	}
}

func TestBuildUserAuthState(t *testing.T) {
	at := time.Unix(1700000000, 0)
	state := BuildUserAuthState(&models.User{ID: 9, Username: "asha", IsAdmin: true, TokenVersion: 3, TokenInvalidBefore: &at})
	if state.UserID != 9 || !state.IsAdmin || state.TokenVersion != 3 || state.TokenInvalidBefore != 1700000000 {
		t.Fatalf("unexpected auth state: %+v", state)
	}
	if BuildUserAuthState(nil) != nil {
		t.Fatalf("nil user should produce nil state")
	}
	if got := BuildKey(sessionStateKey(9)); got != "sf:session:user:9" {
		t.Fatalf("prefix mismatch: %s", got)
	}
}

func TestUserAuthStateFieldsRoundTrip(t *testing.T) {
	invalidBefore := time.Unix(1700000000, 0)
	state := BuildUserAuthState(&models.User{
		ID:                 9,
		Username:           "meera",
		IsAdmin:            true,
		TokenVersion:       4,
		TokenInvalidBefore: &invalidBefore,
	})
	values := make(map[string]string)
	for k, v := range state.fields() {
		values[k] = v.(string)
	}
	parsed, err := parseUserAuthState(9, values)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if *parsed != *state {
		t.Fatalf("round trip mismatch: want %+v got %+v", state, parsed)
	}
	if _, err := parseUserAuthState(9, map[string]string{"token_version": "x"}); err == nil {
		t.Fatalf("corrupt state should fail to parse")
	}
}

func TestCatalogCacheHitUnderCurrentVersion(t *testing.T) {
	startTestRedis(t)
	ctx := context.Background()
	params := map[string]string{"search": "silk"}

	var got []string
	version, hit, err := GetCatalogJSON(ctx, "products", params, &got)
	if err != nil || hit {
		t.Fatalf("first read want miss got hit=%v err=%v", hit, err)
	}
	if version != 0 {
		t.Fatalf("initial version want 0 got %d", version)
	}
	if err := SetCatalogJSONAt(ctx, version, "products", params, []string{"banarasi"}, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	version, hit, err = GetCatalogJSON(ctx, "products", params, &got)
	if err != nil || !hit || version != 0 {
		t.Fatalf("second read want hit at v0 got hit=%v version=%d err=%v", hit, version, err)
	}
	if len(got) != 1 || got[0] != "banarasi" {
		t.Fatalf("cached value mismatch: %v", got)
	}
}

func TestCatalogWriteDuringQueryLandsUnderOldVersion(t *testing.T) {
	startTestRedis(t)
	ctx := context.Background()
	params := map[string]string{"search": "silk"}

	var got []string
	readVersion, hit, err := GetCatalogJSON(ctx, "products", params, &got)
	if err != nil || hit {
		t.Fatalf("first read want miss got hit=%v err=%v", hit, err)
	}
	// 查询进行中发生一次写操作
	bumped, err := BumpCatalogVersion(ctx)
	if err != nil {
		t.Fatalf("bump failed: %v", err)
	}
	if bumped != readVersion+1 {
		t.Fatalf("bumped version want %d got %d", readVersion+1, bumped)
	}
	if err := SetCatalogJSONAt(ctx, readVersion, "products", params, []string{"stale"}, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got = nil
	version, hit, err := GetCatalogJSON(ctx, "products", params, &got)
	if err != nil {
		t.Fatalf("read after bump failed: %v", err)
	}
	if version != bumped {
		t.Fatalf("read version want %d got %d", bumped, version)
	}
	if hit {
		t.Fatalf("stale result must not be served under the new version, got %v", got)
	}
}

func TestUserAuthStateStoredInRedis(t *testing.T) {
	startTestRedis(t)
	ctx := context.Background()
	state := BuildUserAuthState(&models.User{ID: 7, Username: "meera", TokenVersion: 2})
	if err := SetUserAuthState(ctx, state); err != nil {
		t.Fatalf("set auth state failed: %v", err)
	}
	loaded, hit, err := GetUserAuthState(ctx, 7)
	if err != nil || !hit {
		t.Fatalf("get auth state want hit got hit=%v err=%v", hit, err)
	}
	if *loaded != *state {
		t.Fatalf("auth state mismatch: want %+v got %+v", state, loaded)
	}
	if err := DelUserAuthState(ctx, 7); err != nil {
		t.Fatalf("del auth state failed: %v", err)
	}
	if _, hit, _ := GetUserAuthState(ctx, 7); hit {
		t.Fatalf("auth state should be gone after delete")
	}
}
