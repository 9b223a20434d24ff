package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const catalogVersionKey = "catalog:version"

// CatalogVersion 读取目录缓存版本号，未初始化时为 0
func CatalogVersion(ctx context.Context) (int64, error) {
	client := Client()
	if client == nil {
		return 0, nil
	}
	version, err := client.Get(ctx, BuildKey(catalogVersionKey)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return version, err
}

// BumpCatalogVersion 递增目录缓存版本号，旧版本的缓存自然过期
func BumpCatalogVersion(ctx context.Context) (int64, error) {
	client := Client()
	if client == nil {
		return 0, nil
	}
	return client.Incr(ctx, BuildKey(catalogVersionKey)).Result()
}

// CatalogKey 生成带版本号的目录缓存键，参数按 JSON 摘要区分
func CatalogKey(version int64, scope string, params interface{}) string {
	digest := "all"
	if params != nil {
		if raw, err := json.Marshal(params); err == nil {
			sum := sha1.Sum(raw)
			digest = hex.EncodeToString(sum[:8])
		}
	}
	return fmt.Sprintf("catalog:v%d:%s:%s", version, scope, digest)
}

// GetCatalogJSON 读取当前版本下的目录缓存，并返回本次读取的版本号
func GetCatalogJSON(ctx context.Context, scope string, params interface{}, dest interface{}) (int64, bool, error) {
	if !Enabled() {
		return 0, false, nil
	}
	version, err := CatalogVersion(ctx)
	if err != nil {
		return 0, false, err
	}
	hit, err := GetJSON(ctx, CatalogKey(version, scope, params), dest)
	return version, hit, err
}

// SetCatalogJSONAt 按查询前读到的版本回写，期间发生的写操作会让这份结果落在旧版本下
func SetCatalogJSONAt(ctx context.Context, version int64, scope string, params interface{}, value interface{}, ttl time.Duration) error {
	if !Enabled() {
		return nil
	}
	return SetJSON(ctx, CatalogKey(version, scope, params), value, ttl)
}
