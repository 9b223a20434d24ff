package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/silkloom/storefront/internal/config"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "sf"

// store 当前生效的 Redis 连接与键前缀
type store struct {
	client *redis.Client
	prefix string
}

var current atomic.Pointer[store]

// InitRedis 按配置建立连接，未启用时清空当前连接
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		replaceStore(nil)
		return nil
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	client := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(host, strconv.Itoa(port)),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	replaceStore(&store{client: client, prefix: prefix})
	return nil
}

func replaceStore(next *store) {
	if prev := current.Swap(next); prev != nil && prev.client != nil {
		_ = prev.client.Close()
	}
}

// Ping 检查连通性，未启用时直接返回
func Ping(ctx context.Context) error {
	client := Client()
	if client == nil {
		return nil
	}
	return client.Ping(ctx).Err()
}

// Close 断开连接，之后所有缓存操作都是空操作
func Close() error {
	prev := current.Swap(nil)
	if prev == nil || prev.client == nil {
		return nil
	}
	return prev.client.Close()
}

// Enabled 是否有可用连接
func Enabled() bool {
	return Client() != nil
}

// Client 当前连接，未启用时为 nil
func Client() *redis.Client {
	if s := current.Load(); s != nil {
		return s.client
	}
	return nil
}

// GetJSON 读取并解码缓存，未命中返回 false
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	client := Client()
	if client == nil {
		return false, nil
	}
	raw, err := client.Get(ctx, BuildKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 编码后写入缓存
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	client := Client()
	if client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return client.Set(ctx, BuildKey(key), raw, ttl).Err()
}

// Del 删除缓存键
func Del(ctx context.Context, key string) error {
	client := Client()
	if client == nil {
		return nil
	}
	return client.Del(ctx, BuildKey(key)).Err()
}

// BuildKey 加上前缀，未初始化时使用默认前缀
func BuildKey(key string) string {
	prefix := defaultPrefix
	if s := current.Load(); s != nil {
		prefix = s.prefix
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return prefix
	}
	return prefix + ":" + key
}
