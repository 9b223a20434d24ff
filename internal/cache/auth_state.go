package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/silkloom/storefront/internal/models"

	"github.com/redis/go-redis/v9"
)

const sessionStateTTL = 10 * time.Minute

// UserAuthState 会话校验所需的用户快照，以 Redis Hash 保存
type UserAuthState struct {
	UserID             uint
	Username           string
	IsAdmin            bool
	TokenVersion       uint64
	TokenInvalidBefore int64 // Unix 秒，0 表示未设置
}

func sessionStateKey(userID uint) string {
	return "session:user:" + strconv.FormatUint(uint64(userID), 10)
}

// BuildUserAuthState 从用户模型构建会话快照
func BuildUserAuthState(user *models.User) *UserAuthState {
	if user == nil {
		return nil
	}
	state := &UserAuthState{
		UserID:       user.ID,
		Username:     user.Username,
		IsAdmin:      user.IsAdmin,
		TokenVersion: user.TokenVersion,
	}
	if user.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = user.TokenInvalidBefore.Unix()
	}
	return state
}

func (s *UserAuthState) fields() map[string]interface{} {
	return map[string]interface{}{
		"username":             s.Username,
		"is_admin":             strconv.FormatBool(s.IsAdmin),
		"token_version":        strconv.FormatUint(s.TokenVersion, 10),
		"token_invalid_before": strconv.FormatInt(s.TokenInvalidBefore, 10),
	}
}

func parseUserAuthState(userID uint, values map[string]string) (*UserAuthState, error) {
	version, err := strconv.ParseUint(values["token_version"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("session state token_version: %w", err)
	}
	invalidBefore, err := strconv.ParseInt(values["token_invalid_before"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("session state token_invalid_before: %w", err)
	}
	isAdmin, err := strconv.ParseBool(values["is_admin"])
	if err != nil {
		return nil, fmt.Errorf("session state is_admin: %w", err)
	}
	return &UserAuthState{
		UserID:             userID,
		Username:           values["username"],
		IsAdmin:            isAdmin,
		TokenVersion:       version,
		TokenInvalidBefore: invalidBefore,
	}, nil
}

// GetUserAuthState 读取会话快照，未命中时 hit 为 false
func GetUserAuthState(ctx context.Context, userID uint) (*UserAuthState, bool, error) {
	if userID == 0 || !Enabled() {
		return nil, false, nil
	}
	values, err := Client().HGetAll(ctx, BuildKey(sessionStateKey(userID))).Result()
	if err != nil {
		return nil, false, err
	}
	if len(values) == 0 {
		return nil, false, nil
	}
	state, err := parseUserAuthState(userID, values)
	if err != nil {
		return nil, false, err
	}
	return state, true, nil
}

// SetUserAuthState 写入会话快照并刷新过期时间
func SetUserAuthState(ctx context.Context, state *UserAuthState) error {
	if state == nil || state.UserID == 0 || !Enabled() {
		return nil
	}
	key := BuildKey(sessionStateKey(state.UserID))
	_, err := Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, state.fields())
		pipe.Expire(ctx, key, sessionStateTTL)
		return nil
	})
	return err
}

// DelUserAuthState 删除会话快照，登出或权限变更后调用
func DelUserAuthState(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return Del(ctx, sessionStateKey(userID))
}
