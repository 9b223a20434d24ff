package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/silkloom/storefront/internal/constants"
	"github.com/silkloom/storefront/internal/models"
	"github.com/silkloom/storefront/internal/repository"
)

const maxUserAgentLength = 512

// LoginAttempt 一次登录尝试，FailReason 为空表示成功
type LoginAttempt struct {
	UserID     uint
	Username   string
	FailReason string
	ClientIP   string
	UserAgent  string
	RequestID  string
}

// UserLoginLogService 登录记录
type UserLoginLogService struct {
	repo repository.UserLoginLogRepository
}

func NewUserLoginLogService(repo repository.UserLoginLogRepository) *UserLoginLogService {
	return &UserLoginLogService{repo: repo}
}

// RecordAttempt 写入一条登录记录
func (s *UserLoginLogService) RecordAttempt(attempt LoginAttempt) error {
	if s == nil || s.repo == nil {
		return nil
	}
	entry := &models.UserLoginLog{
		UserID:    attempt.UserID,
		Username:  normalizeUsername(attempt.Username),
		Status:    constants.LoginLogStatusSuccess,
		ClientIP:  strings.TrimSpace(attempt.ClientIP),
		UserAgent: clipRunes(strings.TrimSpace(attempt.UserAgent), maxUserAgentLength),
		RequestID: strings.TrimSpace(attempt.RequestID),
		CreatedAt: time.Now(),
	}
	if reason := strings.ToLower(strings.TrimSpace(attempt.FailReason)); reason != "" {
		entry.Status = constants.LoginLogStatusFailed
		entry.FailReason = reason
	}
	return s.repo.Create(entry)
}

// ListForAdmin 管理端按条件查询
func (s *UserLoginLogService) ListForAdmin(filter repository.UserLoginLogListFilter) ([]models.UserLoginLog, int64, error) {
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize)
	return s.repo.ListAdmin(filter)
}

// ListByUser 顾客查看自己的登录记录
func (s *UserLoginLogService) ListByUser(userID uint, page, pageSize int) ([]models.UserLoginLog, int64, error) {
	if userID == 0 {
		return []models.UserLoginLog{}, 0, nil
	}
	return s.ListForAdmin(repository.UserLoginLogListFilter{UserID: userID, Page: page, PageSize: pageSize})
}

func clipRunes(value string, limit int) string {
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	return string([]rune(value)[:limit])
}
