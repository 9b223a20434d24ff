package service

import (
	"strings"
	"time"

	"github.com/silkloom/storefront/internal/constants"
	"github.com/silkloom/storefront/internal/models"
	"github.com/silkloom/storefront/internal/repository"
)

// AuditActor 执行变更的管理员
type AuditActor struct {
	UserID    uint
	Username  string
	RequestID string
}

// AuthzAuditService 角色变更审计
type AuthzAuditService struct {
	repo repository.AuthzAuditLogRepository
}

func NewAuthzAuditService(repo repository.AuthzAuditLogRepository) *AuthzAuditService {
	return &AuthzAuditService{repo: repo}
}

// RecordRoleChange 记录一次角色设置，roles 为设置后的完整角色列表
func (s *AuthzAuditService) RecordRoleChange(actor AuditActor, target *models.User, roles []string) error {
	if s == nil || s.repo == nil || actor.UserID == 0 || target == nil {
		return nil
	}
	kept := make(models.StringArray, 0, len(roles))
	for _, role := range roles {
		if role = strings.TrimSpace(role); role != "" {
			kept = append(kept, role)
		}
	}
	targetID := target.ID
	return s.repo.Create(&models.AuthzAuditLog{
		OperatorUserID:   actor.UserID,
		OperatorUsername: strings.TrimSpace(actor.Username),
		TargetUserID:     &targetID,
		TargetUsername:   target.Username,
		Action:           constants.AuthzAuditActionSetUserRoles,
		Roles:            kept,
		RequestID:        strings.TrimSpace(actor.RequestID),
		CreatedAt:        time.Now(),
	})
}

// ListForAdmin 管理端按条件查询
func (s *AuthzAuditService) ListForAdmin(filter repository.AuthzAuditLogListFilter) ([]models.AuthzAuditLog, int64, error) {
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize)
	return s.repo.ListAdmin(filter)
}
