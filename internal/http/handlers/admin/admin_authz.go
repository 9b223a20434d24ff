package admin

import (
	"errors"

	"github.com/silkloom/storefront/internal/authz"
	"github.com/silkloom/storefront/internal/http/response"
	"github.com/silkloom/storefront/internal/models"
	"github.com/silkloom/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

type authzSetUserRolesPayload struct {
	Roles []string `json:"roles" binding:"dive,required"`
}

// ListAuthzRoles 获取预置角色及其策略
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	response.Success(c, h.AuthzService.ListRoles())
}

// GetUserRoles 获取用户角色
func (h *Handler) GetUserRoles(c *gin.Context) {
	user, ok := h.loadTargetUser(c)
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetUserRoles(user.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"user_id":  user.ID,
		"username": user.Username,
		"is_admin": user.IsAdmin,
		"roles":    roles,
	})
}

// SetUserRoles 覆盖设置用户角色并记录审计日志
func (h *Handler) SetUserRoles(c *gin.Context) {
	user, ok := h.loadTargetUser(c)
	if !ok {
		return
	}
	var req authzSetUserRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	roles, err := h.AuthzService.SetUserRoles(user.ID, req.Roles)
	if err != nil {
		if errors.Is(err, authz.ErrUnknownRole) {
			respondError(c, response.CodeBadRequest, "error.role_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.authz_update_failed", err)
		return
	}

	actor := service.AuditActor{
		UserID:    currentUserID(c),
		Username:  currentUsername(c),
		RequestID: currentRequestID(c),
	}
	if err := h.AuthzAuditService.RecordRoleChange(actor, user, roles); err != nil {
		requestLog(c).Warnw("admin_authz_audit_record_failed", "target_user_id", user.ID, "error", err)
	}

	requestLog(c).Infow("admin_authz_user_roles_updated",
		"operator_user_id", currentUserID(c),
		"target_user_id", user.ID,
		"roles", roles,
	)
	response.Success(c, gin.H{
		"user_id": user.ID,
		"roles":   roles,
	})
}

func (h *Handler) loadTargetUser(c *gin.Context) (*models.User, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}
	user, err := h.AuthService.GetUser(id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
			return nil, false
		}
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return nil, false
	}
	return user, true
}
