package authz

import (
	"fmt"

	"github.com/silkloom/storefront/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Policies []Policy
}

// RoleInfo 角色及其策略
type RoleInfo struct {
	Role     string   `json:"role"`
	Policies []Policy `json:"policies"`
}

// BuiltinRoleSeeds 系统预置角色矩阵
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleSuperAdmin,
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
		},
		{
			Role: constants.RoleCatalogManager,
			Policies: []Policy{
				{Object: "/admin/products", Action: "*"},
				{Object: "/admin/products/:id", Action: "*"},
				{Object: "/admin/categories", Action: "*"},
				{Object: "/admin/categories/:id", Action: "*"},
			},
		},
		{
			Role: constants.RoleOrderManager,
			Policies: []Policy{
				{Object: "/admin/custom-orders", Action: "GET"},
				{Object: "/admin/custom-orders/:id", Action: "GET"},
				{Object: "/admin/custom-orders/:id/status", Action: "PUT"},
				{Object: "/admin/orders", Action: "GET"},
				{Object: "/admin/orders/:id/status", Action: "PUT"},
			},
		},
	}
}

// IsBuiltinRole 判断角色是否为预置角色
func IsBuiltinRole(role string) bool {
	for _, seed := range BuiltinRoleSeeds() {
		if seed.Role == role {
			return true
		}
	}
	return false
}

// BootstrapBuiltinRoles 初始化预置角色策略，已存在的策略保持不变
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return ErrUnavailable
	}
	for _, seed := range BuiltinRoleSeeds() {
		subject := rolePrefix + seed.Role
		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(subject, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
