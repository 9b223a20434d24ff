package authz

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/silkloom/storefront/internal/constants"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	return svc
}

func TestCatalogManagerScope(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if _, err := svc.SetUserRoles(1, []string{constants.RoleCatalogManager}); err != nil {
		t.Fatalf("set user roles failed: %v", err)
	}

	allow, err := svc.EnforceUser(1, "/api/v1/admin/products/42", "put")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if !allow {
		t.Fatalf("catalog manager should edit products")
	}

	allow, err = svc.EnforceUser(1, "/api/v1/admin/custom-orders/7/status", "PUT")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if allow {
		t.Fatalf("catalog manager should not touch custom orders")
	}
}

func TestSuperAdminWildcard(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if _, err := svc.SetUserRoles(2, []string{"role:super_admin"}); err != nil {
		t.Fatalf("set user roles failed: %v", err)
	}
	for _, path := range []string{"/admin/users/9/roles", "/admin/orders/3/status", "/admin/products/export"} {
		allow, err := svc.EnforceUser(2, path, "PUT")
		if err != nil {
			t.Fatalf("enforce %s failed: %v", path, err)
		}
		if !allow {
			t.Fatalf("super admin should access %s", path)
		}
	}
}

func TestSetUserRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if _, err := svc.SetUserRoles(3, []string{constants.RoleOrderManager}); err != nil {
		t.Fatalf("set first role failed: %v", err)
	}
	if _, err := svc.SetUserRoles(3, []string{constants.RoleCatalogManager, constants.RoleCatalogManager}); err != nil {
		t.Fatalf("set second role failed: %v", err)
	}
	roles, err := svc.GetUserRoles(3)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != constants.RoleCatalogManager {
		t.Fatalf("roles want [%s] got %v", constants.RoleCatalogManager, roles)
	}

	allow, err := svc.EnforceUser(3, "/admin/orders", "GET")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if allow {
		t.Fatalf("old role permission should be removed")
	}
}

func TestSetUserRolesRejectsUnknownRole(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	_, err := svc.SetUserRoles(4, []string{"finance"})
	if !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("want ErrUnknownRole got %v", err)
	}
}

func TestEnsureDefaultRoleSkipsAssignedUsers(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if _, err := svc.SetUserRoles(5, []string{constants.RoleOrderManager}); err != nil {
		t.Fatalf("set user roles failed: %v", err)
	}
	granted, err := svc.EnsureDefaultRole([]uint{5, 6}, constants.RoleSuperAdmin)
	if err != nil {
		t.Fatalf("ensure default role failed: %v", err)
	}
	if granted != 1 {
		t.Fatalf("granted want 1 got %d", granted)
	}
	roles, _ := svc.GetUserRoles(5)
	if len(roles) != 1 || roles[0] != constants.RoleOrderManager {
		t.Fatalf("existing roles should be kept, got %v", roles)
	}
	roles, _ = svc.GetUserRoles(6)
	if len(roles) != 1 || roles[0] != constants.RoleSuperAdmin {
		t.Fatalf("user 6 should become super admin, got %v", roles)
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/admin/custom-orders/:id", want: "/admin/custom-orders/:id"},
		{in: "/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "admin/orders", want: "/admin/orders"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}
