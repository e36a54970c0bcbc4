package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

// catalogRoutes 四个商品目录的路由前缀（含历史拼写 /fragnance）
var catalogRoutes = []string{"/products", "/gadgets", "/fragrances", "/fragnance", "/carcare"}

// BuiltinRoleSeeds 系统预置角色矩阵
func BuiltinRoleSeeds() []RoleSeed {
	catalogPolicies := make([]Policy, 0, len(catalogRoutes)*2)
	for _, prefix := range catalogRoutes {
		catalogPolicies = append(catalogPolicies,
			Policy{Object: prefix, Action: "POST"},
			Policy{Object: prefix + "/:id", Action: "*"},
		)
	}
	return []RoleSeed{
		{
			Role: "readonly_auditor",
			Policies: []Policy{
				{Object: "/orders/all", Action: "GET"},
				{Object: "/contact", Action: "GET"},
				{Object: "/contact/:id", Action: "GET"},
				{Object: "/users", Action: "GET"},
			},
			Immutable: true,
		},
		{
			Role:      "catalog_manager",
			Inherits:  []string{"readonly_auditor"},
			Policies:  catalogPolicies,
			Immutable: true,
		},
		{
			Role:     "admin",
			Inherits: []string{"catalog_manager"},
			Policies: []Policy{
				{Object: "/orders/:id/status", Action: "PUT"},
				{Object: "/contact/:id", Action: "DELETE"},
				{Object: "/users/:id", Action: "DELETE"},
				{Object: "/authz/*", Action: "*"},
			},
			Immutable: true,
		},
	}
}

// IsBuiltinRole 判断是否为不可变的预置角色
func IsBuiltinRole(role string) bool {
	normalized, err := NormalizeRole(role)
	if err != nil {
		return false
	}
	for _, seed := range BuiltinRoleSeeds() {
		if !seed.Immutable {
			continue
		}
		if seedRole, err := NormalizeRole(seed.Role); err == nil && seedRole == normalized {
			return true
		}
	}
	return false
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略（已存在的规则跳过）
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.ready(); err != nil {
		return err
	}
	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return fmt.Errorf("create builtin role failed: %w", err)
		}
		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}
		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return errActionRequired
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
