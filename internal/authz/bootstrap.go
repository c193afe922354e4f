package authz

import "fmt"

// RoleSeed defines a built-in role
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

// BuiltinRoleSeeds is the default role matrix. Content managers author
// the catalog, sales owns coupons and the purchase ledger, support
// handles user accounts.
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "readonly_auditor",
			Policies: []Policy{
				{Object: "/admin/*", Action: "GET"},
			},
			Immutable: true,
		},
		{
			Role:     "content_manager",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/courses", Action: "*"},
				{Object: "/admin/courses/:id", Action: "*"},
				{Object: "/admin/ebooks", Action: "*"},
				{Object: "/admin/ebooks/:id", Action: "*"},
				{Object: "/admin/publications", Action: "*"},
				{Object: "/admin/publications/:id", Action: "*"},
				{Object: "/admin/test-series", Action: "*"},
				{Object: "/admin/test-series/:id", Action: "*"},
				{Object: "/admin/test-series/:id/tests", Action: "*"},
				{Object: "/admin/tests/:id", Action: "*"},
				{Object: "/admin/tests/:id/sections", Action: "*"},
				{Object: "/admin/sections/:id", Action: "*"},
				{Object: "/admin/sections/:id/questions", Action: "*"},
				{Object: "/admin/questions/:id", Action: "*"},
				{Object: "/admin/categories", Action: "*"},
				{Object: "/admin/categories/:id", Action: "*"},
				{Object: "/admin/sub-categories", Action: "*"},
				{Object: "/admin/sub-categories/:id", Action: "*"},
				{Object: "/admin/languages", Action: "*"},
				{Object: "/admin/languages/:id", Action: "*"},
				{Object: "/admin/current-affairs", Action: "*"},
				{Object: "/admin/current-affairs/:id", Action: "*"},
				{Object: "/admin/daily-quizzes", Action: "*"},
				{Object: "/admin/daily-quizzes/:id", Action: "*"},
				{Object: "/admin/daily-quizzes/:id/questions", Action: "*"},
				{Object: "/admin/quiz-questions/:id", Action: "*"},
			},
			Immutable: true,
		},
		{
			Role:     "sales",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/coupons", Action: "*"},
				{Object: "/admin/coupons/:id", Action: "*"},
				{Object: "/admin/coupons/:id/usages", Action: "GET"},
				{Object: "/admin/purchases", Action: "GET"},
				{Object: "/admin/purchases/:id", Action: "GET"},
				{Object: "/admin/purchases/:id/fail", Action: "POST"},
			},
			Immutable: true,
		},
		{
			Role:     "support",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/users", Action: "GET"},
				{Object: "/admin/users/:id", Action: "GET"},
				{Object: "/admin/users/:id/status", Action: "PUT"},
				{Object: "/admin/purchases", Action: "GET"},
				{Object: "/admin/purchases/:id", Action: "GET"},
			},
			Immutable: true,
		},
	}
}

// BootstrapBuiltinRoles seeds the built-in roles and their policies
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	changed := false
	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		exists, err := s.enforcer.HasNamedGroupingPolicy("g", role, roleAnchor)
		if err != nil {
			return fmt.Errorf("check builtin role failed: %w", err)
		}
		if !exists {
			added, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor)
			if err != nil {
				return fmt.Errorf("create builtin role failed: %w", err)
			}
			if added {
				changed = true
			}
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			added, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole)
			if err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
			if added {
				changed = true
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			added, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action)
			if err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
			if added {
				changed = true
			}
		}
	}

	if changed {
		return s.saveAndReload()
	}
	return nil
}
