package identity

import (
	"github.com/samarth/backend/internal/domain/shared"
)

// Action names an operation subject to role authorization
type Action string

const (
	ActionUserList            Action = "user.list"
	ActionUserCreate          Action = "user.create"
	ActionUserCreateSuperUser Action = "user.create_super_admin"
	ActionUserDelete          Action = "user.delete"

	ActionInventoryView   Action = "inventory.view"
	ActionInventoryCreate Action = "inventory.create"
	ActionInventoryDelete Action = "inventory.delete"
	ActionInventoryExport Action = "inventory.export"

	ActionTrainingView   Action = "training.view"
	ActionTrainingCreate Action = "training.create"
	ActionTrainingDelete Action = "training.delete"
	ActionBatchManage    Action = "batch.manage"

	ActionContentView   Action = "content.view"
	ActionContentCreate Action = "content.create"
	ActionContentReview Action = "content.review"

	ActionIntegrationSync Action = "integration.sync"
	ActionIntegrationView Action = "integration.view"

	ActionAuditView     Action = "audit.view"
	ActionDashboardView Action = "dashboard.view"
)

// Policy maps (action, role) pairs to a grant. Pairs absent from the table are denied.
type Policy struct {
	grants map[Action]map[Role]bool
}

// NewPolicy builds a policy from an action -> allowed roles table
func NewPolicy(table map[Action][]Role) *Policy {
	grants := make(map[Action]map[Role]bool, len(table))
	for action, roles := range table {
		set := make(map[Role]bool, len(roles))
		for _, r := range roles {
			set[r] = true
		}
		grants[action] = set
	}
	return &Policy{grants: grants}
}

// DefaultPolicy returns the authorization table enforced by the API
func DefaultPolicy() *Policy {
	both := []Role{RoleSuperAdmin, RoleAdmin}
	superOnly := []Role{RoleSuperAdmin}

	return NewPolicy(map[Action][]Role{
		ActionUserList:            both,
		ActionUserCreate:          both,
		ActionUserCreateSuperUser: superOnly,
		ActionUserDelete:          superOnly,

		ActionInventoryView:   both,
		ActionInventoryCreate: both,
		ActionInventoryDelete: both,
		ActionInventoryExport: both,

		ActionTrainingView:   both,
		ActionTrainingCreate: both,
		ActionTrainingDelete: superOnly,
		ActionBatchManage:    both,

		ActionContentView:   both,
		ActionContentCreate: both,
		ActionContentReview: superOnly,

		ActionIntegrationSync: both,
		ActionIntegrationView: both,

		ActionAuditView:     both,
		ActionDashboardView: both,
	})
}

// Allowed reports whether role may perform action
func (p *Policy) Allowed(action Action, role Role) bool {
	return p.grants[action][role]
}

// Authorize returns a forbidden error when role may not perform action
func (p *Policy) Authorize(action Action, role Role) error {
	if !p.Allowed(action, role) {
		return shared.Forbidden("Not authorized")
	}
	return nil
}

// Actions returns every action present in the table
func (p *Policy) Actions() []Action {
	actions := make([]Action, 0, len(p.grants))
	for a := range p.grants {
		actions = append(actions, a)
	}
	return actions
}
