package services

import (
	"gorm.io/gorm"

	"github.com/marco-valdez/la-comanda-api/models"
)

// Actor is the authenticated staff member behind a request, as extracted
// from the JWT by the auth middleware.
type Actor struct {
	ID       uint
	Username string
	Role     string
}

// Capability names an action a role may or may not perform. Route guards
// and handlers check capabilities against the policy table instead of
// comparing role strings inline.
type Capability int

const (
	CapManageMenu Capability = iota
	CapManageTables
	CapManageStaff
	CapViewReports
	CapCreateOrders
	CapUpdateOrderStatus
	CapDeleteOrders
	CapKitchenFeed
)

// rolePolicy is the single source of truth for role permissions.
// Admin is handled as an override in Can and does not appear here.
var rolePolicy = map[string]map[Capability]bool{
	models.RoleServer: {
		CapCreateOrders:      true,
		CapUpdateOrderStatus: true,
	},
	models.RoleCook: {
		CapUpdateOrderStatus: true,
		CapKitchenFeed:       true,
	},
}

// KitchenStatuses is the subset of order statuses relevant to cooks.
var KitchenStatuses = []string{models.StatusPending, models.StatusPreparing, models.StatusReady}

// Can reports whether a role holds a capability. Admin holds all of them.
func Can(role string, cap Capability) bool {
	if role == models.RoleAdmin {
		return true
	}
	return rolePolicy[role][cap]
}

// ScopeOrders narrows an order query to what the actor may see:
// servers see only orders they took, cooks see only kitchen-relevant
// statuses, admins see everything.
func ScopeOrders(query *gorm.DB, actor Actor) *gorm.DB {
	switch actor.Role {
	case models.RoleServer:
		return query.Where("taken_by_id = ?", actor.ID)
	case models.RoleCook:
		return query.Where("status IN ?", KitchenStatuses)
	default:
		return query
	}
}

// CanViewOrder applies the same visibility rules to a single loaded order.
func CanViewOrder(actor Actor, order *models.Order) bool {
	switch actor.Role {
	case models.RoleServer:
		return order.TakenByID == actor.ID
	case models.RoleCook:
		for _, s := range KitchenStatuses {
			if order.Status == s {
				return true
			}
		}
		return false
	default:
		return true
	}
}
