// Package access maps roles to the capabilities checked on every protected route.
package access

import (
	"sort"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
)

// Capability names a permission granted to a role.
type Capability string

const (
	InventoryRead      Capability = "inventory:read"
	InventoryWrite     Capability = "inventory:write"
	InventoryAdjust    Capability = "inventory:adjust"
	TransfersApprove   Capability = "transfers:approve"
	ProcurementRead    Capability = "procurement:read"
	ProcurementWrite   Capability = "procurement:write"
	ProcurementApprove Capability = "procurement:approve"
	PatientsRead       Capability = "patients:read"
	PatientsWrite      Capability = "patients:write"
	ReportsRead        Capability = "reports:read"
	UsersManage        Capability = "users:manage"
)

var all = []Capability{
	InventoryRead, InventoryWrite, InventoryAdjust, TransfersApprove,
	ProcurementRead, ProcurementWrite, ProcurementApprove,
	PatientsRead, PatientsWrite, ReportsRead, UsersManage,
}

var byRole = map[string][]Capability{
	entity.RoleAdmin: all,
	entity.RolePharmacist: {
		InventoryRead, InventoryWrite, InventoryAdjust, TransfersApprove,
		ProcurementRead, PatientsRead, ReportsRead,
	},
	entity.RoleStorekeeper: {
		InventoryRead, InventoryWrite, InventoryAdjust, ProcurementRead, ReportsRead,
	},
	entity.RoleProcurement: {
		InventoryRead, ProcurementRead, ProcurementWrite, ProcurementApprove, ReportsRead,
	},
	entity.RoleMedicalStaff: {
		InventoryRead, PatientsRead, PatientsWrite,
	},
}

// IsValidRole reports whether role has a capability set.
func IsValidRole(role string) bool {
	_, ok := byRole[role]
	return ok
}

// Has reports whether role grants c. Unknown roles grant nothing.
func Has(role string, c Capability) bool {
	for _, granted := range byRole[role] {
		if granted == c {
			return true
		}
	}
	return false
}

// CapabilitiesOf returns the sorted capability names of role.
func CapabilitiesOf(role string) []string {
	caps := byRole[role]
	out := make([]string, 0, len(caps))
	for _, c := range caps {
		out = append(out, string(c))
	}
	sort.Strings(out)
	return out
}
