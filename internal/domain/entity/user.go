package entity

import "time"

// Valid roles for User.
const (
	RoleAdmin        = "admin"
	RolePharmacist   = "pharmacist"
	RoleStorekeeper  = "storekeeper"
	RoleProcurement  = "procurement"
	RoleMedicalStaff = "medical_staff"
)

// User statuses.
const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// User is a staff account of the health unit.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, never plain
	Name         string
	Role         string
	UnitID       string // administrative unit the user works at
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
