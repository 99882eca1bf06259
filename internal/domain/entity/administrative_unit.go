package entity

// AdministrativeUnit is a barangay health station, RHU or other LGU facility that can receive transfers.
type AdministrativeUnit struct {
	ID           string
	Code         string
	Name         string
	Municipality string
	Province     string
}
