package entity

import "time"

// Patient is a record in the health unit's registry.
type Patient struct {
	ID            string
	PatientNumber string
	FirstName     string
	LastName      string
	BirthDate     *time.Time
	Sex           string // M, F
	Barangay      string
	PhilHealthNo  string
	Contact       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FullName returns "Last, First".
func (p *Patient) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	return p.LastName + ", " + p.FirstName
}
