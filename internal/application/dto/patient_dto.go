package dto

import "time"

// CreatePatientRequest body para POST /api/patients.
type CreatePatientRequest struct {
	PatientNumber string `json:"patient_number,omitempty"` // generated when empty
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	BirthDate     string `json:"birth_date,omitempty"`
	Sex           string `json:"sex,omitempty"`
	Barangay      string `json:"barangay,omitempty"`
	PhilHealthNo  string `json:"philhealth_no,omitempty"`
	Contact       string `json:"contact,omitempty"`
}

// UpdatePatientRequest body para PUT /api/patients/:id.
type UpdatePatientRequest struct {
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	BirthDate    *string `json:"birth_date,omitempty"`
	Sex          *string `json:"sex,omitempty"`
	Barangay     *string `json:"barangay,omitempty"`
	PhilHealthNo *string `json:"philhealth_no,omitempty"`
	Contact      *string `json:"contact,omitempty"`
}

// PatientListRequest query de GET /api/patients.
type PatientListRequest struct {
	Search   string `query:"search"`
	Barangay string `query:"barangay"`
	PageRequest
}

// PatientResponse salida de un paciente.
type PatientResponse struct {
	ID            string    `json:"id"`
	PatientNumber string    `json:"patient_number"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	FullName      string    `json:"full_name"`
	BirthDate     string    `json:"birth_date,omitempty"`
	Sex           string    `json:"sex,omitempty"`
	Barangay      string    `json:"barangay,omitempty"`
	PhilHealthNo  string    `json:"philhealth_no,omitempty"`
	Contact       string    `json:"contact,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PatientListResponse listado paginado de pacientes.
type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Page     PageResponse      `json:"page"`
}
