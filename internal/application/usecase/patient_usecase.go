package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/rhu-inventory-api/internal/application/dto"
	"github.com/jhoicas/rhu-inventory-api/internal/application/ports"
	"github.com/jhoicas/rhu-inventory-api/internal/domain"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
)

// PatientUseCase casos de uso CRUD para el registro de pacientes.
type PatientUseCase struct {
	repo  repository.PatientRepository
	tx    ports.TxRunner
	clock ports.Clock
}

// NewPatientUseCase construye el caso de uso.
func NewPatientUseCase(repo repository.PatientRepository, tx ports.TxRunner, clock ports.Clock) *PatientUseCase {
	return &PatientUseCase{repo: repo, tx: tx, clock: clock}
}

// Create registra un paciente. Sin número, se asigna PT-YYYY-NNNN.
func (uc *PatientUseCase) Create(ctx context.Context, in dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	if strings.TrimSpace(in.LastName) == "" {
		return nil, domain.NewValidationError("last_name", "is required")
	}
	if err := validateSex(in.Sex); err != nil {
		return nil, err
	}
	birth, err := dto.ParseOptionalDate("birth_date", in.BirthDate)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	p := &entity.Patient{
		ID:            uuid.New().String(),
		PatientNumber: strings.TrimSpace(in.PatientNumber),
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		BirthDate:     birth,
		Sex:           strings.ToUpper(in.Sex),
		Barangay:      strings.TrimSpace(in.Barangay),
		PhilHealthNo:  strings.TrimSpace(in.PhilHealthNo),
		Contact:       strings.TrimSpace(in.Contact),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if p.PatientNumber == "" {
			seq, err := r.Sequences.Next(ctx, repository.SeqPatient)
			if err != nil {
				return err
			}
			p.PatientNumber = domain.DocumentNumber("PT", now.Year(), seq)
		}
		return r.Patients.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return toPatientResponse(p), nil
}

// GetByID obtiene un paciente por ID.
func (uc *PatientUseCase) GetByID(ctx context.Context, id string) (*dto.PatientResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPatientResponse(p), nil
}

// Update actualiza los datos de un paciente. El número de paciente no cambia.
func (uc *PatientUseCase) Update(ctx context.Context, id string, in dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.FirstName != nil {
		p.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		if strings.TrimSpace(*in.LastName) == "" {
			return nil, domain.NewValidationError("last_name", "must not be empty")
		}
		p.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.BirthDate != nil {
		birth, err := dto.ParseOptionalDate("birth_date", *in.BirthDate)
		if err != nil {
			return nil, err
		}
		p.BirthDate = birth
	}
	if in.Sex != nil {
		if err := validateSex(*in.Sex); err != nil {
			return nil, err
		}
		p.Sex = strings.ToUpper(*in.Sex)
	}
	if in.Barangay != nil {
		p.Barangay = strings.TrimSpace(*in.Barangay)
	}
	if in.PhilHealthNo != nil {
		p.PhilHealthNo = strings.TrimSpace(*in.PhilHealthNo)
	}
	if in.Contact != nil {
		p.Contact = strings.TrimSpace(*in.Contact)
	}
	p.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPatientResponse(p), nil
}

// List busca pacientes por número, nombre o barangay.
func (uc *PatientUseCase) List(ctx context.Context, in dto.PatientListRequest) (*dto.PatientListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.PatientFilter{
		Search:   strings.TrimSpace(in.Search),
		Barangay: strings.TrimSpace(in.Barangay),
		Page:     repository.Page{Limit: in.Limit, Offset: in.Offset},
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.PatientResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPatientResponse(p))
	}
	return &dto.PatientListResponse{
		Patients: out,
		Page:     dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

func validateSex(s string) error {
	switch strings.ToUpper(s) {
	case "", "M", "F":
		return nil
	}
	return domain.NewValidationError("sex", "must be M or F")
}

func toPatientResponse(p *entity.Patient) *dto.PatientResponse {
	out := &dto.PatientResponse{
		ID:            p.ID,
		PatientNumber: p.PatientNumber,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		FullName:      p.FullName(),
		Sex:           p.Sex,
		Barangay:      p.Barangay,
		PhilHealthNo:  p.PhilHealthNo,
		Contact:       p.Contact,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.BirthDate != nil {
		out.BirthDate = p.BirthDate.Format(dto.DateLayout)
	}
	return out
}
