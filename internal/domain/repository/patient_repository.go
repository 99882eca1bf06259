package repository

import (
	"context"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
)

// PatientRepository is the persistence port of patient records.
type PatientRepository interface {
	// Create returns domain.ErrDuplicate when the patient number is taken.
	Create(ctx context.Context, p *entity.Patient) error
	GetByID(ctx context.Context, id string) (*entity.Patient, error)
	Update(ctx context.Context, p *entity.Patient) error
	List(ctx context.Context, f PatientFilter) ([]*entity.Patient, int, error)
}
