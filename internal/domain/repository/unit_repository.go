package repository

import (
	"context"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
)

// UnitRepository reads administrative units (barangay health stations, RHUs).
type UnitRepository interface {
	GetByID(ctx context.Context, id string) (*entity.AdministrativeUnit, error)
	List(ctx context.Context) ([]*entity.AdministrativeUnit, error)
}
