package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/rhu-inventory-api/internal/domain"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
)

var (
	_ repository.UnitRepository     = (*UnitRepo)(nil)
	_ repository.PatientRepository  = (*PatientRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.SequenceRepository = (*SequenceRepo)(nil)
)

// ── Administrative units ─────────────────────────────────────────────────────

// UnitRepo lee unidades administrativas.
type UnitRepo struct{ c scope }

func (r *UnitRepo) GetByID(_ context.Context, id string) (*entity.AdministrativeUnit, error) {
	var out *entity.AdministrativeUnit
	err := r.c.read(func(st *state) error {
		u, ok := st.units[id]
		if !ok {
			return domain.ErrNotFound
		}
		out = &u
		return nil
	})
	return out, err
}

func (r *UnitRepo) List(_ context.Context) ([]*entity.AdministrativeUnit, error) {
	var out []*entity.AdministrativeUnit
	err := r.c.read(func(st *state) error {
		for _, u := range st.units {
			out = append(out, &u)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

// ── Patients ─────────────────────────────────────────────────────────────────

// PatientRepo implementa repository.PatientRepository en memoria.
type PatientRepo struct{ c scope }

func (r *PatientRepo) Create(_ context.Context, p *entity.Patient) error {
	return r.c.write(func(st *state) error {
		for _, existing := range st.patients {
			if strings.EqualFold(existing.PatientNumber, p.PatientNumber) {
				return domain.ErrDuplicate
			}
		}
		st.patients[p.ID] = clonePatient(*p)
		return nil
	})
}

func (r *PatientRepo) GetByID(_ context.Context, id string) (*entity.Patient, error) {
	var out *entity.Patient
	err := r.c.read(func(st *state) error {
		p, ok := st.patients[id]
		if !ok {
			return domain.ErrNotFound
		}
		p = clonePatient(p)
		out = &p
		return nil
	})
	return out, err
}

func (r *PatientRepo) Update(_ context.Context, p *entity.Patient) error {
	return r.c.write(func(st *state) error {
		if _, ok := st.patients[p.ID]; !ok {
			return domain.ErrNotFound
		}
		st.patients[p.ID] = clonePatient(*p)
		return nil
	})
}

func (r *PatientRepo) List(_ context.Context, f repository.PatientFilter) ([]*entity.Patient, int, error) {
	var list []*entity.Patient
	err := r.c.read(func(st *state) error {
		for _, p := range st.patients {
			if f.Search != "" && !containsFold(p.PatientNumber, f.Search) &&
				!containsFold(p.FirstName, f.Search) && !containsFold(p.LastName, f.Search) {
				continue
			}
			if f.Barangay != "" && !strings.EqualFold(p.Barangay, f.Barangay) {
				continue
			}
			p = clonePatient(p)
			list = append(list, &p)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].LastName != list[j].LastName {
			return list[i].LastName < list[j].LastName
		}
		return list[i].FirstName < list[j].FirstName
	})
	return paginate(list, f.Page), len(list), nil
}

// ── Users ────────────────────────────────────────────────────────────────────

// UserRepo implementa repository.UserRepository en memoria.
type UserRepo struct{ c scope }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.c.write(func(st *state) error {
		for _, existing := range st.users {
			if strings.EqualFold(existing.Username, u.Username) {
				return domain.ErrDuplicate
			}
		}
		st.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.c.read(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return domain.ErrNotFound
		}
		out = &u
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.c.read(func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Username, username) {
				out = &u
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return out, err
}

// ── Sequences ────────────────────────────────────────────────────────────────

// SequenceRepo entrega contadores por nombre.
type SequenceRepo struct{ c scope }

func (r *SequenceRepo) Next(_ context.Context, name string) (int64, error) {
	var n int64
	err := r.c.write(func(st *state) error {
		st.sequences[name]++
		n = st.sequences[name]
		return nil
	})
	return n, err
}
