package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
)

// ── Unidades administrativas ────────────────────────────────────────────────

var _ repository.UnitRepository = (*UnitRepo)(nil)

// UnitRepo lee las unidades administrativas cargadas por migración.
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el repositorio de unidades.
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

func (r *UnitRepo) GetByID(ctx context.Context, id string) (*entity.AdministrativeUnit, error) {
	var u entity.AdministrativeUnit
	err := r.q.QueryRow(ctx, `
		SELECT id, code, name, municipality, province FROM administrative_units WHERE id = $1`, id).
		Scan(&u.ID, &u.Code, &u.Name, &u.Municipality, &u.Province)
	if err != nil {
		return nil, wrap("get unit", err)
	}
	return &u, nil
}

func (r *UnitRepo) List(ctx context.Context) ([]*entity.AdministrativeUnit, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, code, name, municipality, province FROM administrative_units ORDER BY name`)
	if err != nil {
		return nil, wrap("list units", err)
	}
	defer rows.Close()

	var out []*entity.AdministrativeUnit
	for rows.Next() {
		var u entity.AdministrativeUnit
		if err := rows.Scan(&u.ID, &u.Code, &u.Name, &u.Municipality, &u.Province); err != nil {
			return nil, wrap("scan unit", err)
		}
		out = append(out, &u)
	}
	return out, wrap("list units", rows.Err())
}

// ── Pacientes ───────────────────────────────────────────────────────────────

var _ repository.PatientRepository = (*PatientRepo)(nil)

// PatientRepo implementa repository.PatientRepository.
type PatientRepo struct {
	q Querier
}

// NewPatientRepository construye el repositorio de pacientes.
func NewPatientRepository(q Querier) *PatientRepo {
	return &PatientRepo{q: q}
}

const patientColumns = `id, patient_number, first_name, last_name, birth_date, sex, barangay,
	philhealth_no, contact, created_at, updated_at`

func scanPatient(row pgx.Row) (*entity.Patient, error) {
	var p entity.Patient
	err := row.Scan(&p.ID, &p.PatientNumber, &p.FirstName, &p.LastName, &p.BirthDate, &p.Sex, &p.Barangay,
		&p.PhilHealthNo, &p.Contact, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepo) Create(ctx context.Context, p *entity.Patient) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO patients (`+patientColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.PatientNumber, p.FirstName, p.LastName, p.BirthDate, p.Sex, p.Barangay,
		p.PhilHealthNo, p.Contact, p.CreatedAt, p.UpdatedAt)
	return wrap("insert patient", err)
}

func (r *PatientRepo) GetByID(ctx context.Context, id string) (*entity.Patient, error) {
	p, err := scanPatient(r.q.QueryRow(ctx, `SELECT `+patientColumns+` FROM patients WHERE id = $1`, id))
	return p, wrap("get patient", err)
}

func (r *PatientRepo) Update(ctx context.Context, p *entity.Patient) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE patients SET first_name = $2, last_name = $3, birth_date = $4, sex = $5, barangay = $6,
			philhealth_no = $7, contact = $8, updated_at = $9
		WHERE id = $1`,
		p.ID, p.FirstName, p.LastName, p.BirthDate, p.Sex, p.Barangay, p.PhilHealthNo, p.Contact, p.UpdatedAt)
	return mustAffect(tag, err, "update patient")
}

func (r *PatientRepo) List(ctx context.Context, f repository.PatientFilter) ([]*entity.Patient, int, error) {
	var w where
	if f.Search != "" {
		w.add("(lower(patient_number) LIKE ? OR lower(first_name) LIKE ? OR lower(last_name) LIKE ?)", like(f.Search))
	}
	if f.Barangay != "" {
		w.add("barangay = ?", f.Barangay)
	}
	total, err := w.count(ctx, r.q, "patients")
	if err != nil {
		return nil, 0, wrap("count patients", err)
	}
	suffix, args := w.page(f.Page)
	rows, err := r.q.Query(ctx,
		`SELECT `+patientColumns+` FROM patients`+w.sql()+` ORDER BY last_name, first_name, patient_number`+suffix, args...)
	if err != nil {
		return nil, 0, wrap("list patients", err)
	}
	defer rows.Close()

	var out []*entity.Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, wrap("scan patient", err)
		}
		out = append(out, p)
	}
	return out, total, wrap("list patients", rows.Err())
}

// ── Usuarios ────────────────────────────────────────────────────────────────

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementa repository.UserRepository.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el repositorio de usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, username, password_hash, name, role, COALESCE(unit_id, ''), status, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Role, &u.UnitID, &u.Status,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO users (id, username, password_hash, name, role, unit_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9)`,
		u.ID, u.Username, u.PasswordHash, u.Name, u.Role, u.UnitID, u.Status, u.CreatedAt, u.UpdatedAt)
	return wrap("insert user", err)
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	return u, wrap("get user", err)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	return u, wrap("get user by username", err)
}

// ── Secuencias de documentos ────────────────────────────────────────────────

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo entrega contadores por nombre. El upsert bloquea la fila hasta el fin de la tx,
// así que dos transacciones nunca reciben el mismo número.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el repositorio de secuencias.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

func (r *SequenceRepo) Next(ctx context.Context, name string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO document_sequences (name, value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = document_sequences.value + 1
		RETURNING value`, name).Scan(&n)
	if err != nil {
		return 0, wrap("next sequence "+name, err)
	}
	return n, nil
}
