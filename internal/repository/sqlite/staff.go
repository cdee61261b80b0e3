package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/glowdesk/salon-backend-go/internal/domain/attendance"
	"github.com/glowdesk/salon-backend-go/internal/domain/staff"
	"github.com/shopspring/decimal"
)

type staffRepository struct {
	store *Store
}

func NewStaffRepository(store *Store) staff.StaffRepository {
	return &staffRepository{store: store}
}

const staffColumns = `id, name, role, salary_type, hourly_rate, base_salary, bonus_percentage, active, created_at, updated_at`

// GetByID implements staff.StaffRepository.
func (r *staffRepository) GetByID(ctx context.Context, id string) (staff.Member, error) {
	return r.getOne(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = ?`, id)
}

// GetByName implements staff.StaffRepository.
func (r *staffRepository) GetByName(ctx context.Context, name string) (staff.Member, error) {
	return r.getOne(ctx, `SELECT `+staffColumns+` FROM staff WHERE name = ?`, name)
}

// List implements staff.StaffRepository.
func (r *staffRepository) List(ctx context.Context) ([]staff.Member, error) {
	return r.list(ctx, `SELECT `+staffColumns+` FROM staff ORDER BY name`)
}

// ListActive implements staff.StaffRepository.
func (r *staffRepository) ListActive(ctx context.Context) ([]staff.Member, error) {
	return r.list(ctx, `SELECT `+staffColumns+` FROM staff WHERE active = 1 ORDER BY name`)
}

// Upsert implements staff.StaffRepository.
func (r *staffRepository) Upsert(ctx context.Context, m staff.Member) (staff.Member, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if m.ID == "" {
		m.ID = newID()
	}
	if m.SalaryType != staff.SalaryTypeHourly && m.SalaryType != staff.SalaryTypeFixed {
		return staff.Member{}, fmt.Errorf("%w: %q", staff.ErrInvalidSalaryType, m.SalaryType)
	}
	now := time.Now().UTC()

	baseSalary, bonus := nullDecimal(m.BaseSalary), nullDecimal(m.BonusPercentage)

	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO staff (`+staffColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			role = excluded.role,
			salary_type = excluded.salary_type,
			hourly_rate = excluded.hourly_rate,
			base_salary = excluded.base_salary,
			bonus_percentage = excluded.bonus_percentage,
			active = excluded.active,
			updated_at = excluded.updated_at
	`,
		m.ID, m.Name, m.Role, string(m.SalaryType),
		m.HourlyRate.String(), baseSalary, bonus, m.Active,
		attendance.FormatTimestamp(now), attendance.FormatTimestamp(now),
	)
	if err != nil {
		return staff.Member{}, fmt.Errorf("failed to upsert staff: %w", err)
	}

	return r.getOneLocked(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = ?`, m.ID)
}

func (r *staffRepository) getOne(ctx context.Context, query string, arg any) (staff.Member, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.getOneLocked(ctx, query, arg)
}

func (r *staffRepository) getOneLocked(ctx context.Context, query string, arg any) (staff.Member, error) {
	m, err := scanMember(r.store.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return staff.Member{}, staff.ErrStaffNotFound
		}
		return staff.Member{}, fmt.Errorf("failed to get staff: %w", err)
	}
	return m, nil
}

func (r *staffRepository) list(ctx context.Context, query string) ([]staff.Member, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows, err := r.store.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	var members []staff.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (staff.Member, error) {
	var (
		m                    staff.Member
		salaryType           string
		baseSalary, bonus    decimal.NullDecimal
		createdAt, updatedAt string
	)
	if err := row.Scan(
		&m.ID, &m.Name, &m.Role, &salaryType, &m.HourlyRate, &baseSalary,
		&bonus, &m.Active, &createdAt, &updatedAt,
	); err != nil {
		return staff.Member{}, err
	}

	m.SalaryType = staff.SalaryType(salaryType)
	m.BaseSalary = decimalPtr(baseSalary)
	m.BonusPercentage = decimalPtr(bonus)
	m.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	m.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return m, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
