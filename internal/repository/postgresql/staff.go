package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/glowdesk/salon-backend-go/internal/domain/staff"
	"github.com/glowdesk/salon-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type staffRepositoryImpl struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepositoryImpl{db: db}
}

const staffSelect = `
	SELECT id::text, name, role, salary_type, hourly_rate, base_salary, bonus_percentage,
		   active, created_at, updated_at
	FROM staff
`

// GetByID implements staff.StaffRepository.
func (r *staffRepositoryImpl) GetByID(ctx context.Context, id string) (staff.Member, error) {
	return r.getOne(ctx, staffSelect+` WHERE id::text = $1`, id)
}

// GetByName implements staff.StaffRepository.
func (r *staffRepositoryImpl) GetByName(ctx context.Context, name string) (staff.Member, error) {
	return r.getOne(ctx, staffSelect+` WHERE name = $1`, name)
}

// List implements staff.StaffRepository.
func (r *staffRepositoryImpl) List(ctx context.Context) ([]staff.Member, error) {
	return r.list(ctx, staffSelect+` ORDER BY name`)
}

// ListActive implements staff.StaffRepository.
func (r *staffRepositoryImpl) ListActive(ctx context.Context) ([]staff.Member, error) {
	return r.list(ctx, staffSelect+` WHERE active ORDER BY name`)
}

// Upsert implements staff.StaffRepository.
func (r *staffRepositoryImpl) Upsert(ctx context.Context, m staff.Member) (staff.Member, error) {
	if m.SalaryType != staff.SalaryTypeHourly && m.SalaryType != staff.SalaryTypeFixed {
		return staff.Member{}, fmt.Errorf("%w: %q", staff.ErrInvalidSalaryType, m.SalaryType)
	}

	q := GetQuerier(ctx, r.db)

	var baseSalary, bonus decimal.NullDecimal
	if m.BaseSalary != nil {
		baseSalary = decimal.NewNullDecimal(*m.BaseSalary)
	}
	if m.BonusPercentage != nil {
		bonus = decimal.NewNullDecimal(*m.BonusPercentage)
	}

	query := `
		INSERT INTO staff (id, name, role, salary_type, hourly_rate, base_salary, bonus_percentage, active)
		VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			salary_type = EXCLUDED.salary_type,
			hourly_rate = EXCLUDED.hourly_rate,
			base_salary = EXCLUDED.base_salary,
			bonus_percentage = EXCLUDED.bonus_percentage,
			active = EXCLUDED.active,
			updated_at = NOW()
		RETURNING id::text, name, role, salary_type, hourly_rate, base_salary, bonus_percentage,
				  active, created_at, updated_at
	`

	saved, err := scanMember(q.QueryRow(ctx, query,
		m.ID, m.Name, m.Role, string(m.SalaryType), m.HourlyRate, baseSalary, bonus, m.Active,
	))
	if err != nil {
		return staff.Member{}, fmt.Errorf("failed to upsert staff: %w", err)
	}
	return saved, nil
}

func (r *staffRepositoryImpl) getOne(ctx context.Context, query string, arg string) (staff.Member, error) {
	q := GetQuerier(ctx, r.db)

	m, err := scanMember(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Member{}, staff.ErrStaffNotFound
		}
		return staff.Member{}, fmt.Errorf("failed to get staff: %w", err)
	}
	return m, nil
}

func (r *staffRepositoryImpl) list(ctx context.Context, query string) ([]staff.Member, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query)
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

func scanMember(row pgx.Row) (staff.Member, error) {
	var (
		m          staff.Member
		salaryType string
		baseSalary decimal.NullDecimal
		bonus      decimal.NullDecimal
	)
	err := row.Scan(
		&m.ID, &m.Name, &m.Role, &salaryType, &m.HourlyRate, &baseSalary, &bonus,
		&m.Active, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return staff.Member{}, err
	}

	m.SalaryType = staff.SalaryType(salaryType)
	if baseSalary.Valid {
		v := baseSalary.Decimal
		m.BaseSalary = &v
	}
	if bonus.Valid {
		v := bonus.Decimal
		m.BonusPercentage = &v
	}
	return m, nil
}
