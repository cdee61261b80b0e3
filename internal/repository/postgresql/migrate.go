package postgresql

import (
	"context"
	"fmt"

	"github.com/glowdesk/salon-backend-go/internal/pkg/database"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS staff (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL DEFAULT '',
		salary_type TEXT NOT NULL CHECK (salary_type IN ('hourly', 'fixed')),
		hourly_rate NUMERIC(12, 2) NOT NULL DEFAULT 0,
		base_salary NUMERIC(12, 2),
		bonus_percentage NUMERIC(5, 2),
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS attendance (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		staff_id TEXT NOT NULL,
		staff_name TEXT NOT NULL,
		date DATE NOT NULL,
		punch_in TIMESTAMPTZ,
		punch_out TIMESTAMPTZ,
		work_hours DOUBLE PRECISION,
		status TEXT NOT NULL CHECK (status IN ('present', 'absent', 'leave', 'half-day')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (staff_name, date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_staff_date ON attendance(staff_name, date)`,
}

// Migrate applies the schema in a single transaction.
func Migrate(ctx context.Context, db *database.DB) error {
	return WithTransaction(ctx, db, func(ctx context.Context) error {
		q := GetQuerier(ctx, db)
		for _, stmt := range schema {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}
		return nil
	})
}
