package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/glowdesk/salon-backend-go/internal/domain/attendance"
	"github.com/glowdesk/salon-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceReturning = `
	id::text, staff_id, staff_name, to_char(date, 'YYYY-MM-DD'),
	punch_in, punch_out, work_hours, status, created_at, updated_at
`

// GetByStaffAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByStaffAndDate(ctx context.Context, staffName string, date string) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceReturning + `
		FROM attendance
		WHERE staff_name = $1
		  AND date = $2::date
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, staffName, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	return &rec, nil
}

// Save implements attendance.AttendanceRepository.
func (a *attendanceRepository) Save(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance (id, staff_id, staff_name, date, punch_in, punch_out, work_hours, status)
		VALUES ($8::uuid, $1, $2, $3::date, $4, $5, $6, $7)
		ON CONFLICT (staff_name, date) DO UPDATE SET
			staff_id = EXCLUDED.staff_id,
			punch_in = EXCLUDED.punch_in,
			punch_out = EXCLUDED.punch_out,
			work_hours = EXCLUDED.work_hours,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING ` + attendanceReturning

	saved, err := scanRecord(q.QueryRow(ctx, query,
		rec.StaffID,
		rec.StaffName,
		rec.Date,
		rec.PunchIn,
		rec.PunchOut,
		rec.WorkHours,
		string(rec.Status),
		uuid.Must(uuid.NewV7()).String(),
	))
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to save attendance: %w", err)
	}
	return saved, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, staffName string, date string, patch attendance.Patch) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}

	query := `
		UPDATE attendance SET
			punch_in = COALESCE($4, CASE WHEN $3 THEN NULL ELSE punch_in END),
			punch_out = COALESCE($5, CASE WHEN $3 THEN NULL ELSE punch_out END),
			work_hours = COALESCE($6, work_hours),
			status = COALESCE($7, status),
			updated_at = NOW()
		WHERE staff_name = $1
		  AND date = $2::date
		RETURNING ` + attendanceReturning

	updated, err := scanRecord(q.QueryRow(ctx, query,
		staffName,
		date,
		patch.ClearPunchTimes,
		patch.PunchIn,
		patch.PunchOut,
		patch.WorkHours,
		status,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	return updated, nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, staffName string, date string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance WHERE staff_name = $1 AND date = $2::date`, staffName, date)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

// ListByStaffAndMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByStaffAndMonth(ctx context.Context, staffName string, month attendance.Month) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceReturning + `
		FROM attendance
		WHERE staff_name = $1
		  AND date BETWEEN $2::date AND $3::date
		ORDER BY date DESC
	`

	rows, err := q.Query(ctx, query, staffName, month.FirstDate(), month.LastDate())
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := []attendance.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var (
		rec    attendance.Record
		status string
	)
	err := row.Scan(
		&rec.ID, &rec.StaffID, &rec.StaffName, &rec.Date,
		&rec.PunchIn, &rec.PunchOut, &rec.WorkHours, &status,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, err
	}
	rec.Status = attendance.Status(status)
	return rec, nil
}
