package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/glowdesk/salon-backend-go/internal/domain/attendance"
)

type attendanceRepository struct {
	store *Store
	now   func() time.Time
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &attendanceRepository{store: store, now: time.Now}
}

const attendanceColumns = `id, staff_id, staff_name, date, punch_in, punch_out, work_hours, status, created_at, updated_at`

// GetByStaffAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByStaffAndDate(ctx context.Context, staffName string, date string) (*attendance.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.get(ctx, r.store.db, staffName, date)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *attendanceRepository) get(ctx context.Context, q queryRower, staffName, date string) (*attendance.Record, error) {
	rec, err := scanRecord(q.QueryRowContext(ctx,
		`SELECT `+attendanceColumns+` FROM attendance WHERE staff_name = ? AND date = ?`,
		staffName, date,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	return &rec, nil
}

// Save implements attendance.AttendanceRepository.
func (r *attendanceRepository) Save(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := attendance.FormatTimestamp(r.now())

	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO attendance (`+attendanceColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(staff_name, date) DO UPDATE SET
			staff_id = excluded.staff_id,
			punch_in = excluded.punch_in,
			punch_out = excluded.punch_out,
			work_hours = excluded.work_hours,
			status = excluded.status,
			updated_at = excluded.updated_at
	`,
		newID(), rec.StaffID, rec.StaffName, rec.Date,
		nullTimestamp(rec.PunchIn), nullTimestamp(rec.PunchOut), nullFloat(rec.WorkHours),
		string(rec.Status), now, now,
	)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to save attendance: %w", err)
	}

	saved, err := r.get(ctx, r.store.db, rec.StaffName, rec.Date)
	if err != nil {
		return attendance.Record{}, err
	}
	return *saved, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, staffName string, date string, patch attendance.Patch) (attendance.Record, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := r.get(ctx, tx, staffName, date)
	if err != nil {
		return attendance.Record{}, err
	}
	if existing == nil {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}

	merged := patch.Apply(*existing)
	_, err = tx.ExecContext(ctx, `
		UPDATE attendance
		SET punch_in = ?, punch_out = ?, work_hours = ?, status = ?, updated_at = ?
		WHERE staff_name = ? AND date = ?
	`,
		nullTimestamp(merged.PunchIn), nullTimestamp(merged.PunchOut), nullFloat(merged.WorkHours),
		string(merged.Status), attendance.FormatTimestamp(r.now()),
		staffName, date,
	)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	updated, err := r.get(ctx, tx, staffName, date)
	if err != nil {
		return attendance.Record{}, err
	}

	if err := tx.Commit(); err != nil {
		return attendance.Record{}, fmt.Errorf("commit transaction: %w", err)
	}
	return *updated, nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepository) Delete(ctx context.Context, staffName string, date string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	res, err := r.store.db.ExecContext(ctx,
		`DELETE FROM attendance WHERE staff_name = ? AND date = ?`, staffName, date)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if n == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

// ListByStaffAndMonth implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByStaffAndMonth(ctx context.Context, staffName string, month attendance.Month) ([]attendance.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows, err := r.store.db.QueryContext(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance
		WHERE staff_name = ? AND date BETWEEN ? AND ?
		ORDER BY date DESC
	`, staffName, month.FirstDate(), month.LastDate())
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

func scanRecord(row rowScanner) (attendance.Record, error) {
	var (
		rec                  attendance.Record
		status               string
		punchIn, punchOut    sql.NullString
		workHours            sql.NullFloat64
		createdAt, updatedAt string
	)
	if err := row.Scan(
		&rec.ID, &rec.StaffID, &rec.StaffName, &rec.Date,
		&punchIn, &punchOut, &workHours, &status, &createdAt, &updatedAt,
	); err != nil {
		return attendance.Record{}, err
	}

	var err error
	if rec.PunchIn, err = parseNullTimestamp(punchIn, rec.Date); err != nil {
		return attendance.Record{}, err
	}
	if rec.PunchOut, err = parseNullTimestamp(punchOut, rec.Date); err != nil {
		return attendance.Record{}, err
	}
	if workHours.Valid {
		v := workHours.Float64
		rec.WorkHours = &v
	}
	rec.Status = attendance.Status(status)
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return rec, nil
}

func parseNullTimestamp(v sql.NullString, date string) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := attendance.ParseTimestamp(v.String, date, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nullTimestamp(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: attendance.FormatTimestamp(*t), Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
