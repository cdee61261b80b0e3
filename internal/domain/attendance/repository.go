package attendance

import (
	"context"
)

// AttendanceRepository is the attendance record store, keyed by
// (staffName, date). Concurrent writers get last-write-wins.
type AttendanceRepository interface {
	// GetByStaffAndDate returns nil, nil when no record exists.
	GetByStaffAndDate(ctx context.Context, staffName string, date string) (*Record, error)

	// Save creates the record for (StaffName, Date) or replaces it entirely.
	Save(ctx context.Context, record Record) (Record, error)

	// Update merges patch into an existing record.
	// Returns ErrRecordNotFound when the key is missing.
	Update(ctx context.Context, staffName string, date string, patch Patch) (Record, error)

	// Delete removes the record. Returns ErrRecordNotFound when the key is missing.
	Delete(ctx context.Context, staffName string, date string) error

	// ListByStaffAndMonth returns the month's records, newest first.
	ListByStaffAndMonth(ctx context.Context, staffName string, month Month) ([]Record, error)
}
