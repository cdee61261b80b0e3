package attendance

import (
	"context"
	"io"

	"github.com/glowdesk/salon-backend-go/internal/domain/staff"
)

// AttendanceService defines the punch clock, manual editing and monthly
// aggregation operations.
type AttendanceService interface {
	// PunchIn starts today's shift for a staff member
	PunchIn(ctx context.Context, req PunchRequest) (PunchResponse, error)

	// PunchOut closes today's open shift
	PunchOut(ctx context.Context, req PunchRequest) (PunchResponse, error)

	GetTodayStatus(ctx context.Context, req PunchRequest) (TodayStatusResponse, error)

	// MarkManual overwrites the record for one date, bypassing the punch clock
	MarkManual(ctx context.Context, req ManualMarkRequest) (RecordResponse, error)

	// BulkMark applies MarkManual to every (staff, date) pair independently
	BulkMark(ctx context.Context, req BulkMarkRequest) (BulkMarkResponse, error)

	// UpdateRecord applies a field-level correction
	UpdateRecord(ctx context.Context, req UpdateRecordRequest) (RecordResponse, error)

	DeleteRecord(ctx context.Context, staffName string, date string) error

	ListMonth(ctx context.Context, staffName string, month string) (MonthRecordsResponse, error)

	GetStats(ctx context.Context, staffName string, month string) (MonthlyStats, error)
	GetAllStaffStats(ctx context.Context, staffList []staff.Member, month string) ([]MonthlyStats, error)

	// ExportMonthCSV writes one row per calendar day of the month
	ExportMonthCSV(ctx context.Context, staffName string, month string, w io.Writer) error
}
