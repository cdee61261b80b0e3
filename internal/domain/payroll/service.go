package payroll

import (
	"context"
	"io"

	"github.com/glowdesk/salon-backend-go/internal/domain/staff"
)

// PayrollService derives payroll from attendance. It never writes.
type PayrollService interface {
	// ComputePayroll returns the breakdown for one staff member and month
	ComputePayroll(ctx context.Context, staffID string, month string) (Result, error)

	// ComputeAllStaffPayroll covers every active member of staffList
	ComputeAllStaffPayroll(ctx context.Context, staffList []staff.Member, month string) (Summary, error)

	// ExportSummaryXLSX writes the active-staff summary as a spreadsheet
	ExportSummaryXLSX(ctx context.Context, month string, w io.Writer) error
}
