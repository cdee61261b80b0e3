package payroll

import (
	"context"
	"fmt"
	"io"

	"github.com/glowdesk/salon-backend-go/internal/domain/attendance"
	"github.com/glowdesk/salon-backend-go/internal/domain/payroll"
	"github.com/glowdesk/salon-backend-go/internal/domain/staff"
	attendancesvc "github.com/glowdesk/salon-backend-go/internal/service/attendance"
)

type PayrollServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	staffRepo      staff.StaffRepository
	policy         attendance.Policy
}

func NewPayrollService(
	attendanceRepo attendance.AttendanceRepository,
	staffRepo staff.StaffRepository,
	policy attendance.Policy,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		attendanceRepo: attendanceRepo,
		staffRepo:      staffRepo,
		policy:         policy,
	}
}

func parsePeriod(month string) (attendance.Month, error) {
	m, err := attendance.ParseMonth(month)
	if err != nil {
		return attendance.Month{}, fmt.Errorf("%w: %q", payroll.ErrInvalidPeriod, month)
	}
	return m, nil
}

func (s *PayrollServiceImpl) compute(ctx context.Context, member staff.Member, m attendance.Month) (payroll.Result, error) {
	records, err := s.attendanceRepo.ListByStaffAndMonth(ctx, member.Name, m)
	if err != nil {
		return payroll.Result{}, fmt.Errorf("failed to list attendance for %s: %w", member.Name, err)
	}
	return Calculate(member, m, attendancesvc.ScanMonth(records, s.policy))
}

// ComputePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) ComputePayroll(ctx context.Context, staffID string, month string) (payroll.Result, error) {
	m, err := parsePeriod(month)
	if err != nil {
		return payroll.Result{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return payroll.Result{}, err
	}

	return s.compute(ctx, member, m)
}

// ComputeAllStaffPayroll implements payroll.PayrollService.
// Inactive members of staffList are skipped.
func (s *PayrollServiceImpl) ComputeAllStaffPayroll(ctx context.Context, staffList []staff.Member, month string) (payroll.Summary, error) {
	m, err := parsePeriod(month)
	if err != nil {
		return payroll.Summary{}, err
	}

	summary := payroll.Summary{
		MonthYear: m.String(),
		Results:   []payroll.Result{},
	}
	for _, member := range staffList {
		if !member.Active {
			continue
		}
		result, err := s.compute(ctx, member, m)
		if err != nil {
			return payroll.Summary{}, err
		}
		summary.Results = append(summary.Results, result)
		summary.Totals = summary.Totals.Add(result)
	}
	summary.StaffCount = len(summary.Results)

	return summary, nil
}

// ExportSummaryXLSX implements payroll.PayrollService.
func (s *PayrollServiceImpl) ExportSummaryXLSX(ctx context.Context, month string, w io.Writer) error {
	members, err := s.staffRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list staff: %w", err)
	}

	summary, err := s.ComputeAllStaffPayroll(ctx, members, month)
	if err != nil {
		return err
	}

	return WriteSummaryXLSX(w, summary)
}
