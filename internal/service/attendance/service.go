package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glowdesk/salon-backend-go/internal/domain/attendance"
	"github.com/glowdesk/salon-backend-go/internal/domain/staff"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	staff.StaffRepository
	policy attendance.Policy
	now    func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	staffRepo staff.StaffRepository,
	policy attendance.Policy,
	clock func() time.Time,
) attendance.AttendanceService {
	if clock == nil {
		clock = time.Now
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		StaffRepository:      staffRepo,
		policy:               policy,
		now:                  clock,
	}
}

// parsePunch converts an optional submitted punch value for date.
func (s *AttendanceServiceImpl) parsePunch(value *string, date string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := attendance.ParseTimestamp(*value, date, s.policy.Location)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}

// ListMonth implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMonth(ctx context.Context, staffName string, month string) (attendance.MonthRecordsResponse, error) {
	m, err := attendance.ParseMonth(month)
	if err != nil {
		return attendance.MonthRecordsResponse{}, err
	}

	records, err := s.AttendanceRepository.ListByStaffAndMonth(ctx, staffName, m)
	if err != nil {
		return attendance.MonthRecordsResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.ToResponse(r))
	}

	return attendance.MonthRecordsResponse{
		StaffName: staffName,
		MonthYear: m.String(),
		Records:   responses,
	}, nil
}

// GetStats implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetStats(ctx context.Context, staffName string, month string) (attendance.MonthlyStats, error) {
	m, err := attendance.ParseMonth(month)
	if err != nil {
		return attendance.MonthlyStats{}, err
	}

	records, err := s.AttendanceRepository.ListByStaffAndMonth(ctx, staffName, m)
	if err != nil {
		return attendance.MonthlyStats{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return AggregateMonth(staffName, m, records, s.policy), nil
}

// GetAllStaffStats implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAllStaffStats(ctx context.Context, staffList []staff.Member, month string) ([]attendance.MonthlyStats, error) {
	if _, err := attendance.ParseMonth(month); err != nil {
		return nil, err
	}

	stats := make([]attendance.MonthlyStats, 0, len(staffList))
	for _, member := range staffList {
		st, err := s.GetStats(ctx, member.Name, month)
		if err != nil {
			return nil, fmt.Errorf("stats for %s: %w", member.Name, err)
		}
		stats = append(stats, st)
	}
	return stats, nil
}

// DeleteRecord implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteRecord(ctx context.Context, staffName string, date string) error {
	if _, err := attendance.MonthOf(date); err != nil {
		return err
	}

	if err := s.AttendanceRepository.Delete(ctx, staffName, date); err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	return nil
}
