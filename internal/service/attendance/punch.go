package attendance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/glowdesk/salon-backend-go/internal/domain/attendance"
)

// PunchIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PunchIn(ctx context.Context, req attendance.PunchRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}

	now := s.now()
	today := s.policy.Today(now)

	existing, err := s.AttendanceRepository.GetByStaffAndDate(ctx, req.StaffName, today)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	switch attendance.StateOf(existing) {
	case attendance.StatePunchedIn:
		return attendance.PunchResponse{}, attendance.ErrAlreadyPunchedIn
	case attendance.StatePunchedOut:
		// Shift already closed; nothing to write.
		slog.Info("Duplicate punch-in ignored", "staff", req.StaffName, "date", today)
		return attendance.PunchResponse{
			State:  attendance.StatePunchedOut,
			Record: attendance.ToResponse(*existing),
		}, nil
	}

	record := attendance.Record{StaffName: req.StaffName, Date: today}
	if existing != nil {
		record = *existing
	}
	punchIn := now.UTC()
	record.StaffID = req.StaffID
	record.PunchIn = &punchIn
	record.PunchOut = nil
	record.Status = attendance.StatusPresent

	saved, err := s.AttendanceRepository.Save(ctx, record)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to save punch-in: %w", err)
	}

	return attendance.PunchResponse{
		State:  attendance.StatePunchedIn,
		Record: attendance.ToResponse(saved),
	}, nil
}

// PunchOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PunchOut(ctx context.Context, req attendance.PunchRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}

	now := s.now()
	today := s.policy.Today(now)

	existing, err := s.AttendanceRepository.GetByStaffAndDate(ctx, req.StaffName, today)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	switch attendance.StateOf(existing) {
	case attendance.StateNotPunchedIn:
		return attendance.PunchResponse{}, attendance.ErrNotPunchedInYet
	case attendance.StatePunchedOut:
		return attendance.PunchResponse{}, attendance.ErrAlreadyPunchedOut
	}

	punchOut := now.UTC()
	saved, err := s.AttendanceRepository.Update(ctx, req.StaffName, today, attendance.Patch{PunchOut: &punchOut})
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to save punch-out: %w", err)
	}

	return attendance.PunchResponse{
		State:  attendance.StatePunchedOut,
		Record: attendance.ToResponse(saved),
	}, nil
}

// GetTodayStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetTodayStatus(ctx context.Context, req attendance.PunchRequest) (attendance.TodayStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.TodayStatusResponse{}, err
	}

	today := s.policy.Today(s.now())
	existing, err := s.AttendanceRepository.GetByStaffAndDate(ctx, req.StaffName, today)
	if err != nil {
		return attendance.TodayStatusResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	state := attendance.StateOf(existing)
	return attendance.TodayStatusResponse{
		Date:          today,
		HasPunchedIn:  state != attendance.StateNotPunchedIn,
		HasPunchedOut: state == attendance.StatePunchedOut,
	}, nil
}
