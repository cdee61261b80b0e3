package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/glowdesk/salon-backend-go/internal/domain/attendance"
	"github.com/glowdesk/salon-backend-go/internal/pkg/validator"
)

// MarkManual implements attendance.AttendanceService.
// The whole record for the date is replaced, whatever the punch state.
func (s *AttendanceServiceImpl) MarkManual(ctx context.Context, req attendance.ManualMarkRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	punchIn, err := s.parsePunch(req.PunchInTime, req.Date)
	if err != nil {
		return attendance.RecordResponse{}, punchFieldError("punch_in_time", err)
	}
	punchOut, err := s.parsePunch(req.PunchOutTime, req.Date)
	if err != nil {
		return attendance.RecordResponse{}, punchFieldError("punch_out_time", err)
	}

	saved, err := s.AttendanceRepository.Save(ctx, attendance.Record{
		StaffID:   req.StaffID,
		StaffName: req.StaffName,
		Date:      req.Date,
		PunchIn:   punchIn,
		PunchOut:  punchOut,
		Status:    attendance.Status(req.Status),
	})
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to save attendance: %w", err)
	}

	return attendance.ToResponse(saved), nil
}

// BulkMark implements attendance.AttendanceService.
// Pairs are attempted one by one; a failed pair does not stop the batch.
func (s *AttendanceServiceImpl) BulkMark(ctx context.Context, req attendance.BulkMarkRequest) (attendance.BulkMarkResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BulkMarkResponse{}, err
	}

	staffIDs := uniqueSorted(req.StaffIDs)
	dates := uniqueSorted(req.Dates)

	result := attendance.BulkMarkResponse{
		Results: make([]attendance.BulkMarkItem, 0, len(staffIDs)*len(dates)),
	}

	for _, staffID := range staffIDs {
		member, lookupErr := s.StaffRepository.GetByID(ctx, staffID)

		for _, date := range dates {
			item := attendance.BulkMarkItem{StaffID: staffID, Date: date}
			result.Attempted++

			if lookupErr != nil {
				item.Error = lookupErr.Error()
				result.Failed++
				result.Results = append(result.Results, item)
				slog.Warn("Bulk mark pair failed", "staff_id", staffID, "date", date, "error", lookupErr)
				continue
			}

			item.StaffName = member.Name
			_, err := s.MarkManual(ctx, attendance.ManualMarkRequest{
				StaffID:      member.ID,
				StaffName:    member.Name,
				Date:         date,
				PunchInTime:  req.PunchInTime,
				PunchOutTime: req.PunchOutTime,
				Status:       req.Status,
			})
			if err != nil {
				item.Error = err.Error()
				result.Failed++
				slog.Warn("Bulk mark pair failed", "staff_id", staffID, "date", date, "error", err)
			} else {
				item.OK = true
				result.Succeeded++
			}
			result.Results = append(result.Results, item)
		}
	}

	slog.Info("Bulk mark finished",
		"attempted", result.Attempted,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
	)

	return result, nil
}

// UpdateRecord implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateRecord(ctx context.Context, req attendance.UpdateRecordRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	existing, err := s.AttendanceRepository.GetByStaffAndDate(ctx, req.StaffName, req.Date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	if existing == nil {
		return attendance.RecordResponse{}, attendance.ErrRecordNotFound
	}

	patch := attendance.Patch{
		WorkHours:       req.WorkHours,
		ClearPunchTimes: req.ClearPunchTimes,
	}
	if patch.PunchIn, err = s.parsePunch(req.PunchInTime, req.Date); err != nil {
		return attendance.RecordResponse{}, punchFieldError("punch_in_time", err)
	}
	if patch.PunchOut, err = s.parsePunch(req.PunchOutTime, req.Date); err != nil {
		return attendance.RecordResponse{}, punchFieldError("punch_out_time", err)
	}
	if req.Status != nil {
		status := attendance.Status(*req.Status)
		patch.Status = &status
	}

	merged := patch.Apply(*existing)
	if merged.Status.ForbidsPunchTimes() && (merged.PunchIn != nil || merged.PunchOut != nil) {
		return attendance.RecordResponse{}, validator.ValidationErrors{{
			Field:   "status",
			Message: "status " + string(merged.Status) + " requires empty punch times; set clear_punch_times",
		}}
	}

	updated, err := s.AttendanceRepository.Update(ctx, req.StaffName, req.Date, patch)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.RecordResponse{}, attendance.ErrRecordNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return attendance.ToResponse(updated), nil
}

func punchFieldError(field string, err error) error {
	return validator.ValidationErrors{{Field: field, Message: err.Error()}}
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
