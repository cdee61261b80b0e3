package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/glowdesk/salon-backend-go/internal/domain/attendance"
	"github.com/glowdesk/salon-backend-go/internal/domain/staff"
)

type AttendanceJobs struct {
	attendanceRepo    attendance.AttendanceRepository
	attendanceService attendance.AttendanceService
	staffRepo         staff.StaffRepository
	policy            attendance.Policy
	now               func() time.Time

	mu         sync.Mutex
	lastMarked string
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	attendanceService attendance.AttendanceService,
	staffRepo staff.StaffRepository,
	policy attendance.Policy,
	clock func() time.Time,
) *AttendanceJobs {
	if clock == nil {
		clock = time.Now
	}
	return &AttendanceJobs{
		attendanceRepo:    attendanceRepo,
		attendanceService: attendanceService,
		staffRepo:         staffRepo,
		policy:            policy,
		now:               clock,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_staff", time.Hour, j.MarkAbsentStaff)
}

// MarkAbsentStaff gives every active member without a record for yesterday
// an absent mark. A day is done once every member was marked; failed members
// are retried on the next run.
func (j *AttendanceJobs) MarkAbsentStaff(ctx context.Context) error {
	yesterday := j.policy.In(j.now()).AddDate(0, 0, -1).Format(attendance.DateLayout)

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.lastMarked == yesterday {
		return nil
	}

	slog.Info("Cron: Starting mark absent staff job", "date", yesterday)

	members, err := j.staffRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active staff: %w", err)
	}

	marked := 0
	var errs []error
	for _, m := range members {
		existing, err := j.attendanceRepo.GetByStaffAndDate(ctx, m.Name, yesterday)
		if err != nil {
			return fmt.Errorf("failed to get attendance for %s: %w", m.Name, err)
		}
		if existing != nil {
			continue
		}

		_, err = j.attendanceService.MarkManual(ctx, attendance.ManualMarkRequest{
			StaffID:   m.ID,
			StaffName: m.Name,
			Date:      yesterday,
			Status:    string(attendance.StatusAbsent),
		})
		if err != nil {
			slog.Error("Cron: Failed to mark absent", "staff", m.Name, "date", yesterday, "error", err)
			errs = append(errs, fmt.Errorf("mark %s absent: %w", m.Name, err))
			continue
		}
		marked++
	}

	slog.Info("Cron: Marked absent staff", "date", yesterday, "count", marked, "failed", len(errs))
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	j.lastMarked = yesterday
	return nil
}
