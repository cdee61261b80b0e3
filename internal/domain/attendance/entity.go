package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLeave   Status = "leave"
	StatusHalfDay Status = "half-day"
)

var validStatuses = []string{string(StatusPresent), string(StatusAbsent), string(StatusLeave), string(StatusHalfDay)}

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLeave, StatusHalfDay:
		return true
	}
	return false
}

// ForbidsPunchTimes reports whether records with this status must carry no
// punch timestamps.
func (s Status) ForbidsPunchTimes() bool {
	return s == StatusAbsent || s == StatusLeave
}

// Record is one staff member's attendance for one calendar day.
// (StaffName, Date) is unique.
type Record struct {
	ID        string
	StaffID   string
	StaffName string
	Date      string // YYYY-MM-DD
	PunchIn   *time.Time
	PunchOut  *time.Time
	WorkHours *float64
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Hours returns the hours this record contributes and whether it has an hour
// source at all. Stored WorkHours wins over the punch pair; a punch pair in
// the wrong order is clamped to zero.
func (r Record) Hours() (float64, bool) {
	if r.WorkHours != nil {
		return *r.WorkHours, true
	}
	if r.PunchIn != nil && r.PunchOut != nil {
		hours := r.PunchOut.Sub(*r.PunchIn).Hours()
		if hours < 0 {
			hours = 0
		}
		return hours, true
	}
	return 0, false
}

type PunchState string

const (
	StateNotPunchedIn PunchState = "NOT_PUNCHED_IN"
	StatePunchedIn    PunchState = "PUNCHED_IN"
	StatePunchedOut   PunchState = "PUNCHED_OUT"
)

// StateOf derives the punch clock state from today's record, which may be nil.
func StateOf(r *Record) PunchState {
	switch {
	case r == nil || r.PunchIn == nil:
		return StateNotPunchedIn
	case r.PunchOut == nil:
		return StatePunchedIn
	default:
		return StatePunchedOut
	}
}

// Patch is a field-level correction. Nil fields are left untouched.
type Patch struct {
	PunchIn         *time.Time
	PunchOut        *time.Time
	WorkHours       *float64
	Status          *Status
	ClearPunchTimes bool
}

// Apply returns a copy of r with the patch merged in.
func (p Patch) Apply(r Record) Record {
	if p.ClearPunchTimes {
		r.PunchIn = nil
		r.PunchOut = nil
	}
	if p.PunchIn != nil {
		r.PunchIn = p.PunchIn
	}
	if p.PunchOut != nil {
		r.PunchOut = p.PunchOut
	}
	if p.WorkHours != nil {
		r.WorkHours = p.WorkHours
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	return r
}

// Policy holds the attendance rules that come from configuration.
type Policy struct {
	// LateAfter is the offset from local midnight after which a punch-in
	// counts as a late arrival.
	LateAfter time.Duration
	Location  *time.Location
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// IsLate reports whether punchIn falls strictly after the daily threshold.
func (p Policy) IsLate(punchIn time.Time) bool {
	local := punchIn.In(p.location())
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
	return local.Sub(midnight) > p.LateAfter
}

// Today returns the policy-local calendar date of now as YYYY-MM-DD.
func (p Policy) Today(now time.Time) string {
	return now.In(p.location()).Format(DateLayout)
}

// In converts t to the policy location.
func (p Policy) In(t time.Time) time.Time {
	return t.In(p.location())
}

// MonthlyStats is derived on every read and never stored.
type MonthlyStats struct {
	StaffName              string  `json:"staff_name"`
	MonthYear              string  `json:"month_year"`
	TotalDaysInMonth       int     `json:"total_days_in_month"`
	TotalPresent           int     `json:"total_present"`
	TotalAbsent            int     `json:"total_absent"`
	WorkDays               int     `json:"work_days"`
	HalfDays               int     `json:"half_days"`
	TotalWorkHours         float64 `json:"total_work_hours"`
	AverageWorkHoursPerDay float64 `json:"average_work_hours_per_day"`
	AttendancePercentage   float64 `json:"attendance_percentage"`
	LateArrivals           int     `json:"late_arrivals"`
}
