package attendance

import (
	"github.com/glowdesk/salon-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// HalfDayHours is the threshold under which a present day also counts as a
// half day.
const HalfDayHours = 4.0

// MonthScan is the raw tally of one staff member's records for a month.
// Aggregation and payroll are both built on it.
type MonthScan struct {
	WorkDays     int
	PresentDays  int
	AbsentDays   int
	HalfDays     int
	LateArrivals int
	TotalHours   float64
}

// ScanMonth tallies records. WorkDays counts records with an hour source,
// whatever their status; absent records never contribute hours.
func ScanMonth(records []attendance.Record, policy attendance.Policy) MonthScan {
	var scan MonthScan

	for _, r := range records {
		if r.PunchIn != nil && policy.IsLate(*r.PunchIn) {
			scan.LateArrivals++
		}

		if r.Status == attendance.StatusAbsent {
			scan.AbsentDays++
			continue
		}

		hours, hasHours := r.Hours()

		if r.Status == attendance.StatusPresent {
			scan.PresentDays++
			if hours < HalfDayHours {
				scan.HalfDays++
			}
		}

		if hasHours {
			scan.WorkDays++
			scan.TotalHours += hours
		}
	}

	return scan
}

// AttendancePercentage is present / (workDays + absent) * 100, rounded to two
// places and kept within [0, 100].
func (s MonthScan) AttendancePercentage() float64 {
	denominator := s.WorkDays + s.AbsentDays
	if denominator == 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(s.PresentDays)).
		Div(decimal.NewFromInt(int64(denominator))).
		Mul(decimal.NewFromInt(100))
	if pct.GreaterThan(decimal.NewFromInt(100)) {
		pct = decimal.NewFromInt(100)
	}
	return pct.Round(2).InexactFloat64()
}

// AverageHoursPerDay is TotalHours / WorkDays, zero when nothing was worked.
func (s MonthScan) AverageHoursPerDay() float64 {
	if s.WorkDays == 0 {
		return 0
	}
	return Round2(s.TotalHours / float64(s.WorkDays))
}

// AggregateMonth builds the monthly statistics for one staff member.
func AggregateMonth(staffName string, month attendance.Month, records []attendance.Record, policy attendance.Policy) attendance.MonthlyStats {
	scan := ScanMonth(records, policy)

	return attendance.MonthlyStats{
		StaffName:              staffName,
		MonthYear:              month.String(),
		TotalDaysInMonth:       month.Days(),
		TotalPresent:           scan.PresentDays,
		TotalAbsent:            scan.AbsentDays,
		WorkDays:               scan.WorkDays,
		HalfDays:               scan.HalfDays,
		TotalWorkHours:         Round2(scan.TotalHours),
		AverageWorkHoursPerDay: scan.AverageHoursPerDay(),
		AttendancePercentage:   scan.AttendancePercentage(),
		LateArrivals:           scan.LateArrivals,
	}
}

// Round2 rounds half away from zero to two decimal places.
func Round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
