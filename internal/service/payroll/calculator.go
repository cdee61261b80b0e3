package payroll

import (
	"fmt"

	"github.com/glowdesk/salon-backend-go/internal/domain/attendance"
	"github.com/glowdesk/salon-backend-go/internal/domain/payroll"
	"github.com/glowdesk/salon-backend-go/internal/domain/staff"
	attendancesvc "github.com/glowdesk/salon-backend-go/internal/service/attendance"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Calculate derives the payroll for one member from the month's attendance
// scan. It is pure: equal inputs give equal results.
func Calculate(member staff.Member, month attendance.Month, scan attendancesvc.MonthScan) (payroll.Result, error) {
	totalHours := decimal.NewFromFloat(scan.TotalHours)
	standardHours := payroll.StandardHoursPerDay.Mul(decimal.NewFromInt(int64(scan.WorkDays)))

	var basePay, overtimeHours, overtimePay decimal.Decimal
	switch member.SalaryType {
	case staff.SalaryTypeHourly:
		basePay = decimal.Min(totalHours, standardHours).Mul(member.HourlyRate)
		overtimeHours = decimal.Max(decimal.Zero, totalHours.Sub(standardHours))
		overtimePay = overtimeHours.Mul(member.HourlyRate).Mul(payroll.OvertimeMultiplier)
	case staff.SalaryTypeFixed:
		if member.BaseSalary != nil {
			basePay = *member.BaseSalary
		}
	default:
		return payroll.Result{}, fmt.Errorf("%w: %q for %s", staff.ErrInvalidSalaryType, member.SalaryType, member.Name)
	}
	basePay = basePay.Round(2)
	overtimePay = overtimePay.Round(2)

	attendancePct := scan.AttendancePercentage()

	bonus := decimal.Zero
	if decimal.NewFromFloat(attendancePct).GreaterThanOrEqual(payroll.BonusAttendanceThreshold) {
		bonus = basePay.Mul(member.Bonus()).Div(hundred).Round(2)
	}

	// Deductions use hourlyRate for fixed salaries too.
	deductions := decimal.Zero
	if scan.AbsentDays > payroll.FreeAbsentDays {
		chargeable := decimal.NewFromInt(int64(scan.AbsentDays - payroll.FreeAbsentDays))
		deductions = chargeable.Mul(member.HourlyRate).Mul(payroll.StandardHoursPerDay).Round(2)
	}

	totalPay := basePay.Add(overtimePay).Add(bonus).Sub(deductions)
	tax := totalPay.Mul(payroll.TaxRate).Round(2)

	return payroll.Result{
		StaffID:              member.ID,
		StaffName:            member.Name,
		Role:                 member.Role,
		SalaryType:           string(member.SalaryType),
		MonthYear:            month.String(),
		WorkDays:             scan.WorkDays,
		PresentDays:          scan.PresentDays,
		AbsentDays:           scan.AbsentDays,
		HalfDays:             scan.HalfDays,
		TotalHours:           attendancesvc.Round2(scan.TotalHours),
		StandardHours:        standardHours.InexactFloat64(),
		OvertimeHours:        overtimeHours.Round(2).InexactFloat64(),
		BasePay:              basePay,
		OvertimePay:          overtimePay,
		BonusAmount:          bonus,
		Deductions:           deductions,
		TotalPay:             totalPay,
		Tax:                  tax,
		NetPay:               totalPay.Sub(tax),
		AttendancePercentage: attendancePct,
	}, nil
}
