package payroll

import (
	"github.com/shopspring/decimal"
)

// Payroll rules. Fixed for every salon; there is no per-company override.
var (
	StandardHoursPerDay      = decimal.NewFromInt(8)
	OvertimeMultiplier       = decimal.NewFromFloat(1.5)
	BonusAttendanceThreshold = decimal.NewFromInt(95)
	FreeAbsentDays           = 2
	TaxRate                  = decimal.NewFromFloat(0.05)
)

// Result is the payroll breakdown for one staff member and month.
// Derived on demand and never stored.
type Result struct {
	StaffID              string          `json:"staff_id"`
	StaffName            string          `json:"staff_name"`
	Role                 string          `json:"role"`
	SalaryType           string          `json:"salary_type"`
	MonthYear            string          `json:"month_year"`
	WorkDays             int             `json:"work_days"`
	PresentDays          int             `json:"present_days"`
	AbsentDays           int             `json:"absent_days"`
	HalfDays             int             `json:"half_days"`
	TotalHours           float64         `json:"total_hours"`
	StandardHours        float64         `json:"standard_hours"`
	OvertimeHours        float64         `json:"overtime_hours"`
	BasePay              decimal.Decimal `json:"base_pay"`
	OvertimePay          decimal.Decimal `json:"overtime_pay"`
	BonusAmount          decimal.Decimal `json:"bonus_amount"`
	Deductions           decimal.Decimal `json:"deductions"`
	TotalPay             decimal.Decimal `json:"total_pay"`
	Tax                  decimal.Decimal `json:"tax"`
	NetPay               decimal.Decimal `json:"net_pay"`
	AttendancePercentage float64         `json:"attendance_percentage"`
}

// Totals are the column sums shown under the payroll summary table.
type Totals struct {
	BasePay     decimal.Decimal `json:"base_pay"`
	OvertimePay decimal.Decimal `json:"overtime_pay"`
	BonusAmount decimal.Decimal `json:"bonus_amount"`
	Deductions  decimal.Decimal `json:"deductions"`
	NetPay      decimal.Decimal `json:"net_pay"`
}

// Add accumulates one staff result into the totals.
func (t Totals) Add(r Result) Totals {
	return Totals{
		BasePay:     t.BasePay.Add(r.BasePay),
		OvertimePay: t.OvertimePay.Add(r.OvertimePay),
		BonusAmount: t.BonusAmount.Add(r.BonusAmount),
		Deductions:  t.Deductions.Add(r.Deductions),
		NetPay:      t.NetPay.Add(r.NetPay),
	}
}

type Summary struct {
	MonthYear  string   `json:"month_year"`
	StaffCount int      `json:"staff_count"`
	Results    []Result `json:"results"`
	Totals     Totals   `json:"totals"`
}
