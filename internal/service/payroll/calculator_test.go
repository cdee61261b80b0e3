package payroll

import (
	"testing"

	"github.com/glowdesk/salon-backend-go/internal/domain/attendance"
	"github.com/glowdesk/salon-backend-go/internal/domain/payroll"
	"github.com/glowdesk/salon-backend-go/internal/domain/staff"
	attendancesvc "github.com/glowdesk/salon-backend-go/internal/service/attendance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var march = attendance.Month{Year: 2024, Month: 3}

func hourlyMember(rate int64) staff.Member {
	return staff.Member{
		ID:         "s1",
		Name:       "Maya",
		Role:       "stylist",
		SalaryType: staff.SalaryTypeHourly,
		HourlyRate: decimal.NewFromInt(rate),
		Active:     true,
	}
}

func calc(t *testing.T, member staff.Member, month attendance.Month, scan attendancesvc.MonthScan) payroll.Result {
	t.Helper()
	r, err := Calculate(member, month, scan)
	require.NoError(t, err)
	return r
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func TestCalculate_HourlyWithOvertime(t *testing.T) {
	scan := attendancesvc.MonthScan{WorkDays: 20, PresentDays: 20, TotalHours: 170}

	r := calc(t, hourlyMember(150), march, scan)

	assert.Equal(t, 160.0, r.StandardHours)
	assert.Equal(t, 10.0, r.OvertimeHours)
	assertMoney(t, "24000", r.BasePay, "base")
	assertMoney(t, "2250", r.OvertimePay, "overtime")
	assertMoney(t, "1200", r.BonusAmount, "bonus")
	assertMoney(t, "0", r.Deductions, "deductions")
	assertMoney(t, "27450", r.TotalPay, "total")
	assertMoney(t, "1372.5", r.Tax, "tax")
	assertMoney(t, "26077.5", r.NetPay, "net")
	assert.Equal(t, "2024-03", r.MonthYear)
}

func TestCalculate_UnderStandardHoursHasNoOvertime(t *testing.T) {
	scan := attendancesvc.MonthScan{WorkDays: 10, PresentDays: 10, TotalHours: 75.5}

	r := calc(t, hourlyMember(100), march, scan)

	assertMoney(t, "7550", r.BasePay, "base")
	assert.Equal(t, 0.0, r.OvertimeHours)
	assertMoney(t, "0", r.OvertimePay, "overtime")
}

func TestCalculate_BonusThreshold(t *testing.T) {
	below := calc(t, hourlyMember(150), march, attendancesvc.MonthScan{
		WorkDays: 20, PresentDays: 19, AbsentDays: 1, TotalHours: 160,
	})
	assert.Equal(t, 90.48, below.AttendancePercentage)
	assertMoney(t, "0", below.BonusAmount, "bonus below threshold")

	full := calc(t, hourlyMember(150), march, attendancesvc.MonthScan{
		WorkDays: 20, PresentDays: 20, TotalHours: 160,
	})
	assert.Equal(t, 100.0, full.AttendancePercentage)
	assertMoney(t, "1200", full.BonusAmount, "bonus at 100%")
}

func TestCalculate_Deductions(t *testing.T) {
	four := calc(t, hourlyMember(150), march, attendancesvc.MonthScan{WorkDays: 16, PresentDays: 16, AbsentDays: 4, TotalHours: 128})
	assertMoney(t, "2400", four.Deductions, "four absences")

	two := calc(t, hourlyMember(150), march, attendancesvc.MonthScan{WorkDays: 18, PresentDays: 18, AbsentDays: 2, TotalHours: 144})
	assertMoney(t, "0", two.Deductions, "two absences")
}

func TestCalculate_FixedSalaryIgnoresHours(t *testing.T) {
	base := decimal.NewFromInt(20000)
	member := staff.Member{
		ID:         "s2",
		Name:       "Ana",
		SalaryType: staff.SalaryTypeFixed,
		BaseSalary: &base,
		Active:     true,
	}

	for _, hours := range []float64{0, 120, 400} {
		r := calc(t, member, march, attendancesvc.MonthScan{WorkDays: 20, PresentDays: 18, AbsentDays: 2, TotalHours: hours})
		assertMoney(t, "20000", r.BasePay, "base")
		assertMoney(t, "0", r.OvertimePay, "overtime")
		assert.Equal(t, 0.0, r.OvertimeHours)
	}
}

func TestCalculate_FixedSalaryDeductionsUseHourlyRate(t *testing.T) {
	base := decimal.NewFromInt(20000)
	member := staff.Member{SalaryType: staff.SalaryTypeFixed, BaseSalary: &base}

	noRate := calc(t, member, march, attendancesvc.MonthScan{WorkDays: 15, PresentDays: 15, AbsentDays: 5})
	assertMoney(t, "0", noRate.Deductions, "no hourly rate")

	member.HourlyRate = decimal.NewFromInt(100)
	withRate := calc(t, member, march, attendancesvc.MonthScan{WorkDays: 15, PresentDays: 15, AbsentDays: 5})
	assertMoney(t, "2400", withRate.Deductions, "hourly rate set")
}

func TestCalculate_Deterministic(t *testing.T) {
	scan := attendancesvc.MonthScan{WorkDays: 21, PresentDays: 20, AbsentDays: 3, HalfDays: 1, TotalHours: 171.37}
	a := calc(t, hourlyMember(133), march, scan)
	b := calc(t, hourlyMember(133), march, scan)
	assert.Equal(t, a, b)
}

func TestCalculate_BonusPercentageDefaultsWhenUnset(t *testing.T) {
	full := attendancesvc.MonthScan{WorkDays: 20, PresentDays: 20, TotalHours: 160}

	member := hourlyMember(100)
	require.Nil(t, member.BonusPercentage)
	r := calc(t, member, march, full)
	assertMoney(t, "16000", r.BasePay, "base")
	assertMoney(t, "800", r.BonusAmount, "default bonus")

	custom := decimal.NewFromInt(10)
	member.BonusPercentage = &custom
	r = calc(t, member, march, full)
	assertMoney(t, "1600", r.BonusAmount, "configured bonus")

	zero := decimal.Zero
	member.BonusPercentage = &zero
	r = calc(t, member, march, full)
	assertMoney(t, "0", r.BonusAmount, "bonus switched off")
}

func TestCalculate_UnknownSalaryTypeRejected(t *testing.T) {
	base := decimal.NewFromInt(20000)
	member := staff.Member{Name: "Ana", SalaryType: staff.SalaryType("commission"), BaseSalary: &base}

	_, err := Calculate(member, march, attendancesvc.MonthScan{WorkDays: 20, PresentDays: 20, TotalHours: 160})
	assert.ErrorIs(t, err, staff.ErrInvalidSalaryType)
}
