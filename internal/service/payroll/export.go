package payroll

import (
	"fmt"
	"io"

	"github.com/glowdesk/salon-backend-go/internal/domain/payroll"
	"github.com/xuri/excelize/v2"
)

const summarySheet = "Payroll"

var summaryHeaders = []string{
	"Staff", "Role", "Salary Type", "Work Days", "Present", "Absent", "Half Days",
	"Total Hours", "Overtime Hours", "Attendance %",
	"Base Pay", "Overtime Pay", "Bonus", "Deductions", "Total Pay", "Tax", "Net Pay",
}

// WriteSummaryXLSX renders the payroll summary as a single-sheet workbook with
// a totals row under the staff rows.
func WriteSummaryXLSX(w io.Writer, summary payroll.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(summarySheet, "A1", &[]any{"Payroll " + summary.MonthYear}); err != nil {
		return fmt.Errorf("write title: %w", err)
	}

	headers := make([]any, len(summaryHeaders))
	for i, h := range summaryHeaders {
		headers[i] = h
	}
	if err := f.SetSheetRow(summarySheet, "A2", &headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := 3
	for _, r := range summary.Results {
		values := []any{
			r.StaffName, r.Role, r.SalaryType, r.WorkDays, r.PresentDays, r.AbsentDays, r.HalfDays,
			r.TotalHours, r.OvertimeHours, r.AttendancePercentage,
			r.BasePay.InexactFloat64(), r.OvertimePay.InexactFloat64(), r.BonusAmount.InexactFloat64(),
			r.Deductions.InexactFloat64(), r.TotalPay.InexactFloat64(), r.Tax.InexactFloat64(), r.NetPay.InexactFloat64(),
		}
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	totals := []any{
		"Total", "", "", "", "", "", "", "", "", "",
		summary.Totals.BasePay.InexactFloat64(),
		summary.Totals.OvertimePay.InexactFloat64(),
		summary.Totals.BonusAmount.InexactFloat64(),
		summary.Totals.Deductions.InexactFloat64(),
		"", "",
		summary.Totals.NetPay.InexactFloat64(),
	}
	if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", row), &totals); err != nil {
		return fmt.Errorf("write totals: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
