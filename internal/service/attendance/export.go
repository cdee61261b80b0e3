package attendance

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/glowdesk/salon-backend-go/internal/domain/attendance"
)

// CSVHeader is the column layout of the monthly attendance export.
var CSVHeader = []string{"Date", "Day", "Punch In", "Punch Out", "Work Hours", "Status"}

// CSVRow is one parsed line of a monthly export.
type CSVRow struct {
	Date      string
	Status    attendance.Status
	WorkHours *float64
}

// ExportMonthCSV implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ExportMonthCSV(ctx context.Context, staffName string, month string, w io.Writer) error {
	m, err := attendance.ParseMonth(month)
	if err != nil {
		return err
	}

	records, err := s.AttendanceRepository.ListByStaffAndMonth(ctx, staffName, m)
	if err != nil {
		return fmt.Errorf("failed to list attendance: %w", err)
	}

	return WriteMonthCSV(w, m, records, s.policy)
}

// WriteMonthCSV writes one row per calendar day. Days without a record have
// empty columns after the weekday.
func WriteMonthCSV(w io.Writer, month attendance.Month, records []attendance.Record, policy attendance.Policy) error {
	byDate := make(map[string]attendance.Record, len(records))
	for _, r := range records {
		byDate[r.Date] = r
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, day := range month.Dates() {
		date := day.Format(attendance.DateLayout)
		row := []string{date, day.Weekday().String(), "", "", "", ""}

		if r, ok := byDate[date]; ok {
			if r.PunchIn != nil {
				row[2] = policy.In(*r.PunchIn).Format("15:04")
			}
			if r.PunchOut != nil {
				row[3] = policy.In(*r.PunchOut).Format("15:04")
			}
			// Shortest exact form so ParseMonthCSV reads back the same value.
			if hours, ok := r.Hours(); ok {
				row[4] = strconv.FormatFloat(hours, 'f', -1, 64)
			}
			row[5] = string(r.Status)
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row %s: %w", date, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ParseMonthCSV reads an export back. Rows without a status are days that had
// no record and are skipped.
func ParseMonthCSV(r io.Reader) ([]CSVRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(CSVHeader)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty attendance export")
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if strings.Join(header, ",") != strings.Join(CSVHeader, ",") {
		return nil, fmt.Errorf("unexpected csv header %q", strings.Join(header, ","))
	}

	var rows []CSVRow
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		if fields[5] == "" {
			continue
		}

		status := attendance.Status(fields[5])
		if !status.IsValid() {
			return nil, fmt.Errorf("row %s: unknown status %q", fields[0], fields[5])
		}

		row := CSVRow{Date: fields[0], Status: status}
		if fields[4] != "" {
			hours, err := strconv.ParseFloat(fields[4], 64)
			if err != nil {
				return nil, fmt.Errorf("row %s: invalid work hours %q", fields[0], fields[4])
			}
			row.WorkHours = &hours
		}
		rows = append(rows, row)
	}

	return rows, nil
}
