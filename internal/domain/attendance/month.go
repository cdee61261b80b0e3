package attendance

import (
	"fmt"
	"time"

	"github.com/glowdesk/salon-backend-go/internal/pkg/validator"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// Month is a calendar month, written as YYYY-MM.
type Month struct {
	Year  int
	Month time.Month
}

func ParseMonth(s string) (Month, error) {
	t, ok := validator.IsValidMonth(s)
	if !ok {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// MonthOf returns the month a YYYY-MM-DD date belongs to.
func MonthOf(date string) (Month, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) first() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Days returns the number of calendar days in the month.
func (m Month) Days() int {
	return m.first().AddDate(0, 1, -1).Day()
}

// FirstDate and LastDate bound the month as YYYY-MM-DD strings.
func (m Month) FirstDate() string {
	return m.first().Format(DateLayout)
}

func (m Month) LastDate() string {
	return m.first().AddDate(0, 1, -1).Format(DateLayout)
}

// Dates lists every day of the month in order.
func (m Month) Dates() []time.Time {
	days := m.Days()
	dates := make([]time.Time, 0, days)
	for d := 0; d < days; d++ {
		dates = append(dates, m.first().AddDate(0, 0, d))
	}
	return dates
}
