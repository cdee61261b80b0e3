package staff

import (
	"time"

	"github.com/shopspring/decimal"
)

type SalaryType string

const (
	SalaryTypeHourly SalaryType = "hourly"
	SalaryTypeFixed  SalaryType = "fixed"
)

// DefaultBonusPercentage applies when a staff profile carries no bonus setting.
var DefaultBonusPercentage = decimal.NewFromInt(5)

// Member is a salon staff profile. Owned by the staffing module; attendance
// and payroll only read it.
type Member struct {
	ID              string
	Name            string
	Role            string
	SalaryType      SalaryType
	HourlyRate      decimal.Decimal
	BaseSalary      *decimal.Decimal
	BonusPercentage *decimal.Decimal
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Bonus returns the bonus percentage, DefaultBonusPercentage when unset.
func (m Member) Bonus() decimal.Decimal {
	if m.BonusPercentage == nil {
		return DefaultBonusPercentage
	}
	return *m.BonusPercentage
}

// IsHourly reports whether pay is derived from hours worked.
func (m Member) IsHourly() bool {
	return m.SalaryType == SalaryTypeHourly
}
