package attendance

import (
	"strings"

	"github.com/glowdesk/salon-backend-go/internal/pkg/validator"
)

// ========================================
// PUNCH CLOCK DTOs
// ========================================

type PunchRequest struct {
	StaffID   string `json:"staff_id"`
	StaffName string `json:"staff_name"`
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}

	if validator.IsEmpty(r.StaffName) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_name",
			Message: "staff_name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PunchResponse struct {
	State  PunchState     `json:"state"`
	Record RecordResponse `json:"record"`
}

type TodayStatusResponse struct {
	Date          string `json:"date"`
	HasPunchedIn  bool   `json:"has_punched_in"`
	HasPunchedOut bool   `json:"has_punched_out"`
}

// ========================================
// MANUAL / BULK DTOs
// ========================================

// ManualMarkRequest carries punch times as RFC3339 timestamps or as "HH:MM"
// wall-clock times on Date.
type ManualMarkRequest struct {
	StaffID      string  `json:"staff_id"`
	StaffName    string  `json:"staff_name"`
	Date         string  `json:"date"` // YYYY-MM-DD
	PunchInTime  *string `json:"punch_in_time"`
	PunchOutTime *string `json:"punch_out_time"`
	Status       string  `json:"status"`
}

func (r *ManualMarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id is required",
		})
	}

	if validator.IsEmpty(r.StaffName) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_name",
			Message: "staff_name is required",
		})
	}

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	errs = append(errs, validateMark(r.Status, r.PunchInTime, r.PunchOutTime)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BulkMarkRequest struct {
	StaffIDs     []string `json:"staff_ids"`
	Dates        []string `json:"dates"` // YYYY-MM-DD
	PunchInTime  *string  `json:"punch_in_time"`
	PunchOutTime *string  `json:"punch_out_time"`
	Status       string   `json:"status"`
}

func (r *BulkMarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.StaffIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_ids",
			Message: "select at least one staff member",
		})
	}

	if len(r.Dates) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "dates",
			Message: "select at least one date",
		})
	}

	for _, d := range r.Dates {
		if _, valid := validator.IsValidDate(d); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "dates",
				Message: "every date must be in YYYY-MM-DD format",
			})
			break
		}
	}

	errs = append(errs, validateMark(r.Status, r.PunchInTime, r.PunchOutTime)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// validateMark enforces the status rules shared by manual and bulk marks:
// absent and leave carry no punch times.
func validateMark(status string, punchIn, punchOut *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(status, validStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(validStatuses, ", "),
		})
		return errs
	}

	if Status(status).ForbidsPunchTimes() {
		if punchIn != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "punch_in_time",
				Message: "punch_in_time must be empty for status " + status,
			})
		}
		if punchOut != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "punch_out_time",
				Message: "punch_out_time must be empty for status " + status,
			})
		}
	}

	return errs
}

type BulkMarkItem struct {
	StaffID   string `json:"staff_id"`
	StaffName string `json:"staff_name,omitempty"`
	Date      string `json:"date"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
}

type BulkMarkResponse struct {
	Attempted int            `json:"attempted"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Results   []BulkMarkItem `json:"results"`
}

// UpdateRecordRequest is a field-level correction of one record.
type UpdateRecordRequest struct {
	StaffName       string   `json:"-"`
	Date            string   `json:"-"`
	PunchInTime     *string  `json:"punch_in_time,omitempty"`
	PunchOutTime    *string  `json:"punch_out_time,omitempty"`
	WorkHours       *float64 `json:"work_hours,omitempty"`
	Status          *string  `json:"status,omitempty"`
	ClearPunchTimes bool     `json:"clear_punch_times,omitempty"`
}

func (r *UpdateRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffName) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_name",
			Message: "staff_name is required",
		})
	}

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, validStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(validStatuses, ", "),
		})
	}

	if r.WorkHours != nil && (*r.WorkHours < 0 || *r.WorkHours > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "work_hours",
			Message: "work_hours must be between 0 and 24",
		})
	}

	if r.ClearPunchTimes && (r.PunchInTime != nil || r.PunchOutTime != nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "clear_punch_times",
			Message: "clear_punch_times cannot be combined with new punch times",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// RESPONSES
// ========================================

type RecordResponse struct {
	ID             string   `json:"id"`
	StaffID        string   `json:"staff_id"`
	StaffName      string   `json:"staff_name"`
	Date           string   `json:"date"`
	PunchInTime    *string  `json:"punch_in_time,omitempty"`
	PunchOutTime   *string  `json:"punch_out_time,omitempty"`
	WorkHours      *float64 `json:"work_hours,omitempty"`
	EffectiveHours float64  `json:"effective_hours"`
	Status         string   `json:"status"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

// ToResponse maps a record to its wire form.
func ToResponse(r Record) RecordResponse {
	hours, _ := r.Hours()
	return RecordResponse{
		ID:             r.ID,
		StaffID:        r.StaffID,
		StaffName:      r.StaffName,
		Date:           r.Date,
		PunchInTime:    formatTimestampPtr(r.PunchIn),
		PunchOutTime:   formatTimestampPtr(r.PunchOut),
		WorkHours:      r.WorkHours,
		EffectiveHours: hours,
		Status:         string(r.Status),
		CreatedAt:      r.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:      r.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

type MonthRecordsResponse struct {
	StaffName string           `json:"staff_name"`
	MonthYear string           `json:"month_year"`
	Records   []RecordResponse `json:"records"`
}
