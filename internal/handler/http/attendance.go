package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/glowdesk/salon-backend-go/internal/domain/attendance"
	"github.com/glowdesk/salon-backend-go/internal/domain/staff"
	"github.com/glowdesk/salon-backend-go/internal/domain/user"
	"github.com/glowdesk/salon-backend-go/internal/handler/http/response"
	"github.com/glowdesk/salon-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	PunchIn(w http.ResponseWriter, r *http.Request)
	PunchOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	MarkManual(w http.ResponseWriter, r *http.Request)
	BulkMark(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ListMonth(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	AllStats(w http.ResponseWriter, r *http.Request)
	ExportCSV(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	staffRepo         staff.StaffRepository
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, staffRepo staff.StaffRepository) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		staffRepo:         staffRepo,
	}
}

// punchRequest builds the punch request for the caller's own staff profile.
func punchRequest(r *http.Request) (attendance.PunchRequest, error) {
	p, err := jwt.PrincipalFromContext(r.Context())
	if err != nil {
		return attendance.PunchRequest{}, err
	}
	if p.StaffID == "" || p.StaffName == "" {
		return attendance.PunchRequest{}, user.ErrStaffClaimMissing
	}
	return attendance.PunchRequest{StaffID: p.StaffID, StaffName: p.StaffName}, nil
}

// authorizeStaff lets staff read their own records and managers read anyone's.
func authorizeStaff(r *http.Request, staffName string) error {
	p, err := jwt.PrincipalFromContext(r.Context())
	if err != nil {
		return err
	}
	if !p.CanViewStaff(staffName) {
		return user.ErrInsufficientPermissions
	}
	return nil
}

// PunchIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) PunchIn(w http.ResponseWriter, r *http.Request) {
	req, err := punchRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.PunchIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.State == attendance.StatePunchedOut {
		response.SuccessWithMessage(w, "Already punched out today", result)
		return
	}
	response.Created(w, "Punch in successful", result)
}

// PunchOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) PunchOut(w http.ResponseWriter, r *http.Request) {
	req, err := punchRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.PunchOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punch out successful", result)
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	req, err := punchRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetTodayStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MarkManual implements AttendanceHandler.
func (h *attendanceHandlerImpl) MarkManual(w http.ResponseWriter, r *http.Request) {
	var req attendance.ManualMarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode manual mark request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.MarkManual(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance saved", result)
}

// BulkMark implements AttendanceHandler.
func (h *attendanceHandlerImpl) BulkMark(w http.ResponseWriter, r *http.Request) {
	var req attendance.BulkMarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode bulk mark request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.BulkMark(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := fmt.Sprintf("Marked %d of %d entries", result.Succeeded, result.Attempted)
	response.SuccessWithMessage(w, message, result)
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode update request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.StaffName = chi.URLParam(r, "staffName")
	req.Date = chi.URLParam(r, "date")

	result, err := h.attendanceService.UpdateRecord(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated", result)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	staffName := chi.URLParam(r, "staffName")
	date := chi.URLParam(r, "date")

	if err := h.attendanceService.DeleteRecord(r.Context(), staffName, date); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance deleted", nil)
}

// ListMonth implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListMonth(w http.ResponseWriter, r *http.Request) {
	staffName := chi.URLParam(r, "staffName")
	if err := authorizeStaff(r, staffName); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.ListMonth(r.Context(), staffName, r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Stats implements AttendanceHandler.
func (h *attendanceHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	staffName := chi.URLParam(r, "staffName")
	if err := authorizeStaff(r, staffName); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetStats(r.Context(), staffName, r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AllStats implements AttendanceHandler.
func (h *attendanceHandlerImpl) AllStats(w http.ResponseWriter, r *http.Request) {
	members, err := h.staffRepo.ListActive(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetAllStaffStats(r.Context(), members, r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportCSV implements AttendanceHandler.
func (h *attendanceHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	staffName := chi.URLParam(r, "staffName")
	if err := authorizeStaff(r, staffName); err != nil {
		response.HandleError(w, err)
		return
	}

	month := r.URL.Query().Get("month")
	filename := fmt.Sprintf("attendance_%s_%s.csv", staffName, month)
	response.Attachment(w, "text/csv; charset=utf-8", filename, func(out io.Writer) error {
		return h.attendanceService.ExportMonthCSV(r.Context(), staffName, month, out)
	})
}
