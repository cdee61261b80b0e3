package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/glowdesk/salon-backend-go/internal/domain/payroll"
	"github.com/glowdesk/salon-backend-go/internal/domain/staff"
	"github.com/glowdesk/salon-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	ExportXLSX(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
	staffRepo      staff.StaffRepository
}

func NewPayrollHandler(payrollService payroll.PayrollService, staffRepo staff.StaffRepository) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
		staffRepo:      staffRepo,
	}
}

// Get implements PayrollHandler.
func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ComputePayroll(r.Context(), chi.URLParam(r, "staffId"), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summary implements PayrollHandler.
func (h *payrollHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	members, err := h.staffRepo.ListActive(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.ComputeAllStaffPayroll(r.Context(), members, r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportXLSX implements PayrollHandler.
func (h *payrollHandlerImpl) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	response.Attachment(w,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		fmt.Sprintf("payroll_%s.xlsx", month),
		func(out io.Writer) error {
			return h.payrollService.ExportSummaryXLSX(r.Context(), month, out)
		},
	)
}
