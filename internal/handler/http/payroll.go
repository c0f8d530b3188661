package http

import (
	"net/http"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	GetSalaryInfo(w http.ResponseWriter, r *http.Request)
	UpsertSalaryInfo(w http.ResponseWriter, r *http.Request)
	PreviewBreakdown(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// GetSalaryInfo implements PayrollHandler.
func (h *payrollHandlerImpl) GetSalaryInfo(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	resp, err := h.payrollService.GetSalaryInfo(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// UpsertSalaryInfo implements PayrollHandler.
func (h *payrollHandlerImpl) UpsertSalaryInfo(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req payroll.UpsertSalaryInfoRequest
	if !decodeJSON(w, r, &req, "UpsertSalaryInfo") {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.payrollService.UpsertSalaryInfo(r.Context(), p, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Salary information saved successfully", resp)
}

// PreviewBreakdown implements PayrollHandler. Missing fields take the defaults.
func (h *payrollHandlerImpl) PreviewBreakdown(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpsertSalaryInfoRequest
	if !decodeJSON(w, r, &req, "PreviewBreakdown") {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.payrollService.PreviewBreakdown(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}
