package http

import (
	"net/http"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	ListAttendance(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	resp, err := h.attendanceService.CheckIn(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Checked in successfully", resp)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	resp, err := h.attendanceService.CheckOut(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Checked out successfully", resp)
}

// GetToday implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	resp, err := h.attendanceService.GetToday(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// ListAttendance implements AttendanceHandler.
// Query: from, to (YYYY-MM-DD), or view=month&date=; search and employee_id for admins.
func (h *attendanceHandlerImpl) ListAttendance(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := attendance.AttendanceFilter{
		From:       q.Get("from"),
		To:         q.Get("to"),
		View:       q.Get("view"),
		Date:       q.Get("date"),
		Search:     q.Get("search"),
		EmployeeID: q.Get("employee_id"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.attendanceService.ListAttendance(r.Context(), p, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, resp, response.NewMeta(resp.Page, resp.Limit, resp.TotalCount))
}
