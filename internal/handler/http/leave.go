package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)

	GetMyBalance(w http.ResponseWriter, r *http.Request)
	GetEmployeeBalance(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// CreateRequest implements LeaveHandler. Multipart requests carry the payload in
// "data" and an optional "attachment" file; plain JSON is accepted too.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req leave.CreateLeaveRequestRequest
	if isMultipart(r) {
		file, header, ok := decodeMultipart(w, r, &req, "attachment", "CreateLeaveRequest")
		if !ok {
			return
		}
		if file != nil {
			defer file.Close()
			req.File = file
			req.FileHeader = header
		}
	} else if !decodeJSON(w, r, &req, "CreateLeaveRequest") {
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := l.leaveService.CreateLeaveRequest(r.Context(), p, req)
	if err != nil {
		slog.Error("CreateLeaveRequest service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted successfully", resp)
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := leave.LeaveRequestFilter{
		Status:     q.Get("status"),
		LeaveType:  q.Get("leave_type"),
		Search:     q.Get("search"),
		EmployeeID: q.Get("employee_id"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := l.leaveService.ListLeaveRequests(r.Context(), p, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, resp, response.NewMeta(resp.Page, resp.Limit, resp.TotalCount))
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	resp, err := l.leaveService.GetLeaveRequest(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// reviewRequest decodes the optional admin comment. An empty body is allowed.
func reviewRequest(w http.ResponseWriter, r *http.Request, op string) (leave.ReviewLeaveRequest, bool) {
	var req leave.ReviewLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return req, false
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return req, false
	}
	return req, true
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	req, ok := reviewRequest(w, r, "ApproveRequest")
	if !ok {
		return
	}

	resp, err := l.leaveService.ApproveLeaveRequest(r.Context(), p, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request approved successfully", resp)
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	req, ok := reviewRequest(w, r, "RejectRequest")
	if !ok {
		return
	}

	resp, err := l.leaveService.RejectLeaveRequest(r.Context(), p, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request rejected successfully", resp)
}

func yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return 0, true
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1900 || year > 9999 {
		response.ValidationError(w, map[string]string{"year": "year must be a four digit number"})
		return 0, false
	}
	return year, true
}

// GetMyBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyBalance(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	resp, err := l.leaveService.GetMyBalance(r.Context(), p, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// GetEmployeeBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) GetEmployeeBalance(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	resp, err := l.leaveService.GetEmployeeBalance(r.Context(), p, chi.URLParam(r, "id"), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}
