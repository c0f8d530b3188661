package http

import (
	"context"
	"io"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/company"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
)

type stubAuthService struct {
	auth.AuthService
	registered   *auth.RegisterRequest
	loggedOut    string
	loginErr     error
	changedFor   string
	refreshToken string
}

func (s *stubAuthService) Register(_ context.Context, req auth.RegisterRequest, _ auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	s.registered = &req
	return auth.TokenResponse{AccessToken: "access", RefreshToken: "refresh-1", RefreshTokenExpiresIn: 4102444800}, nil
}

func (s *stubAuthService) Login(_ context.Context, req auth.LoginRequest, _ auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if s.loginErr != nil {
		return auth.TokenResponse{}, s.loginErr
	}
	return auth.TokenResponse{AccessToken: "access", RefreshToken: "refresh-2", RefreshTokenExpiresIn: 4102444800}, nil
}

func (s *stubAuthService) Logout(_ context.Context, token string) error {
	s.loggedOut = token
	return nil
}

func (s *stubAuthService) RefreshToken(_ context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	s.refreshToken = req.RefreshToken
	return auth.AccessTokenResponse{AccessToken: "access-2"}, nil
}

func (s *stubAuthService) Me(_ context.Context, p user.Principal) (auth.MeResponse, error) {
	return auth.MeResponse{User: user.UserResponse{ID: p.UserID, Email: p.Email}}, nil
}

func (s *stubAuthService) ChangePassword(_ context.Context, p user.Principal, _ auth.ChangePasswordRequest) error {
	s.changedFor = p.UserID
	return nil
}

type stubCompanyService struct {
	company.CompanyService
}

func (stubCompanyService) GetMyCompany(_ context.Context, p user.Principal) (company.CompanyResponse, error) {
	return company.CompanyResponse{ID: p.CompanyID, Name: "Odoo India", Prefix: "OI"}, nil
}

type stubEmployeeService struct {
	employee.EmployeeService
	created *employee.CreateEmployeeRequest
}

func (s *stubEmployeeService) CreateEmployee(_ context.Context, _ user.Principal, req employee.CreateEmployeeRequest) (employee.CreateEmployeeResponse, error) {
	s.created = &req
	return employee.CreateEmployeeResponse{
		Credentials: employee.Credentials{LoginID: "OIJODO20220001", Email: req.Email, TemporaryPassword: "Tmp!pass1234"},
	}, nil
}

func (s *stubEmployeeService) ListEmployees(_ context.Context, _ user.Principal, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	filter.Normalize()
	return employee.ListEmployeeResponse{TotalCount: 1, Page: filter.Page, Limit: filter.Limit, TotalPages: 1}, nil
}

func (s *stubEmployeeService) GetEmployee(_ context.Context, p user.Principal, id string) (employee.EmployeeResponse, error) {
	if !p.CanAccessEmployee(id) {
		return employee.EmployeeResponse{}, employee.ErrUnauthorized
	}
	return employee.EmployeeResponse{ID: id}, nil
}

type stubPayrollService struct {
	payroll.PayrollService
}

func (stubPayrollService) PreviewBreakdown(_ context.Context, req payroll.UpsertSalaryInfoRequest) (payroll.BreakdownResponse, error) {
	return payroll.NewBreakdownResponse(req.ApplyTo(payroll.DefaultCompensationConfig)), nil
}

func (stubPayrollService) GetSalaryInfo(_ context.Context, _ user.Principal, _ string) (payroll.SalaryInfoResponse, error) {
	return payroll.SalaryInfoResponse{}, payroll.ErrSalaryInfoNotFound
}

type stubAttendanceService struct {
	attendance.AttendanceService
	checkedIn bool
	filter    *attendance.AttendanceFilter
}

func (s *stubAttendanceService) CheckIn(_ context.Context, p user.Principal) (attendance.AttendanceResponse, error) {
	if s.checkedIn {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}
	s.checkedIn = true
	return attendance.AttendanceResponse{EmployeeID: p.EmployeeID, Status: "present"}, nil
}

func (s *stubAttendanceService) ListAttendance(_ context.Context, _ user.Principal, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	s.filter = &filter
	return attendance.ListAttendanceResponse{Page: 1, Limit: 31}, nil
}

type stubLeaveService struct {
	leave.LeaveService
	created        *leave.CreateLeaveRequestRequest
	attachment     []byte
	approvedID     string
	approveComment *string
	balanceYear    int
}

func (s *stubLeaveService) CreateLeaveRequest(_ context.Context, p user.Principal, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	s.created = &req
	if req.File != nil {
		s.attachment, _ = io.ReadAll(req.File)
	}
	return leave.LeaveRequestResponse{EmployeeID: p.EmployeeID, LeaveType: req.LeaveType, Status: "pending", Allocation: 3}, nil
}

func (s *stubLeaveService) ApproveLeaveRequest(_ context.Context, _ user.Principal, id string, req leave.ReviewLeaveRequest) (leave.LeaveRequestResponse, error) {
	s.approvedID = id
	s.approveComment = req.AdminComment
	return leave.LeaveRequestResponse{ID: id, Status: "approved"}, nil
}

func (s *stubLeaveService) GetMyBalance(_ context.Context, p user.Principal, year int) (leave.LeaveBalanceResponse, error) {
	s.balanceYear = year
	return leave.NewLeaveBalanceResponse(leave.NewDefaultBalance(p.EmployeeID, 2024)), nil
}
