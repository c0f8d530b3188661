package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/company"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/storage"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, jwt.ErrWrongTokenType),
		errors.Is(err, jwt.ErrMissingClaim):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrIncorrectPassword):
		BadRequest(w, err.Error(), map[string]string{"current_password": err.Error()})
	case errors.Is(err, auth.ErrEmailAlreadyExists), errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, auth.ErrCompanyNotFound), errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, auth.ErrTooManyRequests):
		TooManyRequests(w, "Too many attempts, try again later")

	// Company domain errors
	case errors.Is(err, company.ErrCompanyPrefixTaken):
		Conflict(w, err.Error())
	case errors.Is(err, company.ErrInvalidCompanyName), errors.Is(err, company.ErrInvalidCompanyPrefix):
		BadRequest(w, err.Error(), nil)

	// Permission errors
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrCompanyIDRequired):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound), errors.Is(err, payroll.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrLoginIDExists):
		Conflict(w, "Login id already issued")
	case errors.Is(err, employee.ErrManagerNotFound):
		BadRequest(w, err.Error(), map[string]string{"manager_id": err.Error()})
	case errors.Is(err, employee.ErrCannotManageSelf):
		BadRequest(w, err.Error(), map[string]string{"manager_id": err.Error()})
	case errors.Is(err, employee.ErrCannotDeleteSelf):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, employee.ErrUnauthorized), errors.Is(err, employee.ErrJobFieldsAdminOnly):
		Forbidden(w, err.Error())

	// Salary errors
	case errors.Is(err, payroll.ErrSalaryInfoNotFound):
		NotFound(w, "Salary information not found")
	case errors.Is(err, payroll.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn), errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrNoEmployeeProfile), errors.Is(err, leave.ErrNoEmployeeProfile):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrInvalidAllocation):
		ValidationError(w, map[string]string{"end_date": err.Error()})
	case errors.Is(err, leave.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Storage errors
	case errors.Is(err, storage.ErrInvalidFileType), errors.Is(err, storage.ErrInvalidImage):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, storage.ErrFileNotFound):
		NotFound(w, "File not found")
	case errors.Is(err, storage.ErrInvalidPath):
		BadRequest(w, "Invalid file path", nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
