package employee

import (
	"context"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// CreateEmployee issues a login id and temporary password (admin only)
	CreateEmployee(ctx context.Context, principal user.Principal, req CreateEmployeeRequest) (CreateEmployeeResponse, error)

	// ListEmployees lists the company directory with today's status (admin only)
	ListEmployees(ctx context.Context, principal user.Principal, filter EmployeeFilter) (ListEmployeeResponse, error)

	// GetEmployee retrieves a single employee (admin or the employee themself)
	GetEmployee(ctx context.Context, principal user.Principal, id string) (EmployeeResponse, error)

	// UpdateEmployee updates job details (admin) or resume fields (self)
	UpdateEmployee(ctx context.Context, principal user.Principal, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// UpdatePrivateInfo updates personal and bank details (admin or self)
	UpdatePrivateInfo(ctx context.Context, principal user.Principal, id string, req UpdatePrivateInfoRequest) (EmployeeResponse, error)

	// DeleteEmployee removes the employee and their login (admin only, never self)
	DeleteEmployee(ctx context.Context, principal user.Principal, id string) error

	// UploadAvatar replaces the profile picture (admin or self)
	UploadAvatar(ctx context.Context, principal user.Principal, id string, req UploadAvatarRequest) (EmployeeResponse, error)
}
