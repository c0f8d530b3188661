package employee

import (
	"context"
	"time"
)

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, companyID, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	// List returns the company directory with each entry's status on the given day.
	List(ctx context.Context, companyID string, filter EmployeeFilter, day time.Time) ([]DirectoryEntry, int64, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	UpdateProfilePicture(ctx context.Context, companyID, id, url string) error
}
