package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // HR administrator - manages the whole company
	RoleEmployee Role = "employee" // Regular employee
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	EmployeeID *string
	LoginID    *string
}

// IsAdmin checks if user is a company administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Principal builds the token identity for this user.
func (u User) Principal() Principal {
	p := Principal{
		UserID:    u.ID,
		Email:     u.Email,
		CompanyID: u.CompanyID,
		Role:      u.Role,
	}
	if u.EmployeeID != nil {
		p.EmployeeID = *u.EmployeeID
	}
	return p
}
