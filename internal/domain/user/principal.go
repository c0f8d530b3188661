package user

// Principal is the authenticated caller, decoded from access token claims by the
// HTTP layer and handed to services explicitly.
type Principal struct {
	UserID     string
	Email      string
	EmployeeID string
	CompanyID  string
	Role       Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccessEmployee reports whether the caller may read the given employee's records.
func (p Principal) CanAccessEmployee(employeeID string) bool {
	return p.IsAdmin() || (p.EmployeeID != "" && p.EmployeeID == employeeID)
}

// Can checks the role permission table.
func (p Principal) Can(permission Permission) bool {
	return HasPermission(p.Role, permission)
}
