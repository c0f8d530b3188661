package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrLoginIDExists      = errors.New("login id already issued")
	ErrManagerNotFound    = errors.New("manager not found in this company")
	ErrUnauthorized       = errors.New("unauthorized to access this employee")
	ErrJobFieldsAdminOnly = errors.New("only an administrator can change job details")
	ErrCannotDeleteSelf   = errors.New("cannot delete your own employee record")
	ErrCannotManageSelf   = errors.New("an employee cannot be their own manager")
)
