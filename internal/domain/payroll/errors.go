package payroll

import "errors"

var (
	ErrSalaryInfoNotFound = errors.New("salary information not found")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrUnauthorized       = errors.New("unauthorized to access this salary information")
)
