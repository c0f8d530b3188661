package company

import "errors"

var (
	ErrCompanyNotFound      = errors.New("company not found")
	ErrInvalidCompanyName   = errors.New("company name cannot be empty")
	ErrInvalidCompanyPrefix = errors.New("company prefix must be 2 to 4 letters")
	ErrCompanyPrefixTaken   = errors.New("company prefix is already in use; choose another")
)
