package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrInsufficientBalance          = errors.New("insufficient leave balance")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrInvalidAllocation            = errors.New("end date must not be before start date")
	ErrOverlappingLeave             = errors.New("a pending or approved leave already covers these dates")
	ErrUnauthorized                 = errors.New("unauthorized to access this leave request")
	ErrNoEmployeeProfile            = errors.New("no employee profile is linked to this account")
)
