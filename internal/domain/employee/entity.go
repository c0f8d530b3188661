package employee

import (
	"time"
)

type Employee struct {
	ID        string
	UserID    string
	CompanyID string
	LoginID   string

	// Basic info
	FirstName      string
	LastName       string
	Email          string
	Phone          *string
	ProfilePicture *string

	// Job details
	JobPosition   *string
	Department    *string
	ManagerID     *string
	Location      *string
	DateOfJoining time.Time

	// Private info
	DateOfBirth     *time.Time
	ResidingAddress *string
	Nationality     *string
	PersonalEmail   *string
	Gender          *Gender

	// Resume
	About             *string
	WhatILoveAboutJob *string
	InterestsHobbies  *string
	Skills            []string
	Certifications    []string

	// Bank details
	BankName      *string
	AccountNumber *string
	IFSCCode      *string
	PANNo         *string
	UANNo         *string
	EmpCode       *string

	JoiningSerial int
	JoiningYear   int

	CreatedAt time.Time
	UpdatedAt time.Time

	// Join
	ManagerName *string
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

func (g Gender) IsValid() bool {
	return g == Male || g == Female || g == Other
}

// TodayStatus is the directory's presence badge for the current day.
type TodayStatus string

const (
	TodayPresent TodayStatus = "present"
	TodayAbsent  TodayStatus = "absent"
	TodayLeave   TodayStatus = "leave"
)

// ResolveTodayStatus ranks an approved leave above any attendance row; a present or
// half-day row counts as present, anything else (including no row) as absent.
func ResolveTodayStatus(onApprovedLeave bool, attendanceStatus *string) TodayStatus {
	if onApprovedLeave {
		return TodayLeave
	}
	if attendanceStatus != nil && (*attendanceStatus == "present" || *attendanceStatus == "half-day") {
		return TodayPresent
	}
	return TodayAbsent
}

// DirectoryEntry is an employee with today's presence badge.
type DirectoryEntry struct {
	Employee
	TodayStatus TodayStatus
}
