package employee

import (
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

// CreateEmployeeRequest is filled in by an administrator. The login id and
// temporary password are generated server-side.
type CreateEmployeeRequest struct {
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone,omitempty"`
	JobPosition   *string `json:"job_position,omitempty"`
	Department    *string `json:"department,omitempty"`
	ManagerID     *string `json:"manager_id,omitempty"`
	Location      *string `json:"location,omitempty"`
	DateOfJoining string  `json:"date_of_joining,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs.Add("first_name", "first_name is required")
	} else if len(r.FirstName) > 100 {
		errs.Add("first_name", "first_name must not exceed 100 characters")
	}
	if validator.IsEmpty(r.LastName) {
		errs.Add("last_name", "last_name is required")
	} else if len(r.LastName) > 100 {
		errs.Add("last_name", "last_name must not exceed 100 characters")
	}
	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if len(r.Email) > 254 {
		errs.Add("email", "email must not exceed 254 characters")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "email must be a valid email address, e.g. user@example.com")
	}
	if r.Phone != nil && *r.Phone != "" && !validator.IsValidPhoneNumber(*r.Phone) {
		errs.Add("phone", "phone must contain 10 to 15 digits")
	}
	if r.ManagerID != nil && !validator.IsValidUUID(*r.ManagerID) {
		errs.Add("manager_id", "manager_id must be a valid UUID")
	}
	if r.DateOfJoining != "" {
		if _, ok := validator.IsValidDate(r.DateOfJoining); !ok {
			errs.Add("date_of_joining", "date_of_joining must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

// JoiningDate returns the parsed date of joining, defaulting to today.
func (r *CreateEmployeeRequest) JoiningDate(now time.Time) time.Time {
	if d, ok := validator.IsValidDate(r.DateOfJoining); ok {
		return d
	}
	y, m, day := now.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// Credentials are disclosed exactly once, in the create response.
type Credentials struct {
	LoginID           string `json:"login_id"`
	Email             string `json:"email"`
	TemporaryPassword string `json:"temporary_password"`
}

type CreateEmployeeResponse struct {
	Employee          EmployeeResponse `json:"employee"`
	Credentials       Credentials      `json:"credentials"`
	CredentialsMailed bool             `json:"credentials_mailed"`
}

// UpdateEmployeeRequest mixes job details, which only an administrator may change,
// with resume fields that employees maintain themselves.
type UpdateEmployeeRequest struct {
	// Job details (admin)
	FirstName     *string `json:"first_name,omitempty"`
	LastName      *string `json:"last_name,omitempty"`
	JobPosition   *string `json:"job_position,omitempty"`
	Department    *string `json:"department,omitempty"`
	ManagerID     *string `json:"manager_id,omitempty"`
	Location      *string `json:"location,omitempty"`
	DateOfJoining *string `json:"date_of_joining,omitempty"`

	// Contact and resume (admin or self)
	Phone             *string  `json:"phone,omitempty"`
	About             *string  `json:"about,omitempty"`
	WhatILoveAboutJob *string  `json:"what_i_love_about_job,omitempty"`
	InterestsHobbies  *string  `json:"interests_hobbies,omitempty"`
	Skills            []string `json:"skills,omitempty"`
	Certifications    []string `json:"certifications,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs.Add("first_name", "first_name must not be empty")
	}
	if r.LastName != nil && validator.IsEmpty(*r.LastName) {
		errs.Add("last_name", "last_name must not be empty")
	}
	if r.ManagerID != nil && *r.ManagerID != "" && !validator.IsValidUUID(*r.ManagerID) {
		errs.Add("manager_id", "manager_id must be a valid UUID")
	}
	if r.DateOfJoining != nil {
		if _, ok := validator.IsValidDate(*r.DateOfJoining); !ok {
			errs.Add("date_of_joining", "date_of_joining must be in YYYY-MM-DD format")
		}
	}
	if r.Phone != nil && *r.Phone != "" && !validator.IsValidPhoneNumber(*r.Phone) {
		errs.Add("phone", "phone must contain 10 to 15 digits")
	}
	if r.About != nil && len(*r.About) > 2000 {
		errs.Add("about", "about must not exceed 2000 characters")
	}
	for _, s := range r.Skills {
		if validator.IsEmpty(s) {
			errs.Add("skills", "skills must not contain empty entries")
			break
		}
	}
	for _, c := range r.Certifications {
		if validator.IsEmpty(c) {
			errs.Add("certifications", "certifications must not contain empty entries")
			break
		}
	}

	return errs.Err()
}

// HasJobFields reports whether any admin-only field is present.
func (r *UpdateEmployeeRequest) HasJobFields() bool {
	return r.FirstName != nil || r.LastName != nil || r.JobPosition != nil || r.Department != nil ||
		r.ManagerID != nil || r.Location != nil || r.DateOfJoining != nil
}

// ApplyTo copies the present fields onto e. An empty manager_id clears the manager.
func (r *UpdateEmployeeRequest) ApplyTo(e *Employee) {
	if r.FirstName != nil {
		e.FirstName = strings.TrimSpace(*r.FirstName)
	}
	if r.LastName != nil {
		e.LastName = strings.TrimSpace(*r.LastName)
	}
	if r.JobPosition != nil {
		e.JobPosition = r.JobPosition
	}
	if r.Department != nil {
		e.Department = r.Department
	}
	if r.ManagerID != nil {
		if *r.ManagerID == "" {
			e.ManagerID = nil
		} else {
			e.ManagerID = r.ManagerID
		}
	}
	if r.Location != nil {
		e.Location = r.Location
	}
	if r.DateOfJoining != nil {
		if d, ok := validator.IsValidDate(*r.DateOfJoining); ok {
			e.DateOfJoining = d
		}
	}
	if r.Phone != nil {
		e.Phone = r.Phone
	}
	if r.About != nil {
		e.About = r.About
	}
	if r.WhatILoveAboutJob != nil {
		e.WhatILoveAboutJob = r.WhatILoveAboutJob
	}
	if r.InterestsHobbies != nil {
		e.InterestsHobbies = r.InterestsHobbies
	}
	if r.Skills != nil {
		e.Skills = r.Skills
	}
	if r.Certifications != nil {
		e.Certifications = r.Certifications
	}
}

// UpdatePrivateInfoRequest covers personal and bank details.
type UpdatePrivateInfoRequest struct {
	DateOfBirth     *string `json:"date_of_birth,omitempty"`
	ResidingAddress *string `json:"residing_address,omitempty"`
	Nationality     *string `json:"nationality,omitempty"`
	PersonalEmail   *string `json:"personal_email,omitempty"`
	Gender          *string `json:"gender,omitempty"`
	BankName        *string `json:"bank_name,omitempty"`
	AccountNumber   *string `json:"account_number,omitempty"`
	IFSCCode        *string `json:"ifsc_code,omitempty"`
	PANNo           *string `json:"pan_no,omitempty"`
	UANNo           *string `json:"uan_no,omitempty"`
	EmpCode         *string `json:"emp_code,omitempty"`
}

func (r *UpdatePrivateInfoRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DateOfBirth != nil {
		if dob, ok := validator.IsValidDate(*r.DateOfBirth); !ok {
			errs.Add("date_of_birth", "date_of_birth must be in YYYY-MM-DD format")
		} else if dob.After(time.Now()) {
			errs.Add("date_of_birth", "date_of_birth must be in the past")
		}
	}
	if r.PersonalEmail != nil && *r.PersonalEmail != "" && !validator.IsValidEmail(*r.PersonalEmail) {
		errs.Add("personal_email", "personal_email must be a valid email address")
	}
	if r.Gender != nil && !Gender(*r.Gender).IsValid() {
		errs.Add("gender", "gender must be one of: male, female, other")
	}
	if r.AccountNumber != nil && *r.AccountNumber != "" && !validator.IsNumeric(*r.AccountNumber) {
		errs.Add("account_number", "account_number must contain only digits")
	}
	if r.IFSCCode != nil && *r.IFSCCode != "" && !validator.IsValidIFSC(strings.ToUpper(*r.IFSCCode)) {
		errs.Add("ifsc_code", "ifsc_code must look like ABCD0123456")
	}
	if r.PANNo != nil && *r.PANNo != "" && !validator.IsValidPAN(strings.ToUpper(*r.PANNo)) {
		errs.Add("pan_no", "pan_no must look like ABCDE1234F")
	}
	if r.UANNo != nil && *r.UANNo != "" && (!validator.IsNumeric(*r.UANNo) || len(*r.UANNo) != 12) {
		errs.Add("uan_no", "uan_no must be 12 digits")
	}

	return errs.Err()
}

func (r *UpdatePrivateInfoRequest) ApplyTo(e *Employee) {
	if r.DateOfBirth != nil {
		if dob, ok := validator.IsValidDate(*r.DateOfBirth); ok {
			e.DateOfBirth = &dob
		}
	}
	if r.ResidingAddress != nil {
		e.ResidingAddress = r.ResidingAddress
	}
	if r.Nationality != nil {
		e.Nationality = r.Nationality
	}
	if r.PersonalEmail != nil {
		e.PersonalEmail = r.PersonalEmail
	}
	if r.Gender != nil {
		g := Gender(*r.Gender)
		e.Gender = &g
	}
	if r.BankName != nil {
		e.BankName = r.BankName
	}
	if r.AccountNumber != nil {
		e.AccountNumber = r.AccountNumber
	}
	if r.IFSCCode != nil {
		code := strings.ToUpper(*r.IFSCCode)
		e.IFSCCode = &code
	}
	if r.PANNo != nil {
		pan := strings.ToUpper(*r.PANNo)
		e.PANNo = &pan
	}
	if r.UANNo != nil {
		e.UANNo = r.UANNo
	}
	if r.EmpCode != nil {
		e.EmpCode = r.EmpCode
	}
}

type UploadAvatarRequest struct {
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *UploadAvatarRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.File == nil || r.FileHeader == nil {
		errs.Add("avatar", "avatar file is required")
		return errs
	}
	ext := strings.ToLower(filepath.Ext(r.FileHeader.Filename))
	if !slices.Contains([]string{".jpg", ".jpeg", ".png"}, ext) {
		errs.Add("avatar", "invalid file type: only jpg, jpeg, png allowed")
	}
	if r.FileHeader.Size > 5<<20 {
		errs.Add("avatar", "avatar size must not exceed 5MB")
	}

	return errs.Err()
}

type EmployeeFilter struct {
	Search string
	Page   int
	Limit  int
}

func (f *EmployeeFilter) Normalize() {
	f.Search = strings.TrimSpace(f.Search)
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	CompanyID      string  `json:"company_id"`
	LoginID        string  `json:"login_id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`

	JobPosition   *string `json:"job_position,omitempty"`
	Department    *string `json:"department,omitempty"`
	ManagerID     *string `json:"manager_id,omitempty"`
	ManagerName   *string `json:"manager_name,omitempty"`
	Location      *string `json:"location,omitempty"`
	DateOfJoining string  `json:"date_of_joining"`

	DateOfBirth     *string `json:"date_of_birth,omitempty"`
	ResidingAddress *string `json:"residing_address,omitempty"`
	Nationality     *string `json:"nationality,omitempty"`
	PersonalEmail   *string `json:"personal_email,omitempty"`
	Gender          *string `json:"gender,omitempty"`

	About             *string  `json:"about,omitempty"`
	WhatILoveAboutJob *string  `json:"what_i_love_about_job,omitempty"`
	InterestsHobbies  *string  `json:"interests_hobbies,omitempty"`
	Skills            []string `json:"skills"`
	Certifications    []string `json:"certifications"`

	BankName      *string `json:"bank_name,omitempty"`
	AccountNumber *string `json:"account_number,omitempty"`
	IFSCCode      *string `json:"ifsc_code,omitempty"`
	PANNo         *string `json:"pan_no,omitempty"`
	UANNo         *string `json:"uan_no,omitempty"`
	EmpCode       *string `json:"emp_code,omitempty"`

	TodayStatus *string `json:"today_status,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                e.ID,
		UserID:            e.UserID,
		CompanyID:         e.CompanyID,
		LoginID:           e.LoginID,
		FirstName:         e.FirstName,
		LastName:          e.LastName,
		FullName:          e.FullName(),
		Email:             e.Email,
		Phone:             e.Phone,
		ProfilePicture:    e.ProfilePicture,
		JobPosition:       e.JobPosition,
		Department:        e.Department,
		ManagerID:         e.ManagerID,
		ManagerName:       e.ManagerName,
		Location:          e.Location,
		DateOfJoining:     e.DateOfJoining.Format(dateLayout),
		ResidingAddress:   e.ResidingAddress,
		Nationality:       e.Nationality,
		PersonalEmail:     e.PersonalEmail,
		About:             e.About,
		WhatILoveAboutJob: e.WhatILoveAboutJob,
		InterestsHobbies:  e.InterestsHobbies,
		Skills:            nonNil(e.Skills),
		Certifications:    nonNil(e.Certifications),
		BankName:          e.BankName,
		AccountNumber:     e.AccountNumber,
		IFSCCode:          e.IFSCCode,
		PANNo:             e.PANNo,
		UANNo:             e.UANNo,
		EmpCode:           e.EmpCode,
		CreatedAt:         e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         e.UpdatedAt.Format(time.RFC3339),
	}
	if e.DateOfBirth != nil {
		dob := e.DateOfBirth.Format(dateLayout)
		resp.DateOfBirth = &dob
	}
	if e.Gender != nil {
		g := string(*e.Gender)
		resp.Gender = &g
	}
	return resp
}

func NewDirectoryResponse(d DirectoryEntry) EmployeeResponse {
	resp := NewEmployeeResponse(d.Employee)
	status := string(d.TodayStatus)
	resp.TodayStatus = &status
	return resp
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Showing    string             `json:"showing"`
	Employees  []EmployeeResponse `json:"employees"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
