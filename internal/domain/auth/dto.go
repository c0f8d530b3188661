package auth

import (
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/company"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
)

const MinPasswordLength = 6

// RegisterRequest signs up a company together with its first administrator.
// It arrives as JSON or as the "data" field of a multipart form carrying the logo.
type RegisterRequest struct {
	CompanyName     string `json:"company_name"`
	CompanyPrefix   string `json:"company_prefix,omitempty"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`

	Logo       multipart.File        `json:"-"`
	LogoHeader *multipart.FileHeader `json:"-"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	// Company
	if validator.IsEmpty(r.CompanyName) {
		errs.Add("company_name", "company_name is required")
	} else if len(r.CompanyName) > 255 {
		errs.Add("company_name", "company_name must not exceed 255 characters")
	}
	if r.CompanyPrefix != "" && !validator.IsValidCompanyPrefix(strings.ToUpper(r.CompanyPrefix)) {
		errs.Add("company_prefix", "company_prefix must be 2 to 4 letters")
	}

	// Admin
	if validator.IsEmpty(r.FirstName) {
		errs.Add("first_name", "first_name is required")
	}
	if validator.IsEmpty(r.LastName) {
		errs.Add("last_name", "last_name is required")
	}
	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if len(r.Email) > 254 {
		errs.Add("email", "email must not exceed 254 characters")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "email must be a valid email address, e.g. user@example.com")
	}
	if r.Phone != "" && !validator.IsValidPhoneNumber(r.Phone) {
		errs.Add("phone", "phone must contain 10 to 15 digits")
	}

	// Password
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	} else if len(r.Password) < MinPasswordLength {
		errs.Add("password", "password must be at least 6 characters long")
	} else if len(r.Password) > 72 {
		errs.Add("password", "password must not exceed 72 characters")
	}
	if validator.IsEmpty(r.ConfirmPassword) {
		errs.Add("confirm_password", "confirm_password is required")
	} else if r.ConfirmPassword != r.Password {
		errs.Add("confirm_password", "password and confirm_password do not match")
	}

	if r.LogoHeader != nil {
		ext := strings.ToLower(filepath.Ext(r.LogoHeader.Filename))
		if !slices.Contains([]string{".jpg", ".jpeg", ".png"}, ext) {
			errs.Add("logo", "invalid file type: only jpg, jpeg, png allowed")
		}
		if r.LogoHeader.Size > 5<<20 {
			errs.Add("logo", "logo size must not exceed 5MB")
		}
	}

	return errs.Err()
}

// LoginRequest accepts either an email address or an employee login id as identifier.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Identifier) {
		errs.Add("identifier", "login id or email is required")
	} else if len(r.Identifier) > 254 {
		errs.Add("identifier", "identifier must not exceed 254 characters")
	}
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	}

	return errs.Err()
}

// IsEmail reports whether the identifier should be looked up as an email address.
func (r *LoginRequest) IsEmail() bool {
	return strings.Contains(r.Identifier, "@")
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RefreshToken) {
		errs.Add("refresh_token", "refresh_token is required")
	} else if len(r.RefreshToken) > 2048 {
		errs.Add("refresh_token", "refresh_token is too long")
	}

	return errs.Err()
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CurrentPassword) {
		errs.Add("current_password", "current_password is required")
	}
	if len(r.NewPassword) < MinPasswordLength {
		errs.Add("new_password", "new_password must be at least 6 characters long")
	} else if len(r.NewPassword) > 72 {
		errs.Add("new_password", "new_password must not exceed 72 characters")
	} else if r.NewPassword == r.CurrentPassword {
		errs.Add("new_password", "new_password must differ from the current password")
	}
	if r.ConfirmPassword != r.NewPassword {
		errs.Add("confirm_password", "new_password and confirm_password do not match")
	}

	return errs.Err()
}

type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}

// MeResponse is the session bootstrap payload: who am I, which employee, which company.
type MeResponse struct {
	User     user.UserResponse          `json:"user"`
	Employee *employee.EmployeeResponse `json:"employee,omitempty"`
	Company  company.CompanyResponse    `json:"company"`
}
