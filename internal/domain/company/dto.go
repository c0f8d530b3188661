package company

import (
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
)

type CompanyResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Prefix    string  `json:"prefix"`
	LogoURL   *string `json:"logo_url,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func NewCompanyResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Prefix:    c.Prefix,
		LogoURL:   c.LogoURL,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

// UpdateCompanyRequest changes the company name and optionally replaces the logo.
// The prefix is fixed at sign-up because issued login ids embed it.
type UpdateCompanyRequest struct {
	Name *string `json:"name,omitempty"`

	Logo       multipart.File        `json:"-"`
	LogoHeader *multipart.FileHeader `json:"-"`
	LogoURL    *string               `json:"-"`
}

func (r *UpdateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs.Add("name", "name must not be empty")
		} else if len(*r.Name) > 255 {
			errs.Add("name", "name must not exceed 255 characters")
		}
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

	if r.Name == nil && r.LogoHeader == nil {
		errs.Add("name", "nothing to update")
	}

	return errs.Err()
}
