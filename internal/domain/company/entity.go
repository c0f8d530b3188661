package company

import "time"

type Company struct {
	ID        string
	Name      string
	Prefix    string // leading letters of every employee login id
	LogoURL   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
