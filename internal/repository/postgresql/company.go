package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/company"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

const companyColumns = `id, name, prefix, logo_url, created_at, updated_at`

func scanCompany(row pgx.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(&c.ID, &c.Name, &c.Prefix, &c.LogoURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, err
	}
	return c, nil
}

// Update implements company.CompanyRepository.
func (c *companyRepositoryImpl) Update(ctx context.Context, id string, req company.UpdateCompanyRequest) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	var setClauses []string
	var args []interface{}
	set := func(col string, val interface{}) {
		args = append(args, val)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if req.Name != nil {
		set("name", strings.TrimSpace(*req.Name))
	}
	if req.LogoURL != nil {
		set("logo_url", *req.LogoURL)
	}
	if len(setClauses) == 0 {
		return company.Company{}, fmt.Errorf("no updatable fields provided for company update")
	}
	set("updated_at", time.Now())

	args = append(args, id)
	sql := "UPDATE companies SET " + strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING ", len(args)) + companyColumns

	updated, err := scanCompany(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return company.Company{}, err
		}
		return company.Company{}, fmt.Errorf("failed to update company with id %s: %w", id, err)
	}
	return updated, nil
}

// Create implements company.CompanyRepository.
func (c *companyRepositoryImpl) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		INSERT INTO companies (name, prefix, logo_url)
		VALUES ($1, $2, $3)
		RETURNING ` + companyColumns

	created, err := scanCompany(q.QueryRow(ctx, query, newCompany.Name, newCompany.Prefix, newCompany.LogoURL))
	if err != nil {
		if isUniqueViolation(err, "uk_companies_prefix") {
			return company.Company{}, company.ErrCompanyPrefixTaken
		}
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}
	return created, nil
}

// GetByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	found, err := scanCompany(q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return company.Company{}, err
		}
		return company.Company{}, fmt.Errorf("failed to get company with id %s: %w", id, err)
	}
	return found, nil
}

// NextJoiningSerial implements company.CompanyRepository.
func (c *companyRepositoryImpl) NextJoiningSerial(ctx context.Context, companyID string, year int) (int, error) {
	q := GetQuerier(ctx, c.db)

	var serial int
	if err := q.QueryRow(ctx, `SELECT next_joining_serial($1, $2)`, companyID, year).Scan(&serial); err != nil {
		return 0, fmt.Errorf("failed to allocate joining serial for company %s/%d: %w", companyID, year, err)
	}
	return serial, nil
}
