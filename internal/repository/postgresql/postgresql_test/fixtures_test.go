package postgresql_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/company"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/credential"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/dayflow-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

func createTestCompany(t *testing.T, ctx context.Context, db *database.DB, prefix string) company.Company {
	t.Helper()
	c, err := postgresql.NewCompanyRepository(db).Create(ctx, company.Company{Name: prefix + " Corp", Prefix: prefix})
	require.NoError(t, err)
	return c
}

// createTestEmployee inserts a user and its employee row the way employee creation does.
func createTestEmployee(t *testing.T, ctx context.Context, db *database.DB, c company.Company, first, last string, joined time.Time) employee.Employee {
	t.Helper()
	companyRepo := postgresql.NewCompanyRepository(db)
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	var created employee.Employee
	err := postgresql.NewTransactor(db).WithinTransaction(ctx, func(txCtx context.Context) error {
		serial, err := companyRepo.NextJoiningSerial(txCtx, c.ID, joined.Year())
		if err != nil {
			return err
		}
		email := strings.ToLower(first+"."+last) + "@" + strings.ToLower(c.Prefix) + ".test"
		u, err := userRepo.Create(txCtx, user.User{
			CompanyID: c.ID, Email: email, PasswordHash: "x", Role: user.RoleEmployee,
		})
		if err != nil {
			return err
		}
		created, err = employeeRepo.Create(txCtx, employee.Employee{
			UserID:        u.ID,
			CompanyID:     c.ID,
			LoginID:       credential.GenerateLoginID(c.Prefix, first, last, joined.Year(), serial),
			FirstName:     first,
			LastName:      last,
			Email:         email,
			DateOfJoining: joined,
			JoiningSerial: serial,
			JoiningYear:   joined.Year(),
		})
		return err
	})
	require.NoError(t, err)
	return created
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
