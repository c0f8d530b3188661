package employee

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/company"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/email"
)

type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetByLoginID(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	if ok, _ := r.ExistsByEmail(ctx, u.Email); ok {
		return user.User{}, user.ErrUserEmailExists
	}
	u.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) UpdatePassword(context.Context, string, string) error { return nil }

func (r *fakeUserRepo) UpdateEmail(context.Context, string, string) error { return nil }

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeCompanyRepo struct {
	company company.Company
	serials map[int]int
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id string) (company.Company, error) {
	if id != r.company.ID {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return r.company, nil
}

func (r *fakeCompanyRepo) Create(_ context.Context, c company.Company) (company.Company, error) {
	return c, nil
}

func (r *fakeCompanyRepo) Update(context.Context, string, company.UpdateCompanyRequest) (company.Company, error) {
	return r.company, nil
}

func (r *fakeCompanyRepo) NextJoiningSerial(_ context.Context, _ string, year int) (int, error) {
	r.serials[year]++
	return r.serials[year], nil
}

// fakeEmployeeRepo cascades deletes from users the way the schema does.
type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
	users     *fakeUserRepo
	pictures  map[string]string
}

func (r *fakeEmployeeRepo) alive(e employee.Employee) bool {
	_, ok := r.users.users[e.UserID]
	return ok
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	for _, existing := range r.employees {
		if existing.LoginID == e.LoginID {
			return employee.Employee{}, employee.ErrLoginIDExists
		}
	}
	e.ID = fmt.Sprintf("emp-%d", len(r.employees)+1)
	r.employees[e.ID] = e
	return e, nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, companyID, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok || e.CompanyID != companyID || !r.alive(e) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetByUserID(_ context.Context, userID string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.UserID == userID && r.alive(e) {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) List(_ context.Context, companyID string, filter employee.EmployeeFilter, _ time.Time) ([]employee.DirectoryEntry, int64, error) {
	var entries []employee.DirectoryEntry
	for _, e := range r.employees {
		if e.CompanyID == companyID && r.alive(e) {
			entries = append(entries, employee.DirectoryEntry{Employee: e, TodayStatus: employee.TodayAbsent})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].LoginID < entries[j].LoginID })
	total := int64(len(entries))
	start := (filter.Page - 1) * filter.Limit
	if start > len(entries) {
		start = len(entries)
	}
	end := min(start+filter.Limit, len(entries))
	return entries[start:end], total, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	if _, ok := r.employees[e.ID]; !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	r.employees[e.ID] = e
	return e, nil
}

func (r *fakeEmployeeRepo) UpdateProfilePicture(_ context.Context, _, id, url string) error {
	e, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.ProfilePicture = &url
	r.employees[id] = e
	return nil
}

type fakeFileService struct {
	deleted []string
}

func (f *fakeFileService) UploadProfilePicture(_ context.Context, employeeID string, _ io.Reader, filename string) (string, error) {
	return "http://files.test/profiles/" + employeeID + "/" + filename, nil
}

func (f *fakeFileService) UploadLeaveAttachment(context.Context, string, io.Reader, string) (string, error) {
	return "", nil
}

func (f *fakeFileService) UploadCompanyLogo(context.Context, string, io.Reader, string) (string, error) {
	return "", nil
}

func (f *fakeFileService) DeleteByURL(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

type fakeMailer struct {
	enabled bool
	fail    bool
	sent    []email.CredentialsEmailData
}

func (m *fakeMailer) Enabled() bool { return m.enabled }

func (m *fakeMailer) SendCredentials(_ context.Context, _ string, data email.CredentialsEmailData) error {
	if m.fail {
		return errors.New("smtp down")
	}
	m.sent = append(m.sent, data)
	return nil
}
