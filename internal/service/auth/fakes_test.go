package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/company"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
)

type fakeTx struct{ calls int }

func (f *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeUserRepo struct {
	users map[string]user.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]user.User{}}
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetByLoginID(_ context.Context, loginID string) (user.User, error) {
	for _, u := range r.users {
		if u.LoginID != nil && *u.LoginID == loginID {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	if exists, _ := r.ExistsByEmail(ctx, newUser.Email); exists {
		return user.User{}, user.ErrUserEmailExists
	}
	r.seq++
	newUser.ID = fmt.Sprintf("user-%d", r.seq)
	newUser.CreatedAt = time.Now()
	newUser.UpdatedAt = newUser.CreatedAt
	r.users[newUser.ID] = newUser
	return newUser, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	u, ok := r.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	r.users[userID] = u
	return nil
}

func (r *fakeUserRepo) UpdateEmail(_ context.Context, userID, email string) error {
	u, ok := r.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Email = email
	r.users[userID] = u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, userID string) error {
	delete(r.users, userID)
	return nil
}

// link mirrors the users/employees join of the real repository.
func (r *fakeUserRepo) link(userID, employeeID, loginID string) {
	u := r.users[userID]
	u.EmployeeID = &employeeID
	u.LoginID = &loginID
	r.users[userID] = u
}

type fakeCompanyRepo struct {
	companies map[string]company.Company
	serials   map[string]int
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[string]company.Company{}, serials: map[string]int{}}
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id string) (company.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

func (r *fakeCompanyRepo) Create(_ context.Context, newCompany company.Company) (company.Company, error) {
	for _, c := range r.companies {
		if c.Prefix == newCompany.Prefix {
			return company.Company{}, company.ErrCompanyPrefixTaken
		}
	}
	newCompany.ID = fmt.Sprintf("company-%d", len(r.companies)+1)
	r.companies[newCompany.ID] = newCompany
	return newCompany, nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, id string, req company.UpdateCompanyRequest) (company.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.LogoURL != nil {
		c.LogoURL = req.LogoURL
	}
	r.companies[id] = c
	return c, nil
}

func (r *fakeCompanyRepo) NextJoiningSerial(_ context.Context, companyID string, year int) (int, error) {
	key := fmt.Sprintf("%s/%d", companyID, year)
	r.serials[key]++
	return r.serials[key], nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
	users     *fakeUserRepo
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	for _, existing := range r.employees {
		if existing.LoginID == e.LoginID {
			return employee.Employee{}, employee.ErrLoginIDExists
		}
	}
	e.ID = fmt.Sprintf("employee-%d", len(r.employees)+1)
	r.employees[e.ID] = e
	if r.users != nil {
		r.users.link(e.UserID, e.ID, e.LoginID)
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, companyID, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok || e.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetByUserID(_ context.Context, userID string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.UserID == userID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) List(context.Context, string, employee.EmployeeFilter, time.Time) ([]employee.DirectoryEntry, int64, error) {
	return nil, 0, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.employees[e.ID] = e
	return e, nil
}

func (r *fakeEmployeeRepo) UpdateProfilePicture(context.Context, string, string, string) error {
	return nil
}

type fakeRefreshTokenRepo struct {
	tokens  map[string]string // token -> user id
	revoked map[string]bool
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: map[string]string{}, revoked: map[string]bool{}}
}

func (r *fakeRefreshTokenRepo) CreateRefreshToken(_ context.Context, userID, token string, _ int64, _ auth.SessionTrackingRequest) error {
	r.tokens[token] = userID
	return nil
}

func (r *fakeRefreshTokenRepo) IsRefreshTokenRevoked(_ context.Context, token string) (string, bool, error) {
	userID, ok := r.tokens[token]
	if !ok {
		return "", false, auth.ErrInvalidToken
	}
	return userID, r.revoked[token], nil
}

func (r *fakeRefreshTokenRepo) RevokeRefreshToken(_ context.Context, token string) error {
	r.revoked[token] = true
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeAllForUser(_ context.Context, userID string) error {
	for token, owner := range r.tokens {
		if owner == userID {
			r.revoked[token] = true
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}
