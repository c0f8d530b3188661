package auth

import (
	"context"
	"testing"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/company"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	svc       *AuthServiceImpl
	users     *fakeUserRepo
	companies *fakeCompanyRepo
	employees *fakeEmployeeRepo
	tokens    *fakeRefreshTokenRepo
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()

	jwtService, err := jwt.NewJWTService("test-secret", "1h", "24h", false)
	require.NoError(t, err)

	users := newFakeUserRepo()
	companies := newFakeCompanyRepo()
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{}, users: users}
	tokens := newFakeRefreshTokenRepo()

	svc := NewAuthService(&fakeTx{}, users, companies, employees, jwtService, tokens, nil).(*AuthServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }

	return authFixture{svc: svc, users: users, companies: companies, employees: employees, tokens: tokens}
}

func registerRequest() auth.RegisterRequest {
	return auth.RegisterRequest{
		CompanyName:     "Odoo India",
		FirstName:       "Asha",
		LastName:        "Rao",
		Email:           "Asha@Odoo.test",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
}

func TestRegister_CreatesCompanyAndAdmin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	tokens, err := f.svc.Register(ctx, registerRequest(), auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	require.Len(t, f.companies.companies, 1)
	for _, c := range f.companies.companies {
		assert.Equal(t, "OD", c.Prefix)
		assert.Equal(t, 1, f.companies.serials[c.ID+"/2024"])
	}

	admin, err := f.users.GetByEmail(ctx, "asha@odoo.test")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, admin.Role)
	require.NotNil(t, admin.LoginID)
	assert.Equal(t, "ODADMIN001", *admin.LoginID)

	emp, err := f.employees.GetByUserID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, emp.JoiningSerial)
	assert.Equal(t, 2024, emp.JoiningYear)
	assert.Equal(t, "Asha", emp.FirstName)
}

func TestRegister_CustomPrefixAndDuplicates(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	req := registerRequest()
	req.CompanyPrefix = "dy"
	_, err := f.svc.Register(ctx, req, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	admin, err := f.users.GetByEmail(ctx, "asha@odoo.test")
	require.NoError(t, err)
	assert.Equal(t, "DYADMIN001", *admin.LoginID)

	_, err = f.svc.Register(ctx, req, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)

	req.Email = "other@odoo.test"
	_, err = f.svc.Register(ctx, req, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, company.ErrCompanyPrefixTaken)
}

func TestRegister_DerivedPrefixSkipsNonLetters(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	req := registerRequest()
	req.CompanyName = "A B Traders"
	_, err := f.svc.Register(ctx, req, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	admin, err := f.users.GetByEmail(ctx, "asha@odoo.test")
	require.NoError(t, err)
	assert.Equal(t, "ABADMIN001", *admin.LoginID)
}

func TestRegister_UnderivablePrefixNeedsExplicitOne(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	req := registerRequest()
	req.CompanyName = "7 & 9"
	_, err := f.svc.Register(ctx, req, auth.SessionTrackingRequest{})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "company_prefix")
	assert.Empty(t, f.companies.companies)

	req.CompanyPrefix = "SE"
	_, err = f.svc.Register(ctx, req, auth.SessionTrackingRequest{})
	require.NoError(t, err)
}

func TestLogin_ByEmailAndLoginID(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerRequest(), auth.SessionTrackingRequest{})
	require.NoError(t, err)

	tokens, err := f.svc.Login(ctx, auth.LoginRequest{Identifier: "asha@odoo.test", Password: "secret123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	tokens, err = f.svc.Login(ctx, auth.LoginRequest{Identifier: " odadmin001 ", Password: "secret123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.RefreshToken)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Identifier: "ODADMIN001", Password: "wrong-pass"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Identifier: "nobody@odoo.test", Password: "secret123"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefreshToken_AndLogout(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	tokens, err := f.svc.Register(ctx, registerRequest(), auth.SessionTrackingRequest{})
	require.NoError(t, err)

	access, err := f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, access.AccessToken)

	require.NoError(t, f.svc.Logout(ctx, tokens.RefreshToken))

	_, err = f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)

	_, err = f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: "garbage"})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestMe(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerRequest(), auth.SessionTrackingRequest{})
	require.NoError(t, err)
	admin, err := f.users.GetByEmail(ctx, "asha@odoo.test")
	require.NoError(t, err)

	me, err := f.svc.Me(ctx, admin.Principal())
	require.NoError(t, err)
	assert.Equal(t, "asha@odoo.test", me.User.Email)
	assert.Equal(t, "Odoo India", me.Company.Name)
	require.NotNil(t, me.Employee)
	assert.Equal(t, "ODADMIN001", me.Employee.LoginID)

	_, err = f.svc.Me(ctx, user.Principal{UserID: "missing"})
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	tokens, err := f.svc.Register(ctx, registerRequest(), auth.SessionTrackingRequest{})
	require.NoError(t, err)
	admin, err := f.users.GetByEmail(ctx, "asha@odoo.test")
	require.NoError(t, err)

	err = f.svc.ChangePassword(ctx, admin.Principal(), auth.ChangePasswordRequest{
		CurrentPassword: "not-it", NewPassword: "newsecret", ConfirmPassword: "newsecret",
	})
	assert.ErrorIs(t, err, auth.ErrIncorrectPassword)

	err = f.svc.ChangePassword(ctx, admin.Principal(), auth.ChangePasswordRequest{
		CurrentPassword: "secret123", NewPassword: "newsecret", ConfirmPassword: "newsecret",
	})
	require.NoError(t, err)
	assert.True(t, f.tokens.revoked[tokens.RefreshToken])

	_, err = f.svc.Login(ctx, auth.LoginRequest{Identifier: "asha@odoo.test", Password: "newsecret"}, auth.SessionTrackingRequest{})
	assert.NoError(t, err)
}
