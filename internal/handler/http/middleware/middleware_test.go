package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

func newProtectedRouter(t *testing.T, svc jwt.Service, extra ...func(http.Handler) http.Handler) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(svc.JWTAuth()))
	r.Use(AuthRequired)
	r.Use(extra...)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(principal.EmployeeID))
	})
	return r
}

func bearer(t *testing.T, svc jwt.Service, principal user.Principal) string {
	t.Helper()
	token, _, err := svc.GenerateAccessToken(principal)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthRequired(t *testing.T) {
	svc, err := jwt.NewJWTService("test-secret", "1h", "24h", false)
	require.NoError(t, err)
	router := newProtectedRouter(t, svc)

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		refresh, _, err := svc.GenerateRefreshToken("user-1")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+refresh)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid access token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", bearer(t, svc, user.Principal{
			UserID: "user-1", EmployeeID: "emp-1", CompanyID: "co-1", Role: user.RoleEmployee,
		}))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "emp-1", rec.Body.String())
	})
}

func TestAdminOnlyAndRequirePermission(t *testing.T) {
	svc, err := jwt.NewJWTService("test-secret", "1h", "24h", false)
	require.NoError(t, err)

	employee := user.Principal{UserID: "u-2", EmployeeID: "emp-2", CompanyID: "co-1", Role: user.RoleEmployee}
	admin := user.Principal{UserID: "u-1", EmployeeID: "emp-1", CompanyID: "co-1", Role: user.RoleAdmin}

	cases := []struct {
		name      string
		mw        func(http.Handler) http.Handler
		principal user.Principal
		code      int
	}{
		{"admin only rejects employee", AdminOnly, employee, http.StatusForbidden},
		{"admin only allows admin", AdminOnly, admin, http.StatusOK},
		{"permission rejects employee", RequirePermission(user.PermissionLeaveApprove), employee, http.StatusForbidden},
		{"permission allows own attendance", RequirePermission(user.PermissionAttendanceCreate), employee, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newProtectedRouter(t, svc, tc.mw)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", bearer(t, svc, tc.principal))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestRateLimit(t *testing.T) {
	rate, err := limiter.NewRateFromFormatted("2-M")
	require.NoError(t, err)
	l := limiter.New(memory.NewStore(), rate)

	handler := RateLimit(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.1.1.1:5000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}
