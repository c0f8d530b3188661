package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/middleware"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter/v3"
)

type RouterConfig struct {
	AppName        string
	Version        string
	Env            string
	LogLevel       slog.Level
	AllowedOrigins []string
	// UploadsDir is served under /uploads when set.
	UploadsDir string
}

type Handlers struct {
	Auth       AuthHandler
	Company    CompanyHandler
	Employee   EmployeeHandler
	Payroll    PayrollHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
}

// NewRouter wires every route. loginLimiter may be nil to disable login throttling.
func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers, loginLimiter *limiter.Limiter) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Request-Id"},
		ExposedHeaders:   []string{"Link", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Handle("/metrics", promhttp.Handler())

	if cfg.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)

			r.Group(func(r chi.Router) {
				if loginLimiter != nil {
					r.Use(middleware.RateLimit(loginLimiter))
				}
				r.Post("/login", h.Auth.Login)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Get("/auth/me", h.Auth.Me)
			r.Put("/auth/password", h.Auth.ChangePassword)

			r.Route("/companies/my", func(r chi.Router) {
				r.Get("/", h.Company.GetMy)

				// Admin only
				r.With(middleware.AdminOnly).Put("/", h.Company.UpdateMy)
			})

			r.Route("/employees", func(r chi.Router) {
				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Employee.ListEmployees)
					r.Post("/", h.Employee.CreateEmployee)
				})

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Employee.GetEmployee)
					r.Put("/", h.Employee.UpdateEmployee)
					r.Put("/private", h.Employee.UpdatePrivateInfo)
					r.Post("/avatar", h.Employee.UploadAvatar)
					r.Get("/salary", h.Payroll.GetSalaryInfo)
					r.Get("/leave-balance", h.Leave.GetEmployeeBalance)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Delete("/", h.Employee.DeleteEmployee)
						r.Put("/salary", h.Payroll.UpsertSalaryInfo)
					})
				})
			})

			r.With(middleware.RequirePermission(user.PermissionSalaryManage)).
				Post("/salary/preview", h.Payroll.PreviewBreakdown)

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.Attendance.ListAttendance)
				r.Get("/today", h.Attendance.GetToday)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceCreate))
					r.Post("/check-in", h.Attendance.CheckIn)
					r.Post("/check-out", h.Attendance.CheckOut)
				})
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Get("/", h.Leave.ListRequests)
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", h.Leave.CreateRequest)
				r.Get("/{id}", h.Leave.GetRequest)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
					r.Post("/{id}/approve", h.Leave.ApproveRequest)
					r.Post("/{id}/reject", h.Leave.RejectRequest)
				})
			})

			r.Get("/leave-balances/me", h.Leave.GetMyBalance)
		})
	})
	return r
}
