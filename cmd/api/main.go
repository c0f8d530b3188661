package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/config"
	appHTTP "github.com/dayflow-hr/dayflow-backend-go/internal/handler/http"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/cron"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/email"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/ratelimit"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/storage"
	"github.com/dayflow-hr/dayflow-backend-go/internal/repository/postgresql"
	attendanceService "github.com/dayflow-hr/dayflow-backend-go/internal/service/attendance"
	serviceAuth "github.com/dayflow-hr/dayflow-backend-go/internal/service/auth"
	serviceCompany "github.com/dayflow-hr/dayflow-backend-go/internal/service/company"
	employeeService "github.com/dayflow-hr/dayflow-backend-go/internal/service/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/service/file"
	"github.com/dayflow-hr/dayflow-backend-go/internal/service/leave"
	payrollService "github.com/dayflow-hr/dayflow-backend-go/internal/service/payroll"
)

const appName = "dayflow-hr"

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With(slog.String("app", appName), slog.String("version", cfg.App.Version)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	// Repositories
	tx := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	refreshTokenRepo := postgresql.NewJWTRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	salaryInfoRepo := postgresql.NewSalaryInfoRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.App.Env == "production")
	if err != nil {
		return fmt.Errorf("failed to initialize jwt service: %w", err)
	}

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}

	fileService := file.NewFileService(fileStorage)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return fmt.Errorf("failed to initialize email service: %w", err)
	}

	// Services
	authService := serviceAuth.NewAuthService(tx, userRepo, companyRepo, employeeRepo, JWTService, refreshTokenRepo, fileService)
	companyService := serviceCompany.NewCompanyService(companyRepo, fileService)
	employeeSvc := employeeService.NewEmployeeService(tx, employeeRepo, userRepo, companyRepo, fileService, emailService, cfg.App.FrontendURL)
	payrollSvc := payrollService.NewPayrollService(salaryInfoRepo, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo)
	balanceService := leave.NewBalanceService(leaveBalanceRepo)
	requestService := leave.NewRequestService(tx, leaveRequestRepo, balanceService)
	leaveService := leave.NewLeaveService(leaveRequestRepo, employeeRepo, balanceService, requestService, fileService)

	// Background jobs
	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc).RegisterJobs(scheduler)
	cron.NewSessionJobs(refreshTokenRepo).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	loginLimiter, err := ratelimit.New(ctx, cfg.Redis.URL, cfg.RateLimit.LoginRate)
	if err != nil {
		return err
	}
	defer loginLimiter.Close()
	slog.Info("Login rate limiter ready", "backend", loginLimiter.Backend, "rate", cfg.RateLimit.LoginRate)

	uploadsDir := ""
	if local, ok := fileStorage.(*storage.LocalStorage); ok {
		uploadsDir = local.BasePath()
	}

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		AppName:        appName,
		Version:        cfg.App.Version,
		Env:            cfg.App.Env,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.App.AllowedOrigins,
		UploadsDir:     uploadsDir,
	}, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authService),
		Company:    appHTTP.NewCompanyHandler(companyService),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveService),
	}, loginLimiter.Limiter)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
