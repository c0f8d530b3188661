package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/company"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/credential"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/email"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/metrics"
	"github.com/dayflow-hr/dayflow-backend-go/internal/service/file"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	tx           database.Transactor
	employeeRepo employee.EmployeeRepository
	userRepo     user.UserRepository
	companyRepo  company.CompanyRepository
	fileService  file.FileService
	emailService email.EmailService
	loginURL     string
	now          func() time.Time
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	companyRepo company.CompanyRepository,
	fileService file.FileService,
	emailService email.EmailService,
	loginURL string,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		companyRepo:  companyRepo,
		fileService:  fileService,
		emailService: emailService,
		loginURL:     loginURL,
		now:          time.Now,
	}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, principal user.Principal, req employee.CreateEmployeeRequest) (employee.CreateEmployeeResponse, error) {
	if !principal.Can(user.PermissionEmployeeManage) {
		return employee.CreateEmployeeResponse{}, employee.ErrUnauthorized
	}

	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.userRepo.ExistsByEmail(ctx, emailAddr)
	if err != nil {
		return employee.CreateEmployeeResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return employee.CreateEmployeeResponse{}, employee.ErrEmailExists
	}

	if req.ManagerID != nil {
		if _, err := s.employeeRepo.GetByID(ctx, principal.CompanyID, *req.ManagerID); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return employee.CreateEmployeeResponse{}, employee.ErrManagerNotFound
			}
			return employee.CreateEmployeeResponse{}, fmt.Errorf("failed to get manager: %w", err)
		}
	}

	companyData, err := s.companyRepo.GetByID(ctx, principal.CompanyID)
	if err != nil {
		return employee.CreateEmployeeResponse{}, fmt.Errorf("failed to get company: %w", err)
	}

	password, err := credential.GenerateRandomPassword(credential.DefaultPasswordLength)
	if err != nil {
		return employee.CreateEmployeeResponse{}, fmt.Errorf("failed to generate password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return employee.CreateEmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	joining := req.JoiningDate(s.now())
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)

	var created employee.Employee
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		serial, err := s.companyRepo.NextJoiningSerial(txCtx, companyData.ID, joining.Year())
		if err != nil {
			return fmt.Errorf("failed to allocate joining serial: %w", err)
		}

		newUser, err := s.userRepo.Create(txCtx, user.User{
			CompanyID:    companyData.ID,
			Email:        emailAddr,
			PasswordHash: string(hash),
			Role:         user.RoleEmployee,
		})
		if err != nil {
			if errors.Is(err, user.ErrUserEmailExists) {
				return employee.ErrEmailExists
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		created, err = s.employeeRepo.Create(txCtx, employee.Employee{
			UserID:        newUser.ID,
			CompanyID:     companyData.ID,
			LoginID:       credential.GenerateLoginID(companyData.Prefix, firstName, lastName, joining.Year(), serial),
			FirstName:     firstName,
			LastName:      lastName,
			Email:         emailAddr,
			Phone:         req.Phone,
			JobPosition:   req.JobPosition,
			Department:    req.Department,
			ManagerID:     req.ManagerID,
			Location:      req.Location,
			DateOfJoining: joining,
			JoiningSerial: serial,
			JoiningYear:   joining.Year(),
		})
		if err != nil {
			if errors.Is(err, employee.ErrEmailExists) || errors.Is(err, employee.ErrLoginIDExists) || errors.Is(err, employee.ErrManagerNotFound) {
				return err
			}
			return fmt.Errorf("failed to create employee: %w", err)
		}
		return nil
	})
	if err != nil {
		return employee.CreateEmployeeResponse{}, err
	}

	metrics.RecordEmployeeCreated()
	slog.Info("Employee created", "company_id", created.CompanyID, "employee_id", created.ID, "login_id", created.LoginID)

	resp := employee.CreateEmployeeResponse{
		Employee: employee.NewEmployeeResponse(created),
		Credentials: employee.Credentials{
			LoginID:           created.LoginID,
			Email:             created.Email,
			TemporaryPassword: password,
		},
	}

	if s.emailService != nil && s.emailService.Enabled() {
		err := s.emailService.SendCredentials(ctx, created.Email, email.CredentialsEmailData{
			EmployeeName:      created.FullName(),
			CompanyName:       companyData.Name,
			LoginID:           created.LoginID,
			Email:             created.Email,
			TemporaryPassword: password,
			LoginURL:          s.loginURL,
		})
		if err != nil {
			slog.Error("failed to mail employee credentials", "employee_id", created.ID, "error", err)
		} else {
			resp.CredentialsMailed = true
		}
	}

	return resp, nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, principal user.Principal, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if !principal.Can(user.PermissionEmployeeViewAll) {
		return employee.ListEmployeeResponse{}, employee.ErrUnauthorized
	}
	filter.Normalize()

	y, m, d := s.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	entries, total, err := s.employeeRepo.List(ctx, principal.CompanyID, filter, today)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	employees := make([]employee.EmployeeResponse, 0, len(entries))
	for _, entry := range entries {
		employees = append(employees, employee.NewDirectoryResponse(entry))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	start := (filter.Page-1)*filter.Limit + 1
	end := start + len(entries) - 1
	if len(entries) == 0 {
		start, end = 0, 0
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    fmt.Sprintf("%d-%d of %d", start, end, total),
		Employees:  employees,
	}, nil
}

// load fetches an employee the caller is allowed to see.
func (s *EmployeeServiceImpl) load(ctx context.Context, principal user.Principal, id string) (employee.Employee, error) {
	if !principal.CanAccessEmployee(id) {
		return employee.Employee{}, employee.ErrUnauthorized
	}
	e, err := s.employeeRepo.GetByID(ctx, principal.CompanyID, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, err
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, principal user.Principal, id string) (employee.EmployeeResponse, error) {
	e, err := s.load(ctx, principal, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, principal user.Principal, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if req.HasJobFields() && !principal.IsAdmin() {
		return employee.EmployeeResponse{}, employee.ErrJobFieldsAdminOnly
	}

	e, err := s.load(ctx, principal, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.ManagerID != nil && *req.ManagerID != "" {
		if *req.ManagerID == e.ID {
			return employee.EmployeeResponse{}, employee.ErrCannotManageSelf
		}
		if _, err := s.employeeRepo.GetByID(ctx, principal.CompanyID, *req.ManagerID); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return employee.EmployeeResponse{}, employee.ErrManagerNotFound
			}
			return employee.EmployeeResponse{}, fmt.Errorf("failed to get manager: %w", err)
		}
	}

	req.ApplyTo(&e)
	updated, err := s.employeeRepo.Update(ctx, e)
	if err != nil {
		if errors.Is(err, employee.ErrManagerNotFound) || errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return employee.NewEmployeeResponse(updated), nil
}

// UpdatePrivateInfo implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdatePrivateInfo(ctx context.Context, principal user.Principal, id string, req employee.UpdatePrivateInfoRequest) (employee.EmployeeResponse, error) {
	e, err := s.load(ctx, principal, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	req.ApplyTo(&e)
	updated, err := s.employeeRepo.Update(ctx, e)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update private info: %w", err)
	}
	return employee.NewEmployeeResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService. Removing the user row
// cascades to the employee and everything keyed on it.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, principal user.Principal, id string) error {
	if !principal.Can(user.PermissionEmployeeManage) {
		return employee.ErrUnauthorized
	}
	if id == principal.EmployeeID {
		return employee.ErrCannotDeleteSelf
	}

	e, err := s.load(ctx, principal, id)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, e.UserID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	if e.ProfilePicture != nil {
		if err := s.fileService.DeleteByURL(ctx, *e.ProfilePicture); err != nil {
			slog.Warn("failed to delete profile picture", "employee_id", e.ID, "error", err)
		}
	}
	slog.Info("Employee deleted", "company_id", e.CompanyID, "employee_id", e.ID, "deleted_by", principal.UserID)
	return nil
}

// UploadAvatar implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UploadAvatar(ctx context.Context, principal user.Principal, id string, req employee.UploadAvatarRequest) (employee.EmployeeResponse, error) {
	e, err := s.load(ctx, principal, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	url, err := s.fileService.UploadProfilePicture(ctx, e.ID, req.File, req.FileHeader.Filename)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to upload profile picture: %w", err)
	}
	if err := s.employeeRepo.UpdateProfilePicture(ctx, e.CompanyID, e.ID, url); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to save profile picture: %w", err)
	}

	if e.ProfilePicture != nil && *e.ProfilePicture != url {
		if err := s.fileService.DeleteByURL(ctx, *e.ProfilePicture); err != nil {
			slog.Warn("failed to delete previous profile picture", "employee_id", e.ID, "error", err)
		}
	}

	e.ProfilePicture = &url
	return employee.NewEmployeeResponse(e), nil
}
