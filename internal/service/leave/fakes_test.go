package leave

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// fakeTx snapshots the in-memory stores and restores them when fn fails.
type fakeTx struct {
	requests *fakeRequestRepo
	balances *fakeBalanceRepo
}

func (f fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	savedRequests := make(map[string]leave.LeaveRequest, len(f.requests.rows))
	for k, v := range f.requests.rows {
		savedRequests[k] = v
	}
	savedBalances := make(map[string]leave.LeaveBalance, len(f.balances.rows))
	for k, v := range f.balances.rows {
		savedBalances[k] = v
	}

	if err := fn(ctx); err != nil {
		f.requests.rows = savedRequests
		f.balances.rows = savedBalances
		return err
	}
	return nil
}

type fakeRequestRepo struct {
	rows       map[string]leave.LeaveRequest
	seq        int
	lastFilter leave.LeaveRequestFilter
}

func (r *fakeRequestRepo) Create(_ context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.seq++
	req.ID = fmt.Sprintf("lr-%d", r.seq)
	req.CreatedAt = time.Date(2024, 1, 1, 0, 0, r.seq, 0, time.UTC)
	r.rows[req.ID] = req
	return req, nil
}

func (r *fakeRequestRepo) GetByID(_ context.Context, companyID, id string) (leave.LeaveRequest, error) {
	req, ok := r.rows[id]
	if !ok || req.CompanyID != companyID {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

func (r *fakeRequestRepo) List(_ context.Context, companyID string, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	r.lastFilter = filter
	var out []leave.LeaveRequest
	for _, req := range r.rows {
		if req.CompanyID != companyID {
			continue
		}
		if filter.EmployeeID != "" && req.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && string(req.Status) != filter.Status {
			continue
		}
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r *fakeRequestRepo) HasOverlap(_ context.Context, employeeID string, start, end time.Time) (bool, error) {
	for _, req := range r.rows {
		if req.EmployeeID != employeeID || req.Status == leave.StatusRejected {
			continue
		}
		if !req.StartDate.After(end) && !req.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRequestRepo) Review(_ context.Context, id string, status leave.RequestStatus, reviewerID string, comment *string, at time.Time) (leave.LeaveRequest, error) {
	req, ok := r.rows[id]
	if !ok || req.Status != leave.StatusPending {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}
	req.Status = status
	req.ReviewedBy = &reviewerID
	req.ReviewedAt = &at
	req.AdminComment = comment
	r.rows[id] = req
	return req, nil
}

type fakeBalanceRepo struct {
	rows map[string]leave.LeaveBalance
}

func balanceKey(employeeID string, year int) string {
	return fmt.Sprintf("%s/%d", employeeID, year)
}

func (r *fakeBalanceRepo) GetOrCreate(_ context.Context, employeeID string, year int) (leave.LeaveBalance, error) {
	key := balanceKey(employeeID, year)
	if b, ok := r.rows[key]; ok {
		return b, nil
	}
	b := leave.NewDefaultBalance(employeeID, year)
	r.rows[key] = b
	return b, nil
}

func (r *fakeBalanceRepo) Deduct(ctx context.Context, employeeID string, year int, leaveType leave.LeaveType, days int) (leave.LeaveBalance, error) {
	b, _ := r.GetOrCreate(ctx, employeeID, year)
	n := decimal.NewFromInt(int64(days))
	switch leaveType {
	case leave.TypePaid:
		if b.PaidLeave.LessThan(n) {
			return leave.LeaveBalance{}, leave.ErrInsufficientBalance
		}
		b.PaidLeave = b.PaidLeave.Sub(n)
	case leave.TypeSick:
		if b.SickLeave.LessThan(n) {
			return leave.LeaveBalance{}, leave.ErrInsufficientBalance
		}
		b.SickLeave = b.SickLeave.Sub(n)
	}
	r.rows[balanceKey(employeeID, year)] = b
	return b, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
}

func (fakeEmployeeRepo) GetByID(_ context.Context, companyID, id string) (employee.Employee, error) {
	if companyID != "c1" || (id != "e1" && id != "e2") {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id, CompanyID: companyID}, nil
}

type fakeFileService struct {
	deleted []string
}

func (f *fakeFileService) UploadProfilePicture(context.Context, string, io.Reader, string) (string, error) {
	return "", nil
}

func (f *fakeFileService) UploadLeaveAttachment(_ context.Context, employeeID string, _ io.Reader, filename string) (string, error) {
	return "http://files.test/attachments/" + employeeID + "/" + filename, nil
}

func (f *fakeFileService) UploadCompanyLogo(context.Context, string, io.Reader, string) (string, error) {
	return "", nil
}

func (f *fakeFileService) DeleteByURL(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}
