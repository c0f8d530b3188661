package leave

import (
	"bytes"
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin = user.Principal{UserID: "u0", EmployeeID: "e0", CompanyID: "c1", Role: user.RoleAdmin}
	john  = user.Principal{UserID: "u1", EmployeeID: "e1", CompanyID: "c1", Role: user.RoleEmployee}
	mary  = user.Principal{UserID: "u2", EmployeeID: "e2", CompanyID: "c1", Role: user.RoleEmployee}
)

type leaveFixture struct {
	svc      *LeaveServiceImpl
	requests *fakeRequestRepo
	balances *fakeBalanceRepo
	files    *fakeFileService
}

func newLeaveFixture() leaveFixture {
	requests := &fakeRequestRepo{rows: map[string]leave.LeaveRequest{}}
	balances := &fakeBalanceRepo{rows: map[string]leave.LeaveBalance{}}
	files := &fakeFileService{}

	balanceService := NewBalanceService(balances)
	requestService := NewRequestService(fakeTx{requests: requests, balances: balances}, requests, balanceService)
	svc := NewLeaveService(requests, fakeEmployeeRepo{}, balanceService, requestService, files).(*LeaveServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	return leaveFixture{svc: svc, requests: requests, balances: balances, files: files}
}

func (f leaveFixture) submit(t *testing.T, p user.Principal, leaveType, start, end string) leave.LeaveRequestResponse {
	t.Helper()
	resp, err := f.svc.CreateLeaveRequest(context.Background(), p, leave.CreateLeaveRequestRequest{
		LeaveType: leaveType, StartDate: start, EndDate: end,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateLeaveRequest(t *testing.T) {
	f := newLeaveFixture()
	ctx := context.Background()

	resp := f.submit(t, john, "paid", "2024-03-10", "2024-03-12")
	assert.Equal(t, 3, resp.Allocation)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "e1", resp.EmployeeID)

	_, err := f.svc.CreateLeaveRequest(ctx, john, leave.CreateLeaveRequestRequest{
		LeaveType: "sick", StartDate: "2024-03-12", EndDate: "2024-03-13",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)

	_, err = f.svc.CreateLeaveRequest(ctx, john, leave.CreateLeaveRequestRequest{
		LeaveType: "sick", StartDate: "2024-03-20", EndDate: "2024-03-19",
	})
	assert.ErrorIs(t, err, leave.ErrInvalidAllocation)

	_, err = f.svc.CreateLeaveRequest(ctx, user.Principal{UserID: "u9", CompanyID: "c1", Role: user.RoleAdmin}, leave.CreateLeaveRequestRequest{
		LeaveType: "paid", StartDate: "2024-03-20", EndDate: "2024-03-20",
	})
	assert.ErrorIs(t, err, leave.ErrNoEmployeeProfile)
}

type memFile struct{ *bytes.Reader }

func (memFile) Close() error { return nil }

func TestCreateLeaveRequest_AttachmentCleanedUpOnFailure(t *testing.T) {
	f := newLeaveFixture()
	f.submit(t, john, "sick", "2024-03-10", "2024-03-10")

	req := leave.CreateLeaveRequestRequest{
		LeaveType: "sick", StartDate: "2024-03-10", EndDate: "2024-03-11",
		File:       memFile{bytes.NewReader([]byte("%PDF"))},
		FileHeader: &multipart.FileHeader{Filename: "note.pdf", Size: 4},
	}
	_, err := f.svc.CreateLeaveRequest(context.Background(), john, req)
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
	assert.Equal(t, []string{"http://files.test/attachments/e1/note.pdf"}, f.files.deleted)
}

func TestApproveLeaveRequest_DeductsBalance(t *testing.T) {
	f := newLeaveFixture()
	ctx := context.Background()
	comment := "enjoy"

	req := f.submit(t, john, "paid", "2024-03-10", "2024-03-14")

	_, err := f.svc.ApproveLeaveRequest(ctx, john, req.ID, leave.ReviewLeaveRequest{})
	assert.ErrorIs(t, err, leave.ErrUnauthorized)

	approved, err := f.svc.ApproveLeaveRequest(ctx, admin, req.ID, leave.ReviewLeaveRequest{AdminComment: &comment})
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	assert.Equal(t, &comment, approved.AdminComment)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, "u0", *approved.ReviewedBy)
	assert.NotNil(t, approved.ReviewedAt)

	balance, err := f.svc.GetMyBalance(ctx, john, 2024)
	require.NoError(t, err)
	assert.Equal(t, "19.0", balance.PaidLeave)
	assert.Equal(t, "7.0", balance.SickLeave)

	_, err = f.svc.ApproveLeaveRequest(ctx, admin, req.ID, leave.ReviewLeaveRequest{})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
	_, err = f.svc.RejectLeaveRequest(ctx, admin, req.ID, leave.ReviewLeaveRequest{})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
}

func TestApproveLeaveRequest_InsufficientBalanceLeavesPending(t *testing.T) {
	f := newLeaveFixture()
	ctx := context.Background()

	// Eight sick days against the default seven.
	req := f.submit(t, john, "sick", "2024-04-01", "2024-04-08")

	_, err := f.svc.ApproveLeaveRequest(ctx, admin, req.ID, leave.ReviewLeaveRequest{})
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	got, err := f.svc.GetLeaveRequest(ctx, john, req.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status)
}

func TestApproveLeaveRequest_UnpaidNeverDeducted(t *testing.T) {
	f := newLeaveFixture()
	ctx := context.Background()

	req := f.submit(t, john, "unpaid", "2024-05-01", "2024-05-31")
	_, err := f.svc.ApproveLeaveRequest(ctx, admin, req.ID, leave.ReviewLeaveRequest{})
	require.NoError(t, err)

	balance, err := f.svc.GetMyBalance(ctx, john, 2024)
	require.NoError(t, err)
	assert.Equal(t, "24.0", balance.PaidLeave)
	assert.Equal(t, "0.0", balance.UnpaidLeave)
}

func TestRejectLeaveRequest_FreesDates(t *testing.T) {
	f := newLeaveFixture()
	ctx := context.Background()

	req := f.submit(t, john, "paid", "2024-03-10", "2024-03-10")
	rejected, err := f.svc.RejectLeaveRequest(ctx, admin, req.ID, leave.ReviewLeaveRequest{})
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)

	f.submit(t, john, "paid", "2024-03-10", "2024-03-10")
}

func TestListAndGetLeaveRequests_Scoping(t *testing.T) {
	f := newLeaveFixture()
	ctx := context.Background()

	johnReq := f.submit(t, john, "paid", "2024-03-10", "2024-03-10")
	f.submit(t, mary, "sick", "2024-03-11", "2024-03-11")

	mine, err := f.svc.ListLeaveRequests(ctx, john, leave.LeaveRequestFilter{EmployeeID: "e2", Search: "mary"})
	require.NoError(t, err)
	assert.Equal(t, "e1", f.requests.lastFilter.EmployeeID)
	assert.Empty(t, f.requests.lastFilter.Search)
	assert.EqualValues(t, 1, mine.TotalCount)

	all, err := f.svc.ListLeaveRequests(ctx, admin, leave.LeaveRequestFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.TotalCount)
	assert.Equal(t, 2, all.PendingCount)
	assert.Equal(t, "e2", all.LeaveRequests[0].EmployeeID, "newest first")

	_, err = f.svc.GetLeaveRequest(ctx, mary, johnReq.ID)
	assert.ErrorIs(t, err, leave.ErrUnauthorized)
	_, err = f.svc.GetLeaveRequest(ctx, admin, "missing")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestGetEmployeeBalance(t *testing.T) {
	f := newLeaveFixture()
	ctx := context.Background()

	balance, err := f.svc.GetEmployeeBalance(ctx, admin, "e2", 0)
	require.NoError(t, err)
	assert.Equal(t, 2024, balance.Year)
	assert.Equal(t, "24.0", balance.PaidLeave)

	_, err = f.svc.GetEmployeeBalance(ctx, john, "e2", 2024)
	assert.ErrorIs(t, err, leave.ErrUnauthorized)

	_, err = f.svc.GetEmployeeBalance(ctx, admin, "e404", 2024)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
