package leave

import (
	"mime/multipart"
	"testing"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLeaveRequestRequest_Validate(t *testing.T) {
	req := CreateLeaveRequestRequest{LeaveType: "paid", StartDate: "2025-04-01", EndDate: "2025-04-03"}
	require.NoError(t, req.Validate())

	start, end := req.Dates()
	assert.Equal(t, 3, Allocation(start, end))

	reversed := CreateLeaveRequestRequest{LeaveType: "paid", StartDate: "2025-04-03", EndDate: "2025-04-01"}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, reversed.Validate(), &verrs)
	assert.Equal(t, "end_date must not be before start_date", verrs.ToMap()["end_date"])

	bad := CreateLeaveRequestRequest{
		LeaveType:  "vacation",
		StartDate:  "04/01/2025",
		FileHeader: &multipart.FileHeader{Filename: "note.docx", Size: 100},
	}
	require.ErrorAs(t, bad.Validate(), &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "leave_type")
	assert.Contains(t, fields, "start_date")
	assert.Contains(t, fields, "end_date")
	assert.Contains(t, fields, "attachment")
}

func TestLeaveRequestFilter(t *testing.T) {
	f := LeaveRequestFilter{Status: "cancelled"}
	assert.Error(t, f.Validate())

	f = LeaveRequestFilter{Status: "pending", Limit: 0}
	require.NoError(t, f.Validate())
	f.Normalize()
	assert.Equal(t, 20, f.Limit)
}

func TestNewListLeaveRequestResponse(t *testing.T) {
	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	items := []LeaveRequest{
		{ID: "1", Status: StatusPending, StartDate: now, EndDate: now, Allocation: 1},
		{ID: "2", Status: StatusApproved, StartDate: now, EndDate: now, Allocation: 1},
	}
	resp := NewListLeaveRequestResponse(items, 2, LeaveRequestFilter{Page: 1, Limit: 20})
	assert.Equal(t, 1, resp.PendingCount)
	assert.Equal(t, "1-2 of 2", resp.Showing)
	assert.Equal(t, "2025-04-01", resp.LeaveRequests[0].StartDate)
}

func TestNewLeaveBalanceResponse(t *testing.T) {
	resp := NewLeaveBalanceResponse(NewDefaultBalance("e-1", 2025))
	assert.Equal(t, "24.0", resp.PaidLeave)
	assert.Equal(t, "7.0", resp.SickLeave)
	assert.Equal(t, "0.0", resp.UnpaidLeave)
}
