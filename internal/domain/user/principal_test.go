package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrincipal_CanAccessEmployee(t *testing.T) {
	admin := Principal{UserID: "u1", EmployeeID: "e1", Role: RoleAdmin}
	emp := Principal{UserID: "u2", EmployeeID: "e2", Role: RoleEmployee}
	orphan := Principal{UserID: "u3", Role: RoleEmployee}

	assert.True(t, admin.CanAccessEmployee("e2"))
	assert.True(t, emp.CanAccessEmployee("e2"))
	assert.False(t, emp.CanAccessEmployee("e1"))
	assert.False(t, orphan.CanAccessEmployee(""))
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleAdmin, PermissionLeaveApprove))
	assert.True(t, HasPermission(RoleEmployee, PermissionLeaveCreate))
	assert.False(t, HasPermission(RoleEmployee, PermissionLeaveApprove))
	assert.False(t, HasPermission(RoleEmployee, PermissionSalaryManage))
	assert.False(t, HasPermission(Role("owner"), PermissionCompanyView))

	assert.True(t, Principal{Role: RoleAdmin}.Can(PermissionEmployeeManage))
	assert.False(t, Principal{Role: RoleEmployee}.Can(PermissionEmployeeManage))
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleEmployee.IsValid())
	assert.False(t, Role("manager").IsValid())
}
