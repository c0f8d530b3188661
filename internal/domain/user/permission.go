package user

type Permission string

const (
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceCreate  Permission = "attendance.create"
	PermissionAttendanceViewAll Permission = "attendance.view_all"

	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"

	PermissionSalaryViewOwn Permission = "salary.view_own"
	PermissionSalaryManage  Permission = "salary.manage"

	PermissionCompanyView   Permission = "company.view"
	PermissionCompanyManage Permission = "company.manage"
)

// selfService is what every signed-in employee may do on their own records.
var selfService = []Permission{
	PermissionViewOwnProfile,
	PermissionEditOwnProfile,
	PermissionLeaveViewOwn,
	PermissionLeaveCreate,
	PermissionAttendanceViewOwn,
	PermissionAttendanceCreate,
	PermissionSalaryViewOwn,
	PermissionCompanyView,
}

// companyAdministration is granted to admins on top of selfService.
var companyAdministration = []Permission{
	PermissionLeaveViewAll,
	PermissionLeaveApprove,
	PermissionAttendanceViewAll,
	PermissionEmployeeViewAll,
	PermissionEmployeeManage,
	PermissionSalaryManage,
	PermissionCompanyManage,
}

var rolePermissions = map[Role]map[Permission]struct{}{
	RoleEmployee: permissionSet(selfService),
	RoleAdmin:    permissionSet(selfService, companyAdministration),
}

func permissionSet(groups ...[]Permission) map[Permission]struct{} {
	set := make(map[Permission]struct{})
	for _, group := range groups {
		for _, p := range group {
			set[p] = struct{}{}
		}
	}
	return set
}

// HasPermission reports whether role grants permission. Unknown roles grant nothing.
func HasPermission(role Role, permission Permission) bool {
	_, ok := rolePermissions[role][permission]
	return ok
}
