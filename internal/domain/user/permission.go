package user

import "slices"

type Permission string

const (
	// Attendance
	PermissionAttendanceViewOwn  Permission = "attendance.view_own"
	PermissionAttendanceCreate   Permission = "attendance.create"
	PermissionAttendanceViewAll  Permission = "attendance.view_all"
	PermissionAttendanceApprove  Permission = "attendance.approve"
	PermissionAttendanceOverride Permission = "attendance.override"

	// Leave
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"
	PermissionLeaveReports Permission = "leave.reports"

	// Expense
	PermissionExpenseViewOwn Permission = "expense.view_own"
	PermissionExpenseCreate  Permission = "expense.create"
	PermissionExpenseViewAll Permission = "expense.view_all"
	PermissionExpenseApprove Permission = "expense.approve"

	// Notices
	PermissionNoticeView    Permission = "notice.view"
	PermissionNoticePublish Permission = "notice.publish"
)

var selfService = []Permission{
	PermissionAttendanceViewOwn,
	PermissionAttendanceCreate,
	PermissionLeaveViewOwn,
	PermissionLeaveCreate,
	PermissionExpenseViewOwn,
	PermissionExpenseCreate,
	PermissionNoticeView,
}

var reviewer = []Permission{
	PermissionAttendanceViewAll,
	PermissionAttendanceApprove,
	PermissionLeaveViewAll,
	PermissionLeaveApprove,
	PermissionLeaveReports,
	PermissionExpenseViewAll,
	PermissionExpenseApprove,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin:    slices.Concat(selfService, reviewer, []Permission{PermissionAttendanceOverride, PermissionNoticePublish}),
	RoleHR:       slices.Concat(selfService, reviewer, []Permission{PermissionAttendanceOverride, PermissionNoticePublish}),
	RoleManager:  slices.Concat(selfService, reviewer),
	RoleEmployee: selfService,
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}
	return slices.Contains(permissions, permission)
}
