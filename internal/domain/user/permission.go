package user

type Permission string

const (
	PermissionAttendancePunch   Permission = "attendance.punch"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceEdit    Permission = "attendance.edit"
	PermissionPayrollView       Permission = "payroll.view"
	PermissionPayrollExport     Permission = "payroll.export"
)

var rolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionAttendancePunch,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionAttendanceEdit,
		PermissionPayrollView,
		PermissionPayrollExport,
	},
	RoleManager: {
		PermissionAttendancePunch,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionAttendanceEdit,
		PermissionPayrollView,
		PermissionPayrollExport,
	},
	RoleStaff: {
		PermissionAttendancePunch,
		PermissionAttendanceViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
