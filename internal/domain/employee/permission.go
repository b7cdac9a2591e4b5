package employee

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Leave Requests
	PermissionLeaveViewOwn        Permission = "leave.view_own"
	PermissionLeaveCreate         Permission = "leave.create"
	PermissionLeaveViewDepartment Permission = "leave.view_department"
	PermissionLeaveViewAll        Permission = "leave.view_all"
	PermissionLeaveRecommend      Permission = "leave.recommend"
	PermissionLeaveHRApprove      Permission = "leave.hr_approve"
	PermissionLeaveFinalDecide    Permission = "leave.final_decide"

	// Leave Records
	PermissionLedgerViewOwn Permission = "ledger.view_own"
	PermissionLedgerViewAll Permission = "ledger.view_all"
	PermissionLedgerManage  Permission = "ledger.manage"

	// Employee Management
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLedgerViewOwn,
	},
	RoleDepartmentAdmin: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewDepartment,
		PermissionLeaveRecommend,
		PermissionLedgerViewOwn,
	},
	RoleHR: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveHRApprove,
		PermissionLedgerViewOwn,
		PermissionLedgerViewAll,
		PermissionLedgerManage,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
	},
	RoleMayor: {
		PermissionViewOwnProfile,
		PermissionLeaveViewAll,
		PermissionLeaveFinalDecide,
		PermissionLedgerViewAll,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
