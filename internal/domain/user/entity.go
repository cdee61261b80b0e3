package user

type Role string

const (
	RoleOwner   Role = "owner"   // Salon owner - full access
	RoleManager Role = "manager" // Edits attendance, runs payroll
	RoleStaff   Role = "staff"   // Punches and views own attendance
)

func (r Role) IsValid() bool {
	return r == RoleOwner || r == RoleManager || r == RoleStaff
}

// Principal is the authenticated caller, carried in the access token.
// Accounts are issued by the auth collaborator; this service only reads them.
type Principal struct {
	UserID    string
	StaffID   string
	StaffName string
	Role      Role
}

// IsManager checks if the caller is manager or owner
func (p Principal) IsManager() bool {
	return p.Role == RoleManager || p.Role == RoleOwner
}

// CanViewStaff reports whether the caller may read another member's records.
func (p Principal) CanViewStaff(staffName string) bool {
	return p.IsManager() || p.StaffName == staffName
}
