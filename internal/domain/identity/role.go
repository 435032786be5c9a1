package identity

// Role represents the role a user holds, either globally (profile) or
// within a company (membership).
type Role string

const (
	RoleMember       Role = "member"
	RoleManager      Role = "manager"
	RoleCompanyAdmin Role = "company_admin"
	RoleSuperAdmin   Role = "super_admin"
)

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleManager, RoleCompanyAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsSuperAdmin reports whether the role is the platform super admin
func (r Role) IsSuperAdmin() bool {
	return r == RoleSuperAdmin
}

// IsCompanyAdmin reports whether the role administers a company
func (r Role) IsCompanyAdmin() bool {
	return r == RoleCompanyAdmin
}

// IsManager reports whether the role is manager
func (r Role) IsManager() bool {
	return r == RoleManager
}

// CanManageCompany reports whether the role may change company settings,
// rooms and members
func (r Role) CanManageCompany() bool {
	return r == RoleCompanyAdmin || r == RoleSuperAdmin
}

// CanCreateBookings reports whether the role may create and edit bookings
func (r Role) CanCreateBookings() bool {
	return r == RoleManager || r == RoleCompanyAdmin || r == RoleSuperAdmin
}

// String returns the role as a string
func (r Role) String() string {
	return string(r)
}
