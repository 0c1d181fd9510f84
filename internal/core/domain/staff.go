package domain

// StaffRole decides which routes a staff member may reach. Owners get the
// destructive and maintenance operations; field officers record day-to-day
// payments.
type StaffRole string

const (
	RoleOwner   StaffRole = "owner"
	RoleOfficer StaffRole = "officer"
)

// Staff is one entry in the fixed branch roster loaded from configuration.
type Staff struct {
	Username     string    `json:"username"`
	DisplayName  string    `json:"displayName"`
	PasswordHash string    `json:"-"`
	Role         StaffRole `json:"role"`
}
