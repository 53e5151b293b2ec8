package models

// RoleName enumerates the supported authority kinds.
type RoleName string

const (
	RoleAdmin    RoleName = "ADMIN"
	RoleCustomer RoleName = "CUSTOMER"
)

// Valid reports whether the role name is one of the known kinds.
func (r RoleName) Valid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

// Role is shared reference data; exactly one record exists per kind.
type Role struct {
	BaseModel
	Name RoleName `gorm:"uniqueIndex" json:"name"`
}

// User represents a registered account. Roles is kept as a set to match
// the stored shape, but only the first role derives the user's authority.
type User struct {
	BaseModel
	FullName     string `json:"full_name"`
	LoginName    string `gorm:"uniqueIndex" json:"login_name"`
	PasswordHash string `json:"-"`
	Mobile       string `json:"mobile"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	Address      string `json:"address"`
	Roles        []Role `gorm:"many2many:user_roles;" json:"roles,omitempty"`
}
