package entity

type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleGC     UserRole = "gc"
	UserRoleBroker UserRole = "broker"
	UserRoleSub    UserRole = "subcontractor"
)

// User is the general basic structure of all users across the platform
type User struct {
	ID            int64    `gorm:"primaryKey"`
	SubUUID       string   `gorm:"not null;uniqueIndex"`
	Username      string   `gorm:"not null"`
	Email         string   `gorm:"not null"`
	EmailVerified bool     `gorm:"not null"`
	Role          UserRole `gorm:"not null;default:subcontractor"`
	ContractorID  string   // References: contractors(id), optional company link
	Active        bool     `gorm:"not null;default:true"`
	Suspended     bool     `gorm:"not null;default:false"`
	CreatedAt     int64    `gorm:"not null"`
	UpdatedAt     int64    `gorm:"not null;autoUpdateTime:false"`
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
