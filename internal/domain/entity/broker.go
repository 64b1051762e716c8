package entity

// Broker is an insurance brokerage that uploads policy documents on
// behalf of its subcontractor clients.
type Broker struct {
	ID          string `gorm:"primaryKey"`
	CompanyName string `gorm:"not null"`
	ContactName string
	Email       string
	Phone       string
	Address     string
	City        string
	State       string
	ZipCode     string
	Status      string `gorm:"not null;default:active"`
	CreatedAt   int64  `gorm:"not null"`
	UpdatedAt   int64  `gorm:"not null;autoUpdateTime:false"`
}
