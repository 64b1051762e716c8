package entity

// Project is a construction project owned by a general contractor.
type Project struct {
	ID            string `gorm:"primaryKey"`
	ProjectName   string `gorm:"not null;index"`
	ProjectNumber string
	GCID          string `gorm:"index"` // References: contractors(id)
	OwnerName     string
	Location      string
	City          string
	State         string
	ZipCode       string
	Status        string `gorm:"not null;default:active"`
	StartDate     int64
	EndDate       int64
	Budget        float64
	Description   string `gorm:"type:text"`
	CreatedAt     int64  `gorm:"not null"`
	UpdatedAt     int64  `gorm:"not null;autoUpdateTime:false"`
}
