package entity

// Trade is a construction trade (Electrical, Roofing, ...).
type Trade struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	Category    string
	CreatedAt   int64 `gorm:"not null"`
	UpdatedAt   int64 `gorm:"not null;autoUpdateTime:false"`
}
