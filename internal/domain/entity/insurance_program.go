package entity

// InsuranceProgram groups tiered insurance requirement rows for one
// general contractor. The rows themselves live in
// SubInsuranceRequirement.
type InsuranceProgram struct {
	ID          string `gorm:"primaryKey"`
	ProgramName string `gorm:"not null"`
	GCID        string `gorm:"index"` // References: contractors(id)
	Description string `gorm:"type:text"`
	Status      string `gorm:"not null;default:active"`
	CreatedAt   int64  `gorm:"not null"`
	UpdatedAt   int64  `gorm:"not null;autoUpdateTime:false"`
}

// SubInsuranceRequirement is one requirement row of a program: an
// insurance type with a minimum limit, applicable to a set of trades
// within a named tier.
type SubInsuranceRequirement struct {
	ID        string `gorm:"primaryKey"`
	ProgramID string `gorm:"not null;index"` // References: insurance_programs(id)
	TradeID   string // References: trades(id), optional

	// Tier is the program tier label (Foundation, Roofing, MEP, ...).
	Tier      string
	TradeName string

	InsuranceType string `gorm:"not null"`

	// ApplicableTrades is a comma-separated list; "All Trades" is the
	// universal marker, a TradeName or Scope containing "all other"
	// makes the row a catch-all.
	ApplicableTrades string
	Scope            string `gorm:"type:text"`

	LimitAmount   float64
	Required      bool `gorm:"not null;default:true"`
	StateMandated bool `gorm:"not null;default:false"`
	Notes         string
	CreatedAt     int64 `gorm:"not null"`
	UpdatedAt     int64 `gorm:"not null;autoUpdateTime:false"`
}

// StateRequirement is a coverage minimum mandated by a US state,
// applied on top of whatever program tier matches.
type StateRequirement struct {
	ID           string `gorm:"primaryKey"`
	StateCode    string `gorm:"not null;index"`
	CoverageType string `gorm:"not null"`
	MinimumLimit float64
	Description  string `gorm:"type:text"`
	CreatedAt    int64  `gorm:"not null"`
	UpdatedAt    int64  `gorm:"not null;autoUpdateTime:false"`
}
