package entity

type ContractorType string

const (
	ContractorTypeGC     ContractorType = "general_contractor"
	ContractorTypeSub    ContractorType = "subcontractor"
	ContractorTypeBroker ContractorType = "broker"
)

// Contractor is a company profile: a general contractor, a
// subcontractor or a brokerage, distinguished by ContractorType.
type Contractor struct {
	ID             string         `gorm:"primaryKey"`
	CompanyName    string         `gorm:"not null;index"`
	ContractorType ContractorType `gorm:"not null"`
	ContactName    string
	Email          string
	Phone          string
	Address        string
	City           string
	State          string
	ZipCode        string
	Status         string `gorm:"not null;default:active"`

	// Subcontractor-only fields
	Trades            string // comma-separated trade names
	InsuranceVerified bool   `gorm:"not null;default:false"`
	ComplianceStatus  string
	BrokerID          string // References: brokers(id), optional assignment

	Notes     string `gorm:"type:text"`
	CreatedAt int64  `gorm:"not null"`
	UpdatedAt int64  `gorm:"not null;autoUpdateTime:false"`
}
