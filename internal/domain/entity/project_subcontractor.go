package entity

type ComplianceStatus string

const (
	CompliancePendingBroker  ComplianceStatus = "pending_broker"
	ComplianceCompliant      ComplianceStatus = "compliant"
	ComplianceNonCompliant   ComplianceStatus = "non_compliant"
	CompliancePendingRenewal ComplianceStatus = "pending_renewal"
)

// ProjectSubcontractor links a subcontractor to a project and carries
// the per-project compliance verdict. A subcontractor working three
// projects has three rows, each flipped independently by the renewal
// engine.
type ProjectSubcontractor struct {
	ID               string `gorm:"primaryKey"`
	ProjectID        string `gorm:"not null;index"` // References: projects(id)
	SubcontractorID  string `gorm:"index"`          // References: contractors(id)
	CompanyName      string `gorm:"not null"`
	ContactName      string
	Email            string
	Phone            string
	Trades           string // comma-separated trade names
	Status           string `gorm:"not null;default:pending"`
	ComplianceStatus ComplianceStatus
	Notes            string `gorm:"type:text"`
	CreatedAt        int64  `gorm:"not null"`
	UpdatedAt        int64  `gorm:"not null;autoUpdateTime:false"`
}
