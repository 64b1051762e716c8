package entity

type COIStatus string

const (
	COIStatusAwaitingBrokerInfo   COIStatus = "awaiting_broker_info"
	COIStatusAwaitingBrokerUpload COIStatus = "awaiting_broker_upload"
	COIStatusAwaitingAdminReview  COIStatus = "awaiting_admin_review"
	COIStatusDeficiencyPending    COIStatus = "deficiency_pending"
	COIStatusActive               COIStatus = "active"
	COIStatusExpired              COIStatus = "expired"
	COIStatusExpiringSoon         COIStatus = "expiring_soon"
	COIStatusPendingRenewal       COIStatus = "pending_renewal"
)

// GeneratedCOI tracks one certificate-of-insurance lifecycle for a
// (project, subcontractor) pair, from the initial broker request
// through renewal and expiration.
//
// Expiration dates are stored per coverage line; the renewal engine
// always works off the earliest non-zero one.
type GeneratedCOI struct {
	ID              string    `gorm:"primaryKey"`
	ProjectID       string    `gorm:"not null;index"` // References: projects(id)
	SubcontractorID string    `gorm:"not null;index"` // References: project_subcontractors(id)
	Status          COIStatus `gorm:"not null;default:awaiting_broker_info"`

	// Public broker-portal access. The token is handed out in the
	// broker request email, no session required.
	AccessToken string `gorm:"not null;uniqueIndex"`

	BrokerName  string
	BrokerEmail string

	// General liability
	GLCarrier        string
	GLPolicyNumber   string
	GLEachOccurrence float64
	GLEffectiveDate  int64
	GLExpirationDate int64

	// Umbrella / excess
	UmbrellaCarrier        string
	UmbrellaPolicyNumber   string
	UmbrellaEachOccurrence float64
	UmbrellaEffectiveDate  int64
	UmbrellaExpirationDate int64

	// Workers compensation
	WCCarrier        string
	WCPolicyNumber   string
	WCEachAccident   float64
	WCEffectiveDate  int64
	WCExpirationDate int64

	// Commercial auto
	AutoCarrier        string
	AutoPolicyNumber   string
	AutoCombinedLimit  float64
	AutoEffectiveDate  int64
	AutoExpirationDate int64

	FirstCOIUploaded bool `gorm:"not null;default:false"`
	FirstCOIKey      string
	FirstCOIFilename string

	// Renewal reminder flags, one per pre-expiration tier. Once true
	// the corresponding email is never re-sent.
	Renewal30DaySent        bool `gorm:"not null;default:false"`
	Renewal14DaySent        bool `gorm:"not null;default:false"`
	RenewalNotificationSent bool `gorm:"not null;default:false"`

	// Missing-COI escalation flags (days since the initial request).
	Missing7DaySent  bool `gorm:"not null;default:false"`
	Missing14DaySent bool `gorm:"not null;default:false"`
	Missing21DaySent bool `gorm:"not null;default:false"`

	SubNotifiedDate    int64
	BrokerNotifiedDate int64

	GracePeriodExpiry      int64
	MarkedNonCompliantDate int64
	IsSubDeactivated       bool `gorm:"not null;default:false"`

	// PolicyAnalysis holds structured compliance findings as JSON
	// (deficiencies array). ManualOverrides holds admin waivers keyed
	// by deficiency id, also JSON.
	PolicyAnalysis  string `gorm:"type:text"`
	ManualOverrides string `gorm:"type:text"`

	CreatedBy string
	CreatedAt int64 `gorm:"not null"`
	UpdatedAt int64 `gorm:"not null;autoUpdateTime:false"`
}

// ExpirationDates returns the non-zero expiration dates across all
// four coverage lines, in no particular order.
func (c *GeneratedCOI) ExpirationDates() []int64 {
	var dates []int64
	for _, d := range []int64{c.GLExpirationDate, c.UmbrellaExpirationDate, c.WCExpirationDate, c.AutoExpirationDate} {
		if d > 0 {
			dates = append(dates, d)
		}
	}
	return dates
}

// NearestExpiration returns the earliest coverage-line expiration, or
// 0 when no line carries one.
func (c *GeneratedCOI) NearestExpiration() int64 {
	var nearest int64
	for _, d := range c.ExpirationDates() {
		if nearest == 0 || d < nearest {
			nearest = d
		}
	}
	return nearest
}
