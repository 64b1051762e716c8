package contract

const MaxCOIFileSizeBytes = 20 * 1024 * 1024

var ValidCOIFileTypes = []string{"pdf"}

// CoverageLine is one line of coverage on a certificate as submitted
// by the broker. Dates are YYYY-MM-DD.
type CoverageLine struct {
	Carrier        string  `json:"carrier" validate:"omitempty,max=120"`
	PolicyNumber   string  `json:"policy_number" validate:"omitempty,max=60"`
	Limit          float64 `json:"limit" validate:"omitempty,min=0"`
	EffectiveDate  string  `json:"effective_date" validate:"omitempty,datetime=2006-01-02"`
	ExpirationDate string  `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
}

type CreateCOIRequest struct {
	ProjectID       string `json:"project_id" validate:"required"`
	SubcontractorID string `json:"subcontractor_id" validate:"required"`
	BrokerName      string `json:"broker_name" validate:"omitempty,max=120"`
	BrokerEmail     string `json:"broker_email" validate:"omitempty,email"`
}

// BrokerSubmitRequest is the public broker-portal PATCH body: policy
// details per coverage line, submitted against the access token.
type BrokerSubmitRequest struct {
	BrokerName       string        `json:"broker_name" validate:"omitempty,max=120"`
	BrokerEmail      string        `json:"broker_email" validate:"omitempty,email"`
	GeneralLiability *CoverageLine `json:"general_liability" validate:"omitempty"`
	Umbrella         *CoverageLine `json:"umbrella" validate:"omitempty"`
	WorkersComp      *CoverageLine `json:"workers_comp" validate:"omitempty"`
	Auto             *CoverageLine `json:"auto" validate:"omitempty"`
}

// Deficiency is one compliance finding from policy analysis.
type Deficiency struct {
	ID           string `json:"id"`
	CoverageType string `json:"coverage_type"`
	Description  string `json:"description"`
	Severity     string `json:"severity"`
}

// PolicyAnalysis is the structured result of reviewing a submitted
// certificate against the applicable requirements.
type PolicyAnalysis struct {
	Deficiencies []Deficiency `json:"deficiencies"`
	CheckedAt    string       `json:"checked_at,omitempty"`
}

// ManualOverride is an admin-entered waiver for one deficiency.
type ManualOverride struct {
	Reason     string `json:"reason"`
	ApprovedBy string `json:"approved_by"`
	Date       string `json:"date"`
}

// ApproveCOIRequest approves a COI under review. Overrides waive
// individual deficiencies by id; every unwaived deficiency blocks the
// approval.
type ApproveCOIRequest struct {
	Overrides map[string]ManualOverride `json:"overrides" validate:"omitempty,dive"`
	Notes     string                    `json:"notes" validate:"omitempty,max=2000"`
}

type COIResponse struct {
	ID              string `json:"id"`
	ProjectID       string `json:"project_id"`
	SubcontractorID string `json:"subcontractor_id"`
	Status          string `json:"status"`

	BrokerName  string `json:"broker_name,omitempty"`
	BrokerEmail string `json:"broker_email,omitempty"`

	GeneralLiability *CoverageLine `json:"general_liability,omitempty"`
	Umbrella         *CoverageLine `json:"umbrella,omitempty"`
	WorkersComp      *CoverageLine `json:"workers_comp,omitempty"`
	Auto             *CoverageLine `json:"auto,omitempty"`

	FirstCOIUploaded bool   `json:"first_coi_uploaded"`
	FirstCOIFilename string `json:"first_coi_filename,omitempty"`

	NearestExpiration string `json:"nearest_expiration,omitempty"`
	GracePeriodExpiry string `json:"grace_period_expiry,omitempty"`
	IsSubDeactivated  bool   `json:"is_sub_deactivated"`

	PolicyAnalysis  *PolicyAnalysis           `json:"policy_analysis,omitempty"`
	ManualOverrides map[string]ManualOverride `json:"manual_overrides,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// BrokerCOIView is the reduced shape returned on the public portal:
// enough context for the broker to fill in policies, nothing more.
type BrokerCOIView struct {
	ProjectName       string `json:"project_name"`
	GCName            string `json:"gc_name"`
	SubcontractorName string `json:"subcontractor_name"`
	Status            string `json:"status"`

	GeneralLiability *CoverageLine `json:"general_liability,omitempty"`
	Umbrella         *CoverageLine `json:"umbrella,omitempty"`
	WorkersComp      *CoverageLine `json:"workers_comp,omitempty"`
	Auto             *CoverageLine `json:"auto,omitempty"`
}
