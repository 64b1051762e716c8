package contract

type CreateProgramRequest struct {
	ProgramName string `json:"program_name" validate:"required,min=2,max=160"`
	GCID        string `json:"gc_id" validate:"required"`
	Description string `json:"description" validate:"omitempty,max=4000"`
}

type ProgramResponse struct {
	ID          string `json:"id"`
	ProgramName string `json:"program_name"`
	GCID        string `json:"gc_id"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type CreateRequirementRequest struct {
	ProgramID        string  `json:"program_id" validate:"required"`
	Tier             string  `json:"tier" validate:"omitempty,max=80"`
	TradeName        string  `json:"trade_name" validate:"omitempty,max=120"`
	InsuranceType    string  `json:"insurance_type" validate:"required,max=80"`
	ApplicableTrades string  `json:"applicable_trades" validate:"omitempty,max=400"`
	Scope            string  `json:"scope" validate:"omitempty,max=2000"`
	LimitAmount      float64 `json:"limit_amount" validate:"omitempty,min=0"`
	Required         bool    `json:"required"`
	StateMandated    bool    `json:"state_mandated"`
	Notes            string  `json:"notes" validate:"omitempty,max=2000"`
}

type RequirementResponse struct {
	ID               string  `json:"id"`
	ProgramID        string  `json:"program_id"`
	Tier             string  `json:"tier,omitempty"`
	TradeName        string  `json:"trade_name,omitempty"`
	InsuranceType    string  `json:"insurance_type"`
	ApplicableTrades string  `json:"applicable_trades,omitempty"`
	Scope            string  `json:"scope,omitempty"`
	LimitAmount      float64 `json:"limit_amount,omitempty"`
	Required         bool    `json:"required"`
	StateMandated    bool    `json:"state_mandated"`
	Notes            string  `json:"notes,omitempty"`
}

type StateRequirementResponse struct {
	ID           string  `json:"id"`
	StateCode    string  `json:"state_code"`
	CoverageType string  `json:"coverage_type"`
	MinimumLimit float64 `json:"minimum_limit,omitempty"`
	Description  string  `json:"description,omitempty"`
}

// MatchedRequirementsResponse is the result of matching a
// subcontractor's trades against a program. StateRequirements carries
// the minimums mandated by the project's state, on top of the tier.
type MatchedRequirementsResponse struct {
	SubcontractorID   string                      `json:"subcontractor_id"`
	ProgramID         string                      `json:"program_id"`
	Requirements      []*RequirementResponse      `json:"requirements"`
	StateRequirements []*StateRequirementResponse `json:"state_requirements,omitempty"`
}
