package contract

type CreateContractorRequest struct {
	CompanyName    string `json:"company_name" validate:"required,min=2,max=160"`
	ContractorType string `json:"contractor_type" validate:"required,oneof=general_contractor subcontractor broker"`
	ContactName    string `json:"contact_name" validate:"omitempty,max=120"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone" validate:"omitempty,max=30"`
	Address        string `json:"address" validate:"omitempty,max=200"`
	City           string `json:"city" validate:"omitempty,max=80"`
	State          string `json:"state" validate:"omitempty,usstate"`
	ZipCode        string `json:"zip_code" validate:"omitempty,max=12"`
	Trades         string `json:"trades" validate:"omitempty,max=400"`
	BrokerID       string `json:"broker_id" validate:"omitempty"`
	Notes          string `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateContractorRequest struct {
	CompanyName *string `json:"company_name" validate:"omitempty,min=2,max=160"`
	ContactName *string `json:"contact_name" validate:"omitempty,max=120"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone" validate:"omitempty,max=30"`
	Address     *string `json:"address" validate:"omitempty,max=200"`
	City        *string `json:"city" validate:"omitempty,max=80"`
	State       *string `json:"state" validate:"omitempty,usstate"`
	ZipCode     *string `json:"zip_code" validate:"omitempty,max=12"`
	Trades      *string `json:"trades" validate:"omitempty,max=400"`
	BrokerID    *string `json:"broker_id" validate:"omitempty"`
	Status      *string `json:"status" validate:"omitempty,oneof=active inactive"`
	Notes       *string `json:"notes" validate:"omitempty,max=2000"`
}

type ContractorResponse struct {
	ID                string `json:"id"`
	CompanyName       string `json:"company_name"`
	ContractorType    string `json:"contractor_type"`
	ContactName       string `json:"contact_name,omitempty"`
	Email             string `json:"email,omitempty"`
	Phone             string `json:"phone,omitempty"`
	Address           string `json:"address,omitempty"`
	City              string `json:"city,omitempty"`
	State             string `json:"state,omitempty"`
	ZipCode           string `json:"zip_code,omitempty"`
	Status            string `json:"status"`
	Trades            string `json:"trades,omitempty"`
	InsuranceVerified bool   `json:"insurance_verified"`
	ComplianceStatus  string `json:"compliance_status,omitempty"`
	BrokerID          string `json:"broker_id,omitempty"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}
