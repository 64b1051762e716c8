package contract

type CreateProjectRequest struct {
	ProjectName   string  `json:"project_name" validate:"required,min=2,max=160"`
	ProjectNumber string  `json:"project_number" validate:"omitempty,max=40"`
	GCID          string  `json:"gc_id" validate:"required"`
	OwnerName     string  `json:"owner_name" validate:"omitempty,max=120"`
	Location      string  `json:"location" validate:"omitempty,max=200"`
	City          string  `json:"city" validate:"omitempty,max=80"`
	State         string  `json:"state" validate:"omitempty,usstate"`
	ZipCode       string  `json:"zip_code" validate:"omitempty,max=12"`
	Budget        float64 `json:"budget" validate:"omitempty,min=0"`
	Description   string  `json:"description" validate:"omitempty,max=4000"`
}

type UpdateProjectRequest struct {
	ProjectName *string `json:"project_name" validate:"omitempty,min=2,max=160"`
	OwnerName   *string `json:"owner_name" validate:"omitempty,max=120"`
	Location    *string `json:"location" validate:"omitempty,max=200"`
	City        *string `json:"city" validate:"omitempty,max=80"`
	State       *string `json:"state" validate:"omitempty,usstate"`
	ZipCode     *string `json:"zip_code" validate:"omitempty,max=12"`
	Status      *string `json:"status" validate:"omitempty,oneof=active on_hold completed"`
	Description *string `json:"description" validate:"omitempty,max=4000"`
}

type ProjectResponse struct {
	ID            string  `json:"id"`
	ProjectName   string  `json:"project_name"`
	ProjectNumber string  `json:"project_number,omitempty"`
	GCID          string  `json:"gc_id"`
	OwnerName     string  `json:"owner_name,omitempty"`
	Location      string  `json:"location,omitempty"`
	City          string  `json:"city,omitempty"`
	State         string  `json:"state,omitempty"`
	ZipCode       string  `json:"zip_code,omitempty"`
	Status        string  `json:"status"`
	Budget        float64 `json:"budget,omitempty"`
	Description   string  `json:"description,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// AddProjectSubRequest links a subcontractor company to a project.
// Creating the link also creates the COI record and kicks off the
// broker request flow.
type AddProjectSubRequest struct {
	SubcontractorID string `json:"subcontractor_id" validate:"required"`
	ContactName     string `json:"contact_name" validate:"omitempty,max=120"`
	Email           string `json:"email" validate:"omitempty,email"`
	Phone           string `json:"phone" validate:"omitempty,max=30"`
	Trades          string `json:"trades" validate:"omitempty,max=400"`
}

type ProjectSubResponse struct {
	ID               string `json:"id"`
	ProjectID        string `json:"project_id"`
	SubcontractorID  string `json:"subcontractor_id,omitempty"`
	CompanyName      string `json:"company_name"`
	ContactName      string `json:"contact_name,omitempty"`
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Trades           string `json:"trades,omitempty"`
	Status           string `json:"status"`
	ComplianceStatus string `json:"compliance_status,omitempty"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}
