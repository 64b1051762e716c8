package contract

type CreateTradeRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=120"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Category    string `json:"category" validate:"omitempty,max=120"`
}

type TradeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type CreateBrokerRequest struct {
	CompanyName string `json:"company_name" validate:"required,min=2,max=200"`
	ContactName string `json:"contact_name" validate:"omitempty,max=120"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,max=40"`
	Address     string `json:"address" validate:"omitempty,max=300"`
	City        string `json:"city" validate:"omitempty,max=120"`
	State       string `json:"state" validate:"omitempty,usstate"`
	ZipCode     string `json:"zip_code" validate:"omitempty,max=10"`
}

type BrokerResponse struct {
	ID          string `json:"id"`
	CompanyName string `json:"company_name"`
	ContactName string `json:"contact_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	ZipCode     string `json:"zip_code,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
