package contract

type EmailStatus string

const (
	EmailStatusAvailable EmailStatus = "AVAILABLE"
	EmailStatusExists    EmailStatus = "TAKEN"
	EmailStatusVerifying EmailStatus = "VERIFYING"
)

type CreateUserRequest struct {
	Username     string `json:"username" validate:"required,min=2,max=80"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,password"`
	Role         string `json:"role" validate:"omitempty,oneof=admin gc broker subcontractor"`
	ContractorID string `json:"contractor_id" validate:"omitempty"`
}

type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

type ConfirmSignupRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,min=1,max=8"`
}

type ResendConfirmRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type UserResponse struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	ContractorID string `json:"contractor_id,omitempty"`
	IsVerified   *bool  `json:"is_verified,omitempty"`
	Suspended    *bool  `json:"suspended,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type UserLoginResponse struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
}
