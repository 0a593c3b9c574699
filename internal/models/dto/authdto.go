package dto

// LoginRequestDTO is the /login request body.
type LoginRequestDTO struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

type LoginResponseDTO struct {
	Message string `json:"message"`
	// Page is the router state the client should render next.
	Page string `json:"page"`
}

// SignupRequestDTO is the /signup request body. Education is the optional
// profile field carried through to the credential record.
type SignupRequestDTO struct {
	Username        string `json:"username" validate:"required,min=3,max=64"`
	Password        string `json:"password" validate:"required,min=8,max=64"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	Education       string `json:"education,omitempty" validate:"max=256"`
}

type SignupResponseDTO struct {
	Message string `json:"message"`
	Page    string `json:"page"`
}

type LogoutResponseDTO struct {
	Message string `json:"message"`
	Page    string `json:"page"`
}

// ErrorResponseDTO is the error envelope every handler renders.
type ErrorResponseDTO struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type RateLimitResponse struct {
	Message string `json:"message"`
}
