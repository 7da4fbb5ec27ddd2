package dto

// SignUpRequestBody defines a request body for the SignUp service.
type SignUpRequestBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// CreateTokenRequestBody defines a request body for the CreateToken service.
type CreateTokenRequestBody struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}
