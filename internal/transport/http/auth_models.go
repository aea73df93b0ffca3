package http

// Request and response bodies for the authentication endpoints. Field names
// follow the public API contract; validation lives in auth_validation.go.

type RegisterRequest struct {
	Name                 string `json:"name" example:"Test User"`
	Email                string `json:"email" example:"user@example.com"`
	Password             string `json:"password" example:"password"`
	PasswordConfirmation string `json:"password_confirmation" example:"password"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"password"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" example:"eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" example:"user@example.com"`
}

type ResetPasswordRequest struct {
	Email                string `json:"email" example:"user@example.com"`
	Otp                  int    `json:"otp" example:"1234"`
	Password             string `json:"password" example:"new-password"`
	PasswordConfirmation string `json:"password_confirmation" example:"new-password"`
}

type ResendOtpRequest struct {
	Email string `json:"email" example:"user@example.com"`
}

type VerifyOtpRequest struct {
	Email     string `json:"email" example:"user@example.com"`
	Otp       int    `json:"otp" example:"1234"`
	VerifyFor string `json:"verify_for" example:"registration"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" example:"password"`
	NewPassword     string `json:"new_password" example:"new-password"`
	ConfirmPassword string `json:"confirm_password" example:"new-password"`
}

// AuthUserResponse is the sanitized account representation returned by
// register and login, with the freshly issued bearer token.
type AuthUserResponse struct {
	ID    string `json:"id" example:"9fd13fd2-63c5-4f29-a210-4a1a8e285f74"`
	Name  string `json:"name" example:"Test User"`
	Email string `json:"email" example:"user@example.com"`
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}
