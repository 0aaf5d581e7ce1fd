package dto

type RegisterRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type RefreshTokenRequest struct {
	Refresh string `json:"refresh"`
}

// LogoutRequest optionally carries the refresh token so it is revoked together with the access token.
type LogoutRequest struct {
	Refresh string `json:"refresh"`
}
