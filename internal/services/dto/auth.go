package dto

// Principal is the identity resolved from a verified session token.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == "admin"
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginRequest carries the ID token posted by the Google sign-in
// widget.
type GoogleLoginRequest struct {
	Credential string `json:"credential" validate:"required"`
}

// UserSummary is the admin-facing account listing entry.
type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
