package identity

// AuthRequest carries the credentials for register and login.
type AuthRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries a signed-in identity and its bearer token.
type AuthResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Guest    bool   `json:"guest"`
	Token    string `json:"token"`
}

// IdentityResponse describes the identity behind a presented token.
type IdentityResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
