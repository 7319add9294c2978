package identity

// AuthRequest carries the credentials for register and login calls.
type AuthRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is the payload returned after a successful login.
type AuthResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	BestScore float64 `json:"best_score"`
	Token     string  `json:"token"`
}
