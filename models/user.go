package models

// User represents a user account in the database
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"isAdmin"`
	CreatedAt    string `json:"createdAt"`
}

// RegisterRequest represents the request body for creating an account
// Example: {"name": "Maria Silva", "email": "maria@example.com", "password": "secret123"}
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the response after a successful register or login
// Example response:
// {
//   "token": "eyJhbGciOiJIUzI1NiIs...",
//   "user": {"id": "2b7c...", "name": "Maria Silva", "email": "maria@example.com", "isAdmin": false}
// }
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
