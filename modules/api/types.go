package api

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email           string `json:"email"`
	Name            string `json:"name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToDoContentRequest carries the content for creating or updating a to-do.
type ToDoContentRequest struct {
	Content string `json:"content"`
}

// ErrorResponse represents a single-message error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse represents a confirmation response.
type MessageResponse struct {
	Message string `json:"message"`
}
