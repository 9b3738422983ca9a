package dto

// LoginRequest represents a librarian login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@library.local"`
	Password string `json:"password" binding:"required,min=8" example:"changeme123"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"3600"`
}
