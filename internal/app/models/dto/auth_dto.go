package dto

import "github.com/madarij/center/internal/app/models"

// LoginRequest represents staff login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"director@madarij.center"`
	Password string `json:"password" binding:"required" example:"changeme123"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType" example:"Bearer"`
	ExpiresIn   int          `json:"expiresIn" example:"43200"`
	User        *models.User `json:"user"`
}
