// Package auth handles authentication: login, token issuance and refresh,
// and the bearer-token middleware. This file defines the request/response
// payloads for the auth endpoints.
package auth

// LoginRequest represents the login request payload. Login accepts either a
// username or an email address.
type LoginRequest struct {
	Login    string `json:"login" example:"johndoe"`
	Password string `json:"password" example:"Str0ngpass#"`
}

// TokenResponse represents the authentication token response returned on
// successful login, refresh, or password reset.
type TokenResponse struct {
	AccessToken  string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType    string `json:"token_type" example:"Bearer"`
	ExpiresIn    int64  `json:"expires_in" example:"3600"` // Unix expiry of the access token
}

// RefreshTokenRequest represents the token refresh request payload.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}
