package model

import "time"

// DefaultTheme is applied to every new account.
const DefaultTheme = "cherry-blossom"

// User represents an account
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Theme        string    `json:"theme"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TokenPair is issued on registration and login
type TokenPair struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	AccessExpiresIn  string `json:"accessExpiresIn"`
	RefreshExpiresIn string `json:"refreshExpiresIn"`
}
