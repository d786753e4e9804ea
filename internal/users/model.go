package users

import "time"

// User is a registered account. PasswordHash is empty for OAuth-only accounts.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	PasswordHash string    `json:"-"`
	Provider     string    `json:"provider"`
	PictureURL   string    `json:"pictureUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)
