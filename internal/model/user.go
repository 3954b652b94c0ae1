package model

// User is the identity resolved from the request's bearer token.
// Accounts themselves live in the external identity service.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}
