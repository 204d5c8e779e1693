package models

// User is the authenticated account as returned by /users/current-user and
// inside login/register responses.
type User struct {
	ID        string `json:"_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// AuthResult is the payload of a successful login or register call.
type AuthResult struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}
