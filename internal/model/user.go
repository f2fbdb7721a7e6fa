package model

// User represents the authenticated account as returned by /auth/me.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Avatar     string `json:"avatar,omitempty"`
	Department string `json:"department,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// AuthPayload is the login/register response: a bearer token plus the user record.
type AuthPayload struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
