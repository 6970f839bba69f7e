package models

// AuthenticatedUser is the caller identity derived from request headers
type AuthenticatedUser struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name,omitempty"`
}
