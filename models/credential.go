package models

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Credential je bearer token i uloga dobijeni pri prijavi.
type Credential struct {
	Token string `json:"token"`
	Role  string `json:"user"`
}

func (c Credential) IsAdmin() bool {
	return c.Role == RoleAdmin
}
