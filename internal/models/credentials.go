package models

// Credentials identifies the repository under verification. The token is
// optional; an empty token means requests are sent unauthenticated.
type Credentials struct {
	Token string
	Owner string
	Repo  string
}

// HasToken reports whether a bearer token was supplied.
func (c Credentials) HasToken() bool {
	return c.Token != ""
}

// Slug returns "owner/repo".
func (c Credentials) Slug() string {
	return c.Owner + "/" + c.Repo
}
