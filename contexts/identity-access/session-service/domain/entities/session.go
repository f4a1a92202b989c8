package entities

import "strings"

// UnknownDisplayName is shown for identities without email or username traits.
const UnknownDisplayName = "Unknown"

// Credentials are the request values that can identify a session.
type Credentials struct {
	Cookie       string
	SessionToken string
	BearerToken  string
}

func (c Credentials) Empty() bool {
	return strings.TrimSpace(c.Cookie) == "" &&
		strings.TrimSpace(c.SessionToken) == "" &&
		strings.TrimSpace(c.BearerToken) == ""
}

type Session struct {
	IdentityID string
	Email      string
	Username   string
	Active     bool
}

// DisplayName prefers the email trait, then the username trait.
func (s Session) DisplayName() string {
	if email := strings.TrimSpace(s.Email); email != "" {
		return email
	}
	if username := strings.TrimSpace(s.Username); username != "" {
		return username
	}
	return UnknownDisplayName
}
