package session

import (
	"errors"
	"strings"
)

type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleBankTeller Role = "BANK_TELLER"
	RoleClient     Role = "CLIENT"
)

var ErrIncomplete = errors.New("session is missing a required field")

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleBankTeller, RoleClient:
		return true
	default:
		return false
	}
}

// ParseRole normalizes a role claim as the backend spells it. Unknown roles
// are kept verbatim so the route guard can reject them.
func ParseRole(raw string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(raw)))
}

// Session is the portal's proof of login: the backend bearer token plus the
// identity claims returned alongside it. Values are replaced wholesale, never
// edited in place.
type Session struct {
	Token       string `json:"-"`
	Role        Role   `json:"role"`
	UserID      string `json:"userId"`
	DisplayName string `json:"name"`
}

func (s Session) Validate() error {
	if s.Token == "" || s.Role == "" || s.UserID == "" || s.DisplayName == "" {
		return ErrIncomplete
	}
	return nil
}

// HasAnyRole reports whether the session role is one of roles.
func (s Session) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

const (
	PathLogin  = "/login"
	PathAdmin  = "/admin"
	PathTeller = "/teller"
	PathClient = "/client"
)

// LandingPath picks the default view for a session by role precedence:
// ADMIN, then BANK_TELLER, then everyone else. A nil session lands on login.
func LandingPath(s *Session) string {
	if s == nil {
		return PathLogin
	}

	switch s.Role {
	case RoleAdmin:
		return PathAdmin
	case RoleBankTeller:
		return PathTeller
	default:
		return PathClient
	}
}
