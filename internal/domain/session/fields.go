package session

import "errors"

// Persisted field names. Every store backend writes exactly these four keys
// under a session handle; there is no versioning.
const (
	FieldToken  = "token"
	FieldRole   = "role"
	FieldUserID = "userId"
	FieldName   = "name"
)

var ErrNotFound = errors.New("session not found")

func (s Session) Fields() map[string]string {
	return map[string]string{
		FieldToken:  s.Token,
		FieldRole:   string(s.Role),
		FieldUserID: s.UserID,
		FieldName:   s.DisplayName,
	}
}

// FromFields rebuilds a session from persisted fields. A missing or empty
// field means there is no usable session.
func FromFields(fields map[string]string) (Session, error) {
	s := Session{
		Token:       fields[FieldToken],
		Role:        ParseRole(fields[FieldRole]),
		UserID:      fields[FieldUserID],
		DisplayName: fields[FieldName],
	}

	if err := s.Validate(); err != nil {
		return Session{}, ErrNotFound
	}
	return s, nil
}
