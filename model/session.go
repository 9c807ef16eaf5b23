package model

// Session is the authenticated identity passed explicitly into every client
// call. There is deliberately no ambient or global session; callers own the
// value and its lifetime.
type Session struct {
	Token  string
	UserID string
	Admin  bool
}

// NewSession builds a Session from a login response.
func NewSession(response *LoginResponse) *Session {
	session := &Session{Token: response.Token}
	if response.User != nil {
		session.UserID = response.User.ID
		session.Admin = response.User.Admin
	}
	return session
}

// IsValid reports whether the session can authenticate a call at all.
func (s *Session) IsValid() bool {
	return s != nil && s.Token != ""
}

// Role returns the workflow role the session acts in.
func (s *Session) Role() Role {
	if s != nil && s.Admin {
		return RoleAdmin
	}
	return RoleOwner
}
