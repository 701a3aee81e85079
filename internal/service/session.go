package service

import "wordtrainer/internal/domain"

// Session is the authenticated user of one client. It is restored from the
// store, activated by Register or Login and cleared by Logout; only
// AccountService changes it.
type Session struct {
	clientID string
	user     *domain.User
}

// ClientID identifies the client the session belongs to
func (s *Session) ClientID() string {
	return s.clientID
}

// User returns the active user
func (s *Session) User() (domain.User, bool) {
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// Active reports whether a user is signed in
func (s *Session) Active() bool {
	return s.user != nil
}
