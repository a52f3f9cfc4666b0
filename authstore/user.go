package authstore

import "github.com/viant/authstate/session"

// User represents authenticated application user
type User struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

// DisplayName returns name or email when name is absent
func (u *User) DisplayName() string {
	if u.Name != nil {
		return *u.Name
	}
	return u.Email
}

// State represents authentication state snapshot
type State struct {
	User            *User `json:"user"`
	IsLoading       bool  `json:"isLoading"`
	IsAuthenticated bool  `json:"isAuthenticated"`
}

// Consistent reports whether IsAuthenticated agrees with User presence
func (s State) Consistent() bool {
	return s.IsAuthenticated == (s.User != nil)
}

func initialState() State {
	return State{IsLoading: true}
}

func resolved(user *User) State {
	return State{User: user, IsAuthenticated: user != nil}
}

// Project maps provider session to application user, nil session yields nil
func Project(s *session.Session) *User {
	if s == nil {
		return nil
	}
	ret := &User{ID: s.User.ID, Email: s.User.Email}
	if meta := s.User.UserMetadata; meta != nil && meta.Name != "" {
		name := meta.Name
		ret.Name = &name
	}
	return ret
}
