package auth

import "blueline/reservehub/internal/constants"

// UserClaims is the authenticated principal attached to every request.
// The identity provider owns credentials; by the time claims exist here the
// user row has been resolved (created on first access).
type UserClaims interface {
	UserID() string
	Email() string
	Name() string
	Role() string
	Source() string
}

// SessionClaims come from a server-side session minted after provider login
type SessionClaims struct {
	UserIDValue string
	EmailValue  string
	NameValue   string
	RoleValue   constants.Role
}

func (c *SessionClaims) UserID() string { return c.UserIDValue }
func (c *SessionClaims) Email() string  { return c.EmailValue }
func (c *SessionClaims) Name() string   { return c.NameValue }
func (c *SessionClaims) Role() string   { return c.RoleValue.String() }
func (c *SessionClaims) Source() string { return string(constants.RequestSourceSession) }

// BearerClaims come from a provider-issued JWT on the Authorization header
type BearerClaims struct {
	UserIDValue string
	EmailValue  string
	NameValue   string
	RoleValue   constants.Role
}

func (c *BearerClaims) UserID() string { return c.UserIDValue }
func (c *BearerClaims) Email() string  { return c.EmailValue }
func (c *BearerClaims) Name() string   { return c.NameValue }
func (c *BearerClaims) Role() string   { return c.RoleValue.String() }
func (c *BearerClaims) Source() string { return string(constants.RequestSourceBearer) }
