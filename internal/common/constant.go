// Package common contains constants shared by the client packages.
package common

// Outgoing request headers.
const (
	AuthorizationHeaderName = "Authorization"
	BearerPrefix            = "Bearer "
	ContentTypeHeaderName   = "Content-Type"
	ContentTypeJSON         = "application/json"
)

// Keys of the client-side key-value store. The access token has historically
// been saved under three different names; readers check them in the order of
// DefaultTokenKeys.
const (
	AccessTokenKey  = "access_token"
	LegacyAccessKey = "access"
	LegacyTokenKey  = "token"
	RefreshTokenKey = "refresh_token"
	UsernameKey     = "username"
)

// DefaultTokenKeys returns the credential lookup order: access_token, then
// access, then token.
func DefaultTokenKeys() []string {
	return []string{AccessTokenKey, LegacyAccessKey, LegacyTokenKey}
}
