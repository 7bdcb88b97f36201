// Package identity derives the labels a response reports about who is serving and who is asking.
package identity

import "net/http"

const (
	// Anonymous is reported when no Authorization header was sent
	Anonymous = "anonymous"
	// Authenticated is reported for any non-empty Authorization header.
	// The header content is never parsed or verified.
	Authenticated = "authenticated-user"
)

// Service is the name a service reports in its responses.
// It is resolved once at startup and passed by value to every handler.
type Service string

func (s Service) String() string {
	return string(s)
}

// FromHeader maps an Authorization header value onto a request identity label
func FromHeader(authorization string) string {
	if authorization == "" {
		return Anonymous
	}
	return Authenticated
}

// FromRequest returns the identity label for r based on header presence alone
func FromRequest(r *http.Request) string {
	return FromHeader(r.Header.Get("Authorization"))
}
