package auth

import (
	"net/http"
	"strings"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "auth"

// SessionCookieMaxAge matches the token TTL (7 days, in seconds).
const SessionCookieMaxAge = 604800

// CookieAttributes are the origin-dependent session cookie flags.
type CookieAttributes struct {
	SameSite http.SameSite
	Secure   bool
}

// CookiePolicy returns the cookie flags for a request origin. Loopback
// development origins get relaxed flags; everything else gets the cross-site
// capable combination the split frontend/API deployment needs.
func CookiePolicy(isLocalOrigin bool) CookieAttributes {
	if isLocalOrigin {
		return CookieAttributes{SameSite: http.SameSiteLaxMode, Secure: false}
	}
	return CookieAttributes{SameSite: http.SameSiteNoneMode, Secure: true}
}

// IsLocalOrigin reports whether the Origin header points at a loopback
// development host.
func IsLocalOrigin(origin string) bool {
	return strings.HasPrefix(origin, "http://localhost") ||
		strings.HasPrefix(origin, "http://127.0.0.1")
}

// SessionCookie builds the Set-Cookie value carrying token for the given
// origin. An empty token produces the clearing cookie (Max-Age 0).
func SessionCookie(token, origin string) *http.Cookie {
	attrs := CookiePolicy(IsLocalOrigin(origin))

	maxAge := SessionCookieMaxAge
	if token == "" {
		maxAge = -1
	}

	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   attrs.Secure,
		SameSite: attrs.SameSite,
	}
}
