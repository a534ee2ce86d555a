// Package token issues and verifies the signed identity tokens bound to the
// role-scoped session cookies. Signing and verification are pure: no I/O, no
// server-side session state.
package token

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/zeecare/hospital-system/internal/core/domain"
)

// Cookie names per surface. The dashboard (Admin) and the patient site use
// different names so one browser can hold both sessions without collision.
const (
	AdminCookie   = "adminToken"
	PatientCookie = "patientToken"
)

// ErrNoSecret is returned when an Issuer is constructed without a signing
// secret. The process must not serve requests in that state.
var ErrNoSecret = errors.New("token: signing secret is not configured")

// CookieNameForRole maps a role tag to its surface cookie. Admins use the
// dashboard cookie; patients and doctors share the patient-facing one.
func CookieNameForRole(role string) string {
	if role == domain.RoleAdmin {
		return AdminCookie
	}
	return PatientCookie
}

// Claims is the signed token payload: user id as subject, role tag, and a
// unique token id (jti) for the optional revocation denylist.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies HS256-signed identity tokens with a process-wide
// secret. Token TTL and cookie TTL are configured independently; when they
// diverge the shorter one bounds the effective session.
type Issuer struct {
	secret    []byte
	tokenTTL  time.Duration
	cookieTTL time.Duration
	secure    bool
}

// NewIssuer builds an Issuer. secure should be true in production so cookies
// are marked Secure and SameSite=None for the cross-origin front-ends.
func NewIssuer(secret string, tokenTTL, cookieTTL time.Duration, secure bool) (*Issuer, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	if cookieTTL <= 0 {
		cookieTTL = 7 * 24 * time.Hour
	}
	return &Issuer{
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
		cookieTTL: cookieTTL,
		secure:    secure,
	}, nil
}

// Issue signs a token for the given identity. The signature covers the whole
// claim set, so tampering with role or expiry invalidates it.
func (i *Issuer) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Parse verifies the signature and expiry of a signed token and returns its
// claims. Failures are mapped to the domain taxonomy: expiry to
// ErrTokenExpired, everything else to ErrInvalidToken.
func (i *Issuer) Parse(signed string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(signed, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}
	if !tkn.Valid || claims.Subject == "" || claims.Role == "" {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// TokenTTL returns the configured token lifetime. The denylist uses it as the
// upper bound for how long a revoked jti needs to be remembered.
func (i *Issuer) TokenTTL() time.Duration {
	return i.tokenTTL
}

// Cookie builds the role-scoped session cookie carrying the signed token.
func (i *Issuer) Cookie(role, signed string) *http.Cookie {
	c := i.baseCookie(role)
	c.Value = signed
	c.Expires = time.Now().Add(i.cookieTTL)
	return c
}

// ExpiredCookie builds the logout replacement: same name, empty value,
// already-past expiry, so the browser drops the session. This is the only
// revocation the stateless design offers; a token copied elsewhere stays
// valid until it expires unless the denylist extension is wired.
func (i *Issuer) ExpiredCookie(role string) *http.Cookie {
	c := i.baseCookie(role)
	c.Value = ""
	c.Expires = time.Unix(0, 0)
	c.MaxAge = -1
	return c
}

func (i *Issuer) baseCookie(role string) *http.Cookie {
	c := &http.Cookie{
		Name:     CookieNameForRole(role),
		Path:     "/",
		HttpOnly: true,
		Secure:   i.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if i.secure {
		// The dashboard and the patient site are served from other origins;
		// None is required for the browser to replay the cookie cross-site.
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}
