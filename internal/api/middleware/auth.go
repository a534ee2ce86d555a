package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/zeecare/hospital-system/internal/api/metrics"
	"github.com/zeecare/hospital-system/internal/core/domain"
	"github.com/zeecare/hospital-system/internal/core/ports"
	"github.com/zeecare/hospital-system/internal/core/token"
)

// ContextUserKey is where the guard stores the resolved identity on accept.
const ContextUserKey = "auth_user"

// Denylist is the optional revocation extension. A nil Denylist means
// expiry-only revocation.
type Denylist interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Guard gates role-restricted routes. Each surface gets its own middleware
// via Require, bound to that surface's cookie and required role.
type Guard struct {
	tokens   *token.Issuer
	users    ports.UserRepository
	denylist Denylist
}

func NewGuard(tokens *token.Issuer, users ports.UserRepository, denylist Denylist) *Guard {
	return &Guard{tokens: tokens, users: users, denylist: denylist}
}

// Require verifies the role-scoped cookie and resolves the identity into the
// request context. Checks run in a fixed order and the first violation
// rejects the request:
//
//	cookie absent        → ErrUnauthenticated
//	signature/shape bad  → ErrInvalidToken
//	past expiry          → ErrTokenExpired
//	jti on the denylist  → ErrInvalidToken
//	claim role ≠ required → ErrRoleMismatch
//
// Role consistency is checked against the claim's embedded role, never
// inferred from the cookie name. Signature and expiry checks are pure; the
// only I/O on the accept path is resolving the identity record.
func (g *Guard) Require(role string) echo.MiddlewareFunc {
	cookieName := token.CookieNameForRole(role)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return domain.ErrUnauthenticated
			}

			claims, err := g.tokens.Parse(cookie.Value)
			if err != nil {
				if err == domain.ErrTokenExpired {
					metrics.TokenRejectionsTotal.WithLabelValues("expired").Inc()
				} else {
					metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				}
				return err
			}

			if g.denylist != nil {
				revoked, err := g.denylist.IsRevoked(c.Request().Context(), claims.ID)
				if err != nil {
					return err
				}
				if revoked {
					metrics.TokenRejectionsTotal.WithLabelValues("revoked").Inc()
					return domain.ErrInvalidToken
				}
			}

			if claims.Role != role {
				metrics.TokenRejectionsTotal.WithLabelValues("role_mismatch").Inc()
				return domain.ErrRoleMismatch
			}

			user, err := g.users.FindByID(c.Request().Context(), claims.Subject)
			if err != nil {
				if err == domain.ErrUserNotFound || err == domain.ErrInvalidID {
					// Signed token referencing a record that no longer
					// resolves; treat it as forged.
					metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
					return domain.ErrInvalidToken
				}
				return err
			}

			c.Set(ContextUserKey, user.Public())
			return next(c)
		}
	}
}
