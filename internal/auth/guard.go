package auth

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "blogapi/internal/errors"
)

const claimsContextKey = "claims"

// Policy declares what a route requires of its caller.
type Policy int

const (
	// Public routes need no session.
	Public Policy = iota
	// Authenticated routes need a valid, unrevoked session token.
	Authenticated
	// Owner routes additionally need the session user to own the target resource.
	Owner
)

func (p Policy) String() string {
	switch p {
	case Authenticated:
		return "authenticated"
	case Owner:
		return "owner"
	default:
		return "public"
	}
}

// OwnerResolver returns the id of the user owning the resource a request targets.
type OwnerResolver func(ctx context.Context, c echo.Context) (uuid.UUID, error)

// Guard verifies session tokens and resource ownership.
type Guard struct {
	tokens  *JWTService
	revoked RevocationStore
}

// NewGuard builds a guard. revoked may be nil to skip the deny-list.
func NewGuard(tokens *JWTService, revoked RevocationStore) *Guard {
	return &Guard{tokens: tokens, revoked: revoked}
}

// Middleware returns the middleware chain enforcing p. resolve is required for Owner.
func (g *Guard) Middleware(p Policy, resolve OwnerResolver) []echo.MiddlewareFunc {
	switch p {
	case Authenticated:
		return []echo.MiddlewareFunc{g.Authenticate()}
	case Owner:
		if resolve == nil {
			panic("auth: owner policy without resolver")
		}
		return []echo.MiddlewareFunc{g.Authenticate(), g.RequireOwner(resolve)}
	default:
		return nil
	}
}

// Authenticate rejects requests without a valid session cookie with 401 and
// stores the verified claims in the context.
func (g *Guard) Authenticate() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + CookieName,
		ContextKey:  claimsContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return g.Verify(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: apperrors.ErrUnauthorized.Error(),
				Code:  "UNAUTHORIZED",
			})
		},
	})
}

// Verify checks the token signature, expiry and the deny-list.
func (g *Guard) Verify(ctx context.Context, token string) (*Claims, error) {
	claims, err := g.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	if g.revoked != nil && g.revoked.IsRevoked(ctx, claims.ID) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RequireOwner must run after Authenticate. A missing resource maps through
// MapErrorToHTTP (404), a different owner is 403.
func (g *Guard) RequireOwner(resolve OwnerResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := CurrentClaims(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: apperrors.ErrUnauthorized.Error(),
					Code:  "UNAUTHORIZED",
				})
			}
			owner, err := resolve(c.Request().Context(), c)
			if err == nil {
				err = Authorize(claims, owner)
			}
			if err != nil {
				httpErr := apperrors.MapErrorToHTTP(err)
				if httpErr.StatusCode == http.StatusInternalServerError {
					return err
				}
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			return next(c)
		}
	}
}

// Authorize allows claims to act on a resource owned by owner.
func Authorize(claims *Claims, owner uuid.UUID) error {
	if claims == nil {
		return apperrors.ErrUnauthorized
	}
	if claims.UserID != owner {
		return apperrors.ErrForbidden
	}
	return nil
}

// CurrentClaims returns the claims stored by Authenticate.
func CurrentClaims(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(claimsContextKey).(*Claims)
	return claims, ok && claims != nil
}
