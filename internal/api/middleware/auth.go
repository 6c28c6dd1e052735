package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Scopes granted to agent tokens.
const (
	ScopeRead  = "read"
	ScopeWrite = "write"
)

const agentIssuer = "notaspace-agent"

// AgentClaims are carried by the bearer tokens the agent accepts. Scope is a
// space separated list.
type AgentClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

func (c AgentClaims) Scopes() []string { return strings.Fields(c.Scope) }

// IssueToken signs an HS256 agent token for subject. A zero ttl means the
// token never expires.
func IssueToken(secret, subject string, scopes []string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("agent secret is empty")
	}
	now := time.Now()
	claims := AgentClaims{
		Scope: strings.Join(scopes, " "),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   agentIssuer,
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Auth validates the agent token and injects its subject and scopes into the context.
func Auth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			var claims AgentClaims
			tkn, err := jwt.ParseWithClaims(parts[1], &claims, func(token *jwt.Token) (any, error) {
				return []byte(secret), nil
			},
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
				jwt.WithIssuer(agentIssuer),
			)
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("subject", claims.Subject)
			c.Set("scopes", claims.Scopes())

			return next(c)
		}
	}
}

// RequireScope rejects requests whose token lacks scope.
func RequireScope(scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scopes, _ := c.Get("scopes").([]string)
			if !slices.Contains(scopes, scope) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "token lacks " + scope + " scope"})
			}
			return next(c)
		}
	}
}
