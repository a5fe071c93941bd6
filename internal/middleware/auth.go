package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cybersec-git-expert/catalog-governance/internal/model"
	"github.com/cybersec-git-expert/catalog-governance/pkg/auth"
)

// ContextPrincipal is the gin context key holding the resolved principal.
const ContextPrincipal = "principal"

type AuthMiddleware struct {
	tokens auth.TokenService
}

func NewAuthMiddleware(tokens auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate verifies the bearer token and resolves it into an
// AdminPrincipal on the request context. The principal is immutable for the
// request's duration; every policy decision downstream reads it from here.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "missing authorization header",
			})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "invalid authorization format",
			})
			c.Abort()
			return
		}

		claims, err := m.tokens.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "invalid token",
			})
			c.Abort()
			return
		}

		principal := &model.AdminPrincipal{
			ID:           claims.PrincipalID,
			Email:        claims.Email,
			Role:         model.AdminRole(claims.Role),
			Capabilities: claims.Capabilities,
		}
		if claims.HomeCountry != "" {
			country := claims.HomeCountry
			principal.HomeCountry = &country
		}
		if !principal.Role.Valid() {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "unknown role",
			})
			c.Abort()
			return
		}

		c.Set(ContextPrincipal, principal)
		c.Next()
	}
}

// PrincipalFromContext returns the authenticated principal, or nil when the
// auth middleware did not run.
func PrincipalFromContext(c *gin.Context) *model.AdminPrincipal {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return nil
	}
	principal, ok := v.(*model.AdminPrincipal)
	if !ok {
		return nil
	}
	return principal
}
