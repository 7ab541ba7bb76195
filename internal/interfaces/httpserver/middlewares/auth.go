package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/AnuGuin/LegalAI-Backend/internal/domain/user"
	"github.com/AnuGuin/LegalAI-Backend/internal/infrastructure/tokenauth"
	"github.com/AnuGuin/LegalAI-Backend/internal/utils/platformerrors"
)

const principalKey = "auth.principal"

// Principal is the authenticated caller attached to the request.
type Principal struct {
	UserID   uint
	PublicID string
	Email    string
	Name     string
}

// AuthMiddleware validates the bearer access token and resolves the account.
func AuthMiddleware(tokens *tokenauth.Manager, users user.Repository, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			platformerrors.WriteUnauthorized(c, "missing bearer token")
			c.Abort()
			return
		}

		claims, err := tokens.VerifyAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			platformerrors.WriteUnauthorized(c, "invalid or expired access token")
			c.Abort()
			return
		}

		usr, err := users.FindByPublicID(c.Request.Context(), claims.Subject)
		if err != nil {
			platformerrors.WriteError(c, err, logger)
			c.Abort()
			return
		}
		if usr == nil {
			platformerrors.WriteUnauthorized(c, "account no longer exists")
			c.Abort()
			return
		}

		c.Set(principalKey, Principal{
			UserID:   usr.ID,
			PublicID: usr.PublicID,
			Email:    usr.Email,
			Name:     usr.Name,
		})
		c.Next()
	}
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(c *gin.Context) (Principal, bool) {
	val, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	principal, ok := val.(Principal)
	return principal, ok
}
