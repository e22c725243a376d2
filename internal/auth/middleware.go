package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/squadboard/squadboard-api/internal/apperror"
)

const claimsKey = "auth.claims"

var (
	// ErrMissingToken is returned when no bearer token is sent.
	ErrMissingToken = apperror.Unauthorized("missing bearer token")
	// ErrForbidden is returned when the caller's role lacks a permission.
	ErrForbidden = apperror.Forbidden("insufficient permissions")
)

// Authenticate parses the bearer token and stores its claims on the context.
func Authenticate(tm *TokenManager, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			apperror.Respond(c, logger, ErrMissingToken)
			return
		}

		claims, err := tm.Parse(strings.TrimSpace(token))
		if err != nil {
			apperror.Respond(c, logger, err)
			return
		}

		SetClaims(c, claims)
		c.Next()
	}
}

// Require aborts with 403 unless the authenticated role holds perm.
func Require(perm Permission, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil {
			apperror.Respond(c, logger, ErrMissingToken)
			return
		}
		if !Can(claims.Role, perm) {
			logger.Debugw("permission denied",
				"user_id", claims.ID,
				"role", claims.Role,
				"permission", perm.String(),
			)
			apperror.Respond(c, logger, ErrForbidden)
			return
		}
		c.Next()
	}
}

// SetClaims stores claims on the request context.
func SetClaims(c *gin.Context, claims *Claims) {
	c.Set(claimsKey, claims)
}

// ClaimsFrom returns the authenticated caller, or nil.
func ClaimsFrom(c *gin.Context) *Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}
