package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"basekit/internal/core/apperror"
	appctx "basekit/internal/core/context"
)

// TokenValidator validates a bearer token and returns the actor it
// identifies.
type TokenValidator interface {
	ValidateToken(tokenString string) (*appctx.Actor, error)
}

// Auth middleware validates JWT tokens and populates the acting user.
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		actor, err := validator.ValidateToken(parts[1])
		if err != nil {
			_ = c.Error(apperror.NewUnauthorized("invalid token"))
			c.Abort()
			return
		}

		ctx := appctx.WithActor(c.Request.Context(), actor)
		c.Request = c.Request.WithContext(ctx)

		c.Set("user_id", actor.UserID.String())

		c.Next()
	}
}

// OptionalAuth validates a token if present, but doesn't require it.
// Requests without a valid token proceed with an anonymous actor, which
// history records as "Anonymous user".
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.Next()
			return
		}

		actor, err := validator.ValidateToken(parts[1])
		if err == nil && actor != nil {
			ctx := appctx.WithActor(c.Request.Context(), actor)
			c.Request = c.Request.WithContext(ctx)
			c.Set("user_id", actor.UserID.String())
		}

		c.Next()
	}
}

// RequireStaff allows only authenticated staff users through. Used for
// the administrative trash and hard-delete endpoints.
func RequireStaff(isStaff func(c *gin.Context) (bool, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := appctx.GetActor(c.Request.Context())
		if actor == nil || !actor.Authenticated {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}

		staff, err := isStaff(c)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		if !staff {
			_ = c.Error(apperror.NewForbidden("staff access required"))
			c.Abort()
			return
		}

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}
