package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"caterbase/internal/core/apperror"
	appctx "caterbase/internal/core/context"
	"caterbase/internal/core/tenant"
)

// JWTValidator interface for token validation.
type JWTValidator interface {
	ValidateToken(tokenString string) (*appctx.UserContext, error)
}

// Auth middleware validates JWT tokens and populates user context.
func Auth(validator JWTValidator) gin.HandlerFunc {
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

		user, err := validator.ValidateToken(parts[1])
		if err != nil {
			_ = c.Error(apperror.NewUnauthorized("invalid token"))
			c.Abort()
			return
		}

		// Enforce tenant match: X-Tenant-ID resolved by TenantDB must match token tenant.
		resolvedTenantID := tenant.GetTenantID(c.Request.Context())
		if resolvedTenantID != "" && user.TenantID != "" && resolvedTenantID != user.TenantID {
			_ = c.Error(
				apperror.NewForbidden("tenant mismatch").
					WithDetail("header_tenant_id", resolvedTenantID).
					WithDetail("token_tenant_id", user.TenantID),
			)
			c.Abort()
			return
		}

		ctx := appctx.WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		// Store in gin context for easy access
		c.Set("user_id", user.UserID)
		c.Set("roles", user.Roles)

		c.Next()
	}
}

// OptionalAuth validates token if present, but doesn't require it.
func OptionalAuth(validator JWTValidator) gin.HandlerFunc {
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

		user, err := validator.ValidateToken(parts[1])
		if err == nil && user != nil {
			// Ignore token belonging to another tenant.
			resolvedTenantID := tenant.GetTenantID(c.Request.Context())
			if resolvedTenantID != "" && user.TenantID != "" && resolvedTenantID != user.TenantID {
				c.Next()
				return
			}

			ctx := appctx.WithUser(c.Request.Context(), user)
			c.Request = c.Request.WithContext(ctx)
			c.Set("user_id", user.UserID)
			c.Set("roles", user.Roles)
		}

		c.Next()
	}
}

// RequireRole middleware checks if user has any of the required roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}

		for _, required := range roles {
			for _, userRole := range user.Roles {
				if userRole == required {
					c.Next()
					return
				}
			}
		}
		_ = c.Error(
			apperror.NewForbidden("insufficient permissions").
				WithDetail("required_roles", roles),
		)
		c.Abort()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}
