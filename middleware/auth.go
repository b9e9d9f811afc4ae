package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"roomrent/constants"
	"roomrent/errors"
	"roomrent/repositories"
	"roomrent/response"
	"roomrent/services"
)

// Context keys set by AuthMiddleware
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// TokenCookie is the cookie sign-in sets
const TokenCookie = "token"

type TokenParser interface {
	ParseToken(tokenString string) (*services.UserInfo, error)
}

// AuthMiddleware reads the bearer token, falling back to the token cookie
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			tokenString, _ = c.Cookie(TokenCookie)
		}
		if tokenString == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		info, err := tokens.ParseToken(tokenString)
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserID, info.UserId)
		c.Set(ContextUserRole, info.Role)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" {
		return ""
	}
	return strings.TrimSpace(token)
}

// RoleMiddleware reloads the user so role and owner approval changes apply
// without a new token. Owners must be approved.
func RoleMiddleware(users repositories.UserRepository, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(ContextUserID)
		if userID == 0 {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				response.Unauthorized(c)
			} else {
				response.FromError(c, err)
			}
			c.Abort()
			return
		}

		hasRole := false
		for _, r := range roles {
			if r == user.Role {
				hasRole = true
				break
			}
		}
		if !hasRole {
			response.Forbidden(c)
			c.Abort()
			return
		}
		if user.Role == constants.RoleOwner && !user.IsApprovedOwner() {
			response.FromError(c, errors.Forbidden("owner account not approved yet"))
			c.Abort()
			return
		}

		c.Set(ContextUserRole, user.Role)
		c.Next()
	}
}

// CurrentActor returns the authenticated caller
func CurrentActor(c *gin.Context) services.Actor {
	return services.Actor{ID: c.GetUint(ContextUserID), Role: c.GetString(ContextUserRole)}
}

// ErrorHandler writes the last error a handler attached with c.Error
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			response.FromError(c, c.Errors.Last().Err)
		}
	}
}
