package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"storefront-service/errors"
)

const UserEmailKey = "email"

type identityBody struct {
	Email string `json:"email"`
}

// IdentityMiddleware resolves the caller's account email. The X-User-Email
// header wins, then the "email" query parameter, then the user_email cookie,
// then an "email" field in a JSON body. The email is trusted as given.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := ResolveEmail(c)
		if email == "" {
			c.AbortWithStatusJSON(errors.ErrMissingIdentity.Code, gin.H{"error": errors.ErrMissingIdentity.Message})
			return
		}

		c.Set(UserEmailKey, email)
		c.Next()
	}
}

// ResolveEmail returns the first non-empty identity found on the request.
func ResolveEmail(c *gin.Context) string {
	if email := c.GetHeader("X-User-Email"); email != "" {
		return email
	}
	if email := c.Query("email"); email != "" {
		return email
	}
	if v, err := c.Cookie("user_email"); err == nil && v != "" {
		return v
	}
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return ""
	}

	// ShouldBindBodyWith caches the body so handlers can bind it again.
	var body identityBody
	if err := c.ShouldBindBodyWith(&body, binding.JSON); err != nil {
		return ""
	}
	return body.Email
}

// GetUserEmail extracts the resolved email from the Gin context.
func GetUserEmail(c *gin.Context) (string, error) {
	if val, ok := c.Get(UserEmailKey); ok {
		if email, ok := val.(string); ok && email != "" {
			return email, nil
		}
	}
	return "", errors.ErrMissingIdentity
}
