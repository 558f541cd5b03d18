package identity

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mazehub/mazehub-api/service/i"
)

const (
	// ContextUserClaims is the key used to store user claims in the Gin context.
	ContextUserClaims = "userClaims"
)

func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Status(http.StatusUnauthorized) // No token found in the header.
			c.Abort()
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Status(http.StatusUnauthorized) // Malformed Authorization header.
			c.Abort()
			return
		}

		// Extract the token part.
		token := parts[1]

		// Validate the token.
		claims, err := ts.Decode(token)
		if err != nil {
			c.Status(http.StatusUnauthorized)
			c.Abort()
			return
		}

		// Attach user claims to the request context for further use.
		c.Set(ContextUserClaims, claims)
		c.Next()
	}
}

// CurrentUserID extracts the authenticated user's id from the claims the
// authorization middleware stored on the context.
func CurrentUserID(c *gin.Context) (uuid.UUID, error) {
	raw, ok := c.Get(ContextUserClaims)
	if !ok {
		return uuid.Nil, errors.New("no user claims on request")
	}

	claims, ok := raw.(map[string]interface{})
	if !ok {
		return uuid.Nil, errors.New("malformed user claims")
	}

	idString, ok := claims["userID"].(string)
	if !ok {
		return uuid.Nil, errors.New("claims carry no user id")
	}
	return uuid.Parse(idString)
}

// CurrentUsername extracts the authenticated user's name from the
// context claims. Missing claims come back as an empty string.
func CurrentUsername(c *gin.Context) string {
	raw, ok := c.Get(ContextUserClaims)
	if !ok {
		return ""
	}

	claims, ok := raw.(map[string]interface{})
	if !ok {
		return ""
	}

	username, _ := claims["username"].(string)
	return username
}
