package i

import (
	"time"
)

// Tokenizer mints and verifies the bearer tokens handed out at sign-in.
type Tokenizer interface {
	// Generate signs a token carrying the given claims, valid for expTime.
	Generate(claims map[string]interface{}, expTime time.Duration) (string, error)

	// Decode validates a token and returns its claims.
	Decode(token string) (map[string]interface{}, error)
}
