// Package token signs and verifies the HS256 bearer tokens handed out at
// sign-in.
package token

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/mazehub/mazehub-api/service/i"
)

// JwtService mints and validates HMAC-signed tokens.
type JwtService struct {
	secretKey string
	issuer    string
}

// NewJwtService creates a JWT service with the provided signing secret
// and issuer.
func NewJwtService(secretKey, issuer string) i.Tokenizer {
	return &JwtService{
		secretKey: secretKey,
		issuer:    issuer,
	}
}

// Generate creates a JWT carrying the given claims plus expiry and
// issuer.
func (s *JwtService) Generate(claims map[string]interface{}, expTime time.Duration) (string, error) {
	jwtClaims := jwt.MapClaims{
		"exp": time.Now().UTC().Add(expTime).Unix(),
		"iss": s.issuer,
	}
	for key, val := range claims {
		jwtClaims[key] = val
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	return token.SignedString([]byte(s.secretKey))
}

// Decode parses and validates a JWT, returning its claims. Tokens from
// other issuers are rejected even when the signature checks out.
func (s *JwtService) Decode(tokenString string) (map[string]interface{}, error) {
	token, err := jwt.Parse(tokenString, s.signingKey)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return nil, errors.New("unknown token issuer")
	}
	return claims, nil
}

// signingKey returns the HMAC secret after checking the signing method.
func (s *JwtService) signingKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return []byte(s.secretKey), nil
}
