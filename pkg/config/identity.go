package config

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIdentity is the caller identity carried inside an API token.
type TokenIdentity struct {
	// Username is the human-readable principal, used as the actor on
	// mutations.
	Username string
	// Subject is the raw token subject claim.
	Subject string
}

// IdentityFromToken extracts the caller identity from an API token without
// verifying its signature. Verification happens server side; the client
// only needs the claims to attribute its own mutations.
func IdentityFromToken(token string) (TokenIdentity, error) {
	if token == "" {
		return TokenIdentity{}, fmt.Errorf("identity: empty token")
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return TokenIdentity{}, fmt.Errorf("identity: parse token: %w", err)
	}

	id := TokenIdentity{}
	if sub, err := claims.GetSubject(); err == nil {
		id.Subject = sub
	}
	if username, ok := claims["username"].(string); ok && username != "" {
		id.Username = username
	} else if id.Subject != "" {
		// Service tokens carry no username claim; fall back to the last
		// path segment of the subject.
		parts := strings.Split(id.Subject, "/")
		id.Username = parts[len(parts)-1]
	}
	if id.Username == "" {
		return TokenIdentity{}, fmt.Errorf("identity: token carries no subject or username claim")
	}
	return id, nil
}
