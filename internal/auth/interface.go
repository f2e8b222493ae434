package auth

import "arbor/internal/domain/models"

// TokenVerifier validates bearer tokens presented by the admin console.
type TokenVerifier interface {
	// VerifyToken validates a JWT and returns its claims, or an
	// unauthorized error.
	VerifyToken(tokenString string) (*models.AccessClaims, error)
	// Close releases verifier resources on shutdown.
	Close() error
}
