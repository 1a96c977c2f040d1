package services

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// GoogleClaims is the verified payload of a Google ID token.
type GoogleClaims struct {
	Subject string
	Email   string
}

// GoogleVerifier validates a Google-issued ID token against an expected
// audience. It is an injected collaborator so tests can substitute a fake.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken, audience string) (*GoogleClaims, error)
}

type googleIDTokenVerifier struct{}

// NewGoogleVerifier returns a verifier backed by Google's token endpoint.
func NewGoogleVerifier() GoogleVerifier {
	return googleIDTokenVerifier{}
}

func (googleIDTokenVerifier) Verify(ctx context.Context, token, audience string) (*GoogleClaims, error) {
	payload, err := idtoken.Validate(ctx, token, audience)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGoogleToken, err)
	}

	email, _ := payload.Claims["email"].(string)
	return &GoogleClaims{Subject: payload.Subject, Email: email}, nil
}
