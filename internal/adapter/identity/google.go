package identity

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"

	"go-bars-app/internal/core/domain/bars"
	"go-bars-app/internal/core/ports"
)

// GoogleVerifier accepts Google-issued ID tokens for the configured client id.
type GoogleVerifier struct {
	audience string
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

func NewGoogleVerifier(audience string) *GoogleVerifier {
	return &GoogleVerifier{audience: audience, validate: idtoken.Validate}
}

var _ ports.TokenVerifier = (*GoogleVerifier)(nil)

func (v *GoogleVerifier) Verify(ctx context.Context, token string) (string, error) {
	payload, err := v.validate(ctx, token, v.audience)
	if err != nil {
		return "", fmt.Errorf("%w: %v", bars.ErrUnauthenticated, err)
	}
	if payload.Subject == "" {
		return "", fmt.Errorf("%w: token has no subject", bars.ErrUnauthenticated)
	}
	return payload.Subject, nil
}
