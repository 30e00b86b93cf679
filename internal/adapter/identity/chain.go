package identity

import (
	"context"

	"go-bars-app/internal/core/domain/bars"
	"go-bars-app/internal/core/ports"
)

// Chain tries each verifier in order and returns the first subject accepted.
type Chain []ports.TokenVerifier

var _ ports.TokenVerifier = Chain(nil)

func (c Chain) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", bars.ErrUnauthenticated
	}
	err := bars.ErrUnauthenticated
	for _, v := range c {
		if v == nil {
			continue
		}
		var sub string
		sub, err = v.Verify(ctx, token)
		if err == nil {
			return sub, nil
		}
	}
	return "", err
}
