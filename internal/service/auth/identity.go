package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// IdentityResolver turns a bearer token into the authenticated user.
// It is invoked once per authenticated request, is idempotent, and has no
// side effects.
type IdentityResolver struct {
	jwtService JWTService
	userStore  store.UserStore
}

// NewIdentityResolver creates a new IdentityResolver with the given
// dependencies.
func NewIdentityResolver(jwtService JWTService, userStore store.UserStore) *IdentityResolver {
	return &IdentityResolver{
		jwtService: jwtService,
		userStore:  userStore,
	}
}

// Resolve validates the bearer token and loads the user it was issued
// for. Invalid or expired tokens and tokens whose subject no longer
// exists all return ErrUnauthorized, so the externally visible error
// never reveals whether the email is registered.
func (r *IdentityResolver) Resolve(ctx context.Context, token string) (*domain.User, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, ErrMissingToken)
	}

	claims, err := r.jwtService.ValidateToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	user, err := r.userStore.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Valid token for a deleted user looks identical to a bad
			// token from the outside.
			log.Debug("token subject no longer exists")
			return nil, ErrUnauthorized
		}
		log.Error("failed to load user for token subject", "error", err)
		return nil, fmt.Errorf("failed to resolve identity: %w", err)
	}

	return user, nil
}
