// Package identity resolves the session user from the environment. The
// engine has no authentication of its own: it trusts the identity resolved
// once at startup and passed explicitly into every call.
package identity

import (
	"context"
	"errors"

	"github.com/peerdex-network/peerdex-engine/internal/config"
	"github.com/peerdex-network/peerdex-engine/internal/core/ports"
)

// ErrMissingUserId is returned when no user id is configured for the session.
var ErrMissingUserId = errors.New(
	"missing user id, set the PEERDEX_USER_ID environment variable",
)

type envIdentity struct{}

// NewEnvIdentity returns an Identity reading the user from the PEERDEX_USER_ID
// and PEERDEX_USER_NAME environment variables.
func NewEnvIdentity() ports.Identity {
	return envIdentity{}
}

func (envIdentity) CurrentUserId(_ context.Context) (string, error) {
	userId := config.GetString(config.UserIdKey)
	if userId == "" {
		return "", ErrMissingUserId
	}
	return userId, nil
}

func (envIdentity) CurrentUserName(_ context.Context) (string, error) {
	userName := config.GetString(config.UserNameKey)
	if userName == "" {
		return config.GetString(config.UserIdKey), nil
	}
	return userName, nil
}
