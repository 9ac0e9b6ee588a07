package ports

import "context"

// Identity resolves the current user of a session. The engine never reads it
// as ambient state: presentation code resolves the actor once and passes it
// explicitly into every engine call.
type Identity interface {
	CurrentUserId(ctx context.Context) (string, error)
	CurrentUserName(ctx context.Context) (string, error)
}
