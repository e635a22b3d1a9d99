// Package providers implements client-side access to the remote provider
// catalog. Responses are normalized before decoding because the remote
// service does not guarantee a stable response shape.
package providers

import "context"

// System defines the interface for provider access.
type System interface {
	// List returns all providers. An unrecognized response shape yields an
	// empty list rather than an error; transport failures are returned.
	List(ctx context.Context) ([]Provider, error)

	// Find retrieves a provider by ID.
	// Returns ErrNotFound if the response does not carry a provider.
	Find(ctx context.Context, id string) (*Provider, error)

	// Create stores a new provider with a type inferred from its name.
	// Returns ErrNameRequired if the name is blank.
	Create(ctx context.Context, cmd CreateCommand) (*Provider, error)

	// Update changes an existing provider.
	// Returns ErrIDRequired if id is blank.
	Update(ctx context.Context, id string, cmd UpdateCommand) (*Provider, error)

	// Delete removes a provider.
	// Returns ErrIDRequired if id is blank.
	Delete(ctx context.Context, id string) error
}
