// Package models provides client-side access to the remote model catalog.
package models

import "context"

// System defines the interface for model access.
type System interface {
	// List returns all models, or an empty list when the response shape is
	// unrecognized.
	List(ctx context.Context) ([]Model, error)

	// ListByProvider returns the models belonging to providerID. Members
	// naming a different provider are dropped.
	ListByProvider(ctx context.Context, providerID string) ([]Model, error)

	// Find retrieves a model by ID.
	// Returns ErrNotFound if the response does not carry a model.
	Find(ctx context.Context, id string) (*Model, error)

	// Create stores a new model under its provider.
	// Returns ErrProviderRequired or ErrNameRequired on missing fields.
	Create(ctx context.Context, cmd CreateCommand) (*Model, error)

	// Update changes an existing model.
	Update(ctx context.Context, id string, cmd UpdateCommand) (*Model, error)

	// Delete removes a model.
	Delete(ctx context.Context, id string) error
}
