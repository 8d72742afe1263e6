package cart

import "context"

// StateVersion is the current persisted record version. Records with a
// different version are ignored on rehydration.
const StateVersion = 1

// State is the serialized cart record kept under a single key per owner.
type State struct {
	Version int        `json:"version"`
	Items   []LineItem `json:"items"`
}

// Persistence is the storage port for cart state. Load returns (nil, nil)
// when no record exists for the owner.
type Persistence interface {
	Load(ctx context.Context, ownerID string) (*State, error)
	Save(ctx context.Context, ownerID string, state *State) error
	Delete(ctx context.Context, ownerID string) error
}
