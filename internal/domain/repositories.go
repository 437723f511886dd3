package domain

import (
	"context"
)

// ItemRepository provides access to library items on the media server
type ItemRepository interface {
	// GetViews returns the user's top-level libraries
	GetViews(ctx context.Context) ([]*Item, error)

	// GetItem returns a single item with all image fields populated
	GetItem(ctx context.Context, itemID string) (*Item, error)

	// GetChildren returns the direct children of a folder-like item
	GetChildren(ctx context.Context, parentID string) ([]*Item, error)

	// Search performs a server-side search across all libraries
	Search(ctx context.Context, query string) ([]*Item, error)
}

// AuthResult contains the result of a successful authentication
type AuthResult struct {
	Token    string // Access token for API calls
	UserID   string // User identifier
	Username string // Display username
}

// AuthFlow runs an interactive authentication against a server
type AuthFlow interface {
	Run(ctx context.Context, serverURL string) (*AuthResult, error)
}
