package repositories

import (
	"context"
	"io"

	"motorhub.backend/internal/domain/entities"
)

// ChangeFeed carries collection change events from writers to live subscribers.
type ChangeFeed interface {
	Publish(ctx context.Context, event entities.ChangeEvent) error
	// Changes streams events for one collection until ctx is done.
	Changes(ctx context.Context, collection entities.Collection) (<-chan entities.ChangeEvent, error)
}

// BlobStore persists uploaded binaries and returns their public URL.
type BlobStore interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}
