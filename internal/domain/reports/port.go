package reports

import "context"

// ArtifactStore port for report document storage
type ArtifactStore interface {
	Upload(ctx context.Context, localPath, key string) (string, error)
	UploadAndCleanup(ctx context.Context, localPath, key string) (string, error)
}

// Deliverer port for shipping a report to the delivery endpoint
type Deliverer interface {
	Send(ctx context.Context, d Delivery) error
}
