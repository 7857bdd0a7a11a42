package ports

import (
	"context"
	"mime/multipart"
)

// Uploader validates, optionally transforms, and persists uploaded files,
// returning stored references in input order. A single rejected file aborts
// the whole batch before anything is written.
type Uploader interface {
	Store(ctx context.Context, files []*multipart.FileHeader) ([]string, error)
}

// FileCleaner schedules best-effort background deletion of stored files.
// Enqueue never blocks the caller on the actual deletion and failures are
// logged, not returned.
type FileCleaner interface {
	Enqueue(paths ...string)
}
