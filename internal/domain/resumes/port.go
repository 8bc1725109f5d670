package resumes

import "context"

// Repository port for persisting and querying analysis history.
// Save assigns ID and CreatedAt on the passed record. ID assignment is
// monotonic and collision-free under concurrent writers; a record becomes
// visible to readers atomically once Save returns.
type Repository interface {
	Save(ctx context.Context, h *History) error
	Get(ctx context.Context, id HistoryID) (*History, error)
	Latest(ctx context.Context, limit int) ([]*History, error)
	LatestByOwner(ctx context.Context, owner string, limit int) ([]*History, error)
	CountAll(ctx context.Context) (int64, error)
}

// Renderer port for turning a stored record into a PDF report
type Renderer interface {
	Render(h *History) ([]byte, error)
}

// ArchiveStore port for object storage of uploaded files and rendered reports
type ArchiveStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
