package resumes

import "time"

// Resume is a stored generated document plus metadata. Profile keeps the
// submitted wizard payload as a JSON snapshot.
type Resume struct {
	ID         string
	UserID     string
	FullName   string
	StorageKey string
	MimeType   string
	SizeBytes  int64
	Profile    []byte
	CreatedAt  time.Time
	DeletedAt  *time.Time
}
