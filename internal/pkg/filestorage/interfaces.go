package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for document storage operations.
// Stored paths are opaque strings persisted on the owning record.
type FileStorage interface {
	// SaveFile saves a file under the given subdirectory and returns its stored path
	SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a file from storage
	DeleteFile(filePath string) error
}
