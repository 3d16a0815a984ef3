package file

import "io"

// StorageClient abstracts the remote blob store so handlers can run
// against the database-only fallback or a fake in tests.
type StorageClient interface {
	UploadFile(objectName string, fileData io.Reader) error
	DownloadFile(objectName string) (io.ReadCloser, int64, error)
}
