// Package storage persists uploaded resume files and hands back the path
// that is stored verbatim on the job application.
package storage

import (
	"context"
	"io"
)

type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}
