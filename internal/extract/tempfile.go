package extract

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// SaveUpload persists a multipart file part to a uniquely named file under
// dir and returns its path together with a cleanup func. The cleanup func is
// idempotent: it tolerates the file already being gone and never reports
// removal failures to the caller (they are logged only). Handlers defer it so
// the temporary file is removed on every exit path.
func SaveUpload(dir string, file multipart.File, header *multipart.FileHeader) (string, func(), error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", nil, fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(dir, uuid.New().String()+filepath.Ext(header.Filename))
	dst, err := os.Create(path)
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(path)
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}

	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("⚠️  Failed to remove temp file %s: %v", path, err)
		}
	}

	return path, cleanup, nil
}
