package extract

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"testing"
)

func uploadedFile(t *testing.T, field, name, content string) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile(field, name)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	file, header, err := req.FormFile(field)
	if err != nil {
		t.Fatalf("Failed to read form file: %v", err)
	}
	t.Cleanup(func() { file.Close() })

	return file, header
}

func TestSaveUploadAndCleanup(t *testing.T) {
	file, header := uploadedFile(t, "file", "note.txt", "hello")

	dir := t.TempDir()
	path, cleanup, err := SaveUpload(dir, file, header)
	if err != nil {
		t.Fatalf("SaveUpload failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Temp file not readable: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("Unexpected temp file content: %q", data)
	}

	cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Temp file should be removed after cleanup, stat err: %v", err)
	}
}

func TestCleanupIsIdempotent(t *testing.T) {
	file, header := uploadedFile(t, "file", "note.txt", "hello")

	path, cleanup, err := SaveUpload(t.TempDir(), file, header)
	if err != nil {
		t.Fatalf("SaveUpload failed: %v", err)
	}

	// Remove the file out of band, then make sure cleanup tolerates it
	if err := os.Remove(path); err != nil {
		t.Fatalf("Failed to remove temp file: %v", err)
	}

	cleanup()
	cleanup()
}

func TestSaveUploadKeepsExtension(t *testing.T) {
	file, header := uploadedFile(t, "file", "chat-export.zip", "PK")

	path, cleanup, err := SaveUpload(t.TempDir(), file, header)
	if err != nil {
		t.Fatalf("SaveUpload failed: %v", err)
	}
	defer cleanup()

	if got := path[len(path)-4:]; got != ".zip" {
		t.Errorf("Expected stored file to keep .zip extension, got %s", path)
	}
}
