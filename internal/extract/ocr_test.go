package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/proptrail/crmgo/internal/config"
)

type stubRunner struct {
	stdout []byte
	stderr []byte
	err    error

	gotName string
	gotArgs []string
}

func (s *stubRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.gotName = name
	s.gotArgs = args
	return s.stdout, s.stderr, s.err
}

func TestTesseractRecognize(t *testing.T) {
	runner := &stubRunner{stdout: []byte("42 Wallaby Way\nSydney\n")}
	engine := &TesseractEngine{
		cfg:    config.OCRConfig{Binary: "tesseract", Language: "eng"},
		runner: runner,
	}

	text, err := engine.Recognize(context.Background(), "/tmp/photo.jpg")
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if text != "42 Wallaby Way\nSydney" {
		t.Errorf("Unexpected text: %q", text)
	}

	if runner.gotName != "tesseract" {
		t.Errorf("Expected tesseract binary, got %s", runner.gotName)
	}
	wantArgs := []string{"/tmp/photo.jpg", "stdout", "-l", "eng"}
	if len(runner.gotArgs) != len(wantArgs) {
		t.Fatalf("Unexpected args: %v", runner.gotArgs)
	}
	for i, a := range wantArgs {
		if runner.gotArgs[i] != a {
			t.Errorf("Arg %d: expected %q, got %q", i, a, runner.gotArgs[i])
		}
	}
}

func TestTesseractRecognizeEmptyText(t *testing.T) {
	// An image without recognizable text is a valid, non-error outcome
	engine := &TesseractEngine{
		cfg:    config.OCRConfig{Binary: "tesseract", Language: "eng"},
		runner: &stubRunner{stdout: []byte("  \n")},
	}

	text, err := engine.Recognize(context.Background(), "/tmp/blank.png")
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if text != "" {
		t.Errorf("Expected empty text, got %q", text)
	}
}

func TestTesseractRecognizeEngineFailure(t *testing.T) {
	engine := &TesseractEngine{
		cfg:    config.OCRConfig{Binary: "tesseract", Language: "eng"},
		runner: &stubRunner{stderr: []byte("Error opening data file"), err: errors.New("exit status 1")},
	}

	_, err := engine.Recognize(context.Background(), "/tmp/photo.jpg")
	if err == nil {
		t.Fatal("Expected error when engine fails")
	}
	if !errors.Is(err, ErrExtractionFailed) {
		t.Errorf("Expected ErrExtractionFailed, got %v", err)
	}
}

func TestNewTesseractEngineDefaults(t *testing.T) {
	engine := NewTesseractEngine(config.OCRConfig{})
	if engine.cfg.Binary != "tesseract" {
		t.Errorf("Expected default binary tesseract, got %s", engine.cfg.Binary)
	}
	if engine.cfg.Language != "eng" {
		t.Errorf("Expected default language eng, got %s", engine.cfg.Language)
	}
}
