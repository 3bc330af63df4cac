package extract

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"time"

	"github.com/proptrail/crmgo/internal/config"
)

// OCREngine recognizes text in a raster image. An empty result is a valid,
// non-error outcome for images without recognizable text.
type OCREngine interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// Runner lets us stub the external OCR command in tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	if err != nil {
		log.Printf("❌ exec %s %s failed after %v: %v", name, strings.Join(args, " "), time.Since(start), err)
	}

	return out.Bytes(), errb.Bytes(), err
}

// TesseractEngine runs the tesseract binary once per invocation. Each call
// owns a fresh process, so concurrent requests never share engine state.
type TesseractEngine struct {
	cfg    config.OCRConfig
	runner Runner
}

// NewTesseractEngine creates a TesseractEngine from configuration.
func NewTesseractEngine(cfg config.OCRConfig) *TesseractEngine {
	if cfg.Binary == "" {
		cfg.Binary = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	return &TesseractEngine{cfg: cfg, runner: execRunner{}}
}

// Recognize runs `tesseract <image> stdout -l <lang>` and returns the
// recognized text. Engine startup or runtime failures wrap ErrExtractionFailed.
func (e *TesseractEngine) Recognize(ctx context.Context, imagePath string) (string, error) {
	out, errb, err := e.runner.Run(ctx, e.cfg.Binary, imagePath, "stdout", "-l", e.cfg.Language)
	if err != nil {
		return "", fmt.Errorf("%w: tesseract: %v (stderr: %s)", ErrExtractionFailed, err, truncate(string(errb), 8<<10))
	}

	return strings.TrimSpace(string(out)), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
