package extract

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"
)

// ZipEntry is the per-file breakdown of one qualifying archive member.
type ZipEntry struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	Type     string `json:"type"` // "TEXT" or "CSV"
}

// ZipResult holds the consolidated archive text and its per-file breakdown,
// both in archive-enumeration order.
type ZipResult struct {
	Content    string
	ParsedData []ZipEntry
}

// maxArchiveBytes caps the total decompressed size of qualifying entries.
// The upload cap bounds the compressed archive only; a zip bomb within it
// could otherwise expand to gigabytes in memory.
var maxArchiveBytes int64 = 256 << 20

// ExtractZip opens a ZIP container and consolidates the text of its .txt and
// .csv members. Directory entries, __MACOSX metadata and hidden (dot-prefixed)
// files are skipped. An archive with no qualifying members yields an empty
// consolidated string and a zero-length breakdown, not an error.
func ExtractZip(filePath string) (*ZipResult, error) {
	r, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: open archive: %v", ErrExtractionFailed, err)
	}
	defer r.Close()

	var total int64
	entries := []ZipEntry{}
	for _, f := range r.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(f.Name, "__MACOSX") || strings.HasPrefix(path.Base(f.Name), ".") {
			continue
		}

		lowerName := strings.ToLower(f.Name)
		if !strings.HasSuffix(lowerName, ".txt") && !strings.HasSuffix(lowerName, ".csv") {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: read archive entry %s: %v", ErrExtractionFailed, f.Name, err)
		}
		remaining := maxArchiveBytes - total
		data, err := io.ReadAll(io.LimitReader(rc, remaining+1))
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: read archive entry %s: %v", ErrExtractionFailed, f.Name, err)
		}
		if int64(len(data)) > remaining {
			return nil, fmt.Errorf("%w: archive entry %s expands past the %d byte budget", ErrExtractionFailed, f.Name, maxArchiveBytes)
		}
		total += int64(len(data))

		entryType := "TEXT"
		if strings.HasSuffix(lowerName, ".csv") {
			entryType = "CSV"
		}

		entries = append(entries, ZipEntry{
			Filename: f.Name,
			Content:  string(data),
			Type:     entryType,
		})
	}

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("--- File: %s ---\n%s", e.Filename, e.Content))
	}

	return &ZipResult{
		Content:    strings.Join(parts, "\n\n"),
		ParsedData: entries,
	}, nil
}
