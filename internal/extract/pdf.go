package extract

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// PDFResult holds the full plain text of a document and the metadata its
// info dictionary surfaces.
type PDFResult struct {
	Text  string
	Pages int
	Info  map[string]string
}

// infoKeys are the string-valued entries read from the PDF Info dictionary.
var infoKeys = []string{"Title", "Author", "Subject", "Keywords", "Creator", "Producer"}

// ExtractPDF extracts the plain text and document metadata from a PDF file.
func ExtractPDF(filePath string) (*PDFResult, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: open pdf: %v", ErrExtractionFailed, err)
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("%w: extract pdf text: %v", ErrExtractionFailed, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return nil, fmt.Errorf("%w: read pdf text: %v", ErrExtractionFailed, err)
	}

	info := map[string]string{}
	infoDict := r.Trailer().Key("Info")
	if !infoDict.IsNull() {
		for _, key := range infoKeys {
			if v := infoDict.Key(key); v.Kind() == pdf.String {
				info[key] = v.Text()
			}
		}
	}

	return &PDFResult{
		Text:  buf.String(),
		Pages: r.NumPage(),
		Info:  info,
	}, nil
}
