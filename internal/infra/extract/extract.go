package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Extractor turns an uploaded document into plain text. Text-like files pass
// through; PDFs shell out to pdftotext. Anything else is an extraction
// failure, which the batch records per-document without aborting.
type Extractor struct{}

func New() *Extractor { return &Extractor{} }

func (e *Extractor) Text(ctx context.Context, name string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case "", ".txt", ".text", ".md":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("file %q is not valid UTF-8 text", name)
		}
		return string(data), nil
	case ".pdf":
		return e.pdfText(ctx, data)
	default:
		return "", fmt.Errorf("unsupported file type %q", filepath.Ext(name))
	}
}

func (e *Extractor) pdfText(ctx context.Context, data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "grmc-extract-*.pdf")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	// "-" sends the extracted text to stdout.
	cmd := exec.CommandContext(ctx, "pdftotext", tmp.Name(), "-")
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("pdftotext failed: exit=%d stderr=%s", ee.ExitCode(), strings.TrimSpace(string(ee.Stderr)))
		}
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}
	return string(out), nil
}
