// Package pdf decodes PDF files using pdfcpu.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/archivus-ai/archivus/internal/core/domain"
	"github.com/archivus-ai/archivus/internal/core/ports/driven"
)

// Ensure Decoder implements the interface.
var _ driven.Decoder = (*Decoder)(nil)

// pageFileRe matches pdfcpu's extracted page files. The extractor
// prefixes the input file's base name, so the pattern must not anchor
// at the start: input.pdf yields input_Content_page_<n>.txt.
var pageFileRe = regexp.MustCompile(`Content_page_(\d+)`)

// Decoder extracts text from PDF documents. pdfcpu works on files,
// so each decode round-trips through a temp directory.
type Decoder struct {
	tempDir string
}

// New creates a new PDF decoder.
func New() *Decoder {
	return &Decoder{tempDir: os.TempDir()}
}

// Extensions returns the file extensions this decoder handles.
func (d *Decoder) Extensions() []string {
	return []string{".pdf"}
}

// Decode extracts the text content of every page in page order.
// A PDF whose pages carry no text (a scanned, image-only document)
// yields domain.ErrNoTextExtracted.
func (d *Decoder) Decode(content []byte) (string, error) {
	workDir, err := os.MkdirTemp(d.tempDir, "archivus-pdf-*")
	if err != nil {
		return "", fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	tempFile := filepath.Join(workDir, "input.pdf")
	if err := os.WriteFile(tempFile, content, 0600); err != nil {
		return "", fmt.Errorf("writing temp PDF: %w", err)
	}

	pdfCtx, err := api.ReadContextFile(tempFile)
	if err != nil {
		return "", fmt.Errorf("reading PDF: %w", err)
	}
	pageCount := pdfCtx.PageCount

	outDir := filepath.Join(workDir, "pages")
	if err := os.MkdirAll(outDir, 0700); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractContentFile(tempFile, outDir, nil, conf); err != nil {
		return "", fmt.Errorf("extracting PDF content: %w", err)
	}

	// Read the extracted page files back in page order.
	pageTexts := make(map[int]string)
	files, err := os.ReadDir(outDir)
	if err != nil {
		return "", fmt.Errorf("reading output directory: %w", err)
	}
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		m := pageFileRe.FindStringSubmatch(file.Name())
		if m == nil {
			continue
		}
		pageNum, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		data, err := os.ReadFile(filepath.Join(outDir, file.Name()))
		if err != nil {
			continue
		}
		pageTexts[pageNum] = string(data)
	}

	var b strings.Builder
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		text := strings.TrimSpace(pageTexts[pageNum])
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(text)
	}

	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("%w: PDF pages appear to be images only", domain.ErrNoTextExtracted)
	}

	return b.String(), nil
}
