// Package document converts uploaded resume documents into plain text.
// Only PDF is accepted.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxUploadSize is the largest document accepted for extraction
const MaxUploadSize = 10 << 20

// ErrEmptyDocument is returned when a readable document yields no text
var ErrEmptyDocument = errors.New("document contains no extractable text")

// UnsupportedDocumentError is returned for input that is not a PDF
type UnsupportedDocumentError struct {
	Name string
}

func (e *UnsupportedDocumentError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unsupported document %q: only PDF files are accepted", e.Name)
	}
	return "unsupported document: only PDF files are accepted"
}

// ExtractionError represents a corrupt or unreadable document
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// IsPDF reports whether data starts with the PDF header
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(data[:min(len(data), 1024)], "\x00\t\r\n "), []byte("%PDF-"))
}

// pageSource is the subset of a PDF reader used for extraction
type pageSource interface {
	NumPage() int
	// PageText returns the plain text of page i (1-based); ok is false for null pages
	PageText(i int) (text string, ok bool, err error)
}

type pdfSource struct {
	r *pdf.Reader
}

func (s pdfSource) NumPage() int { return s.r.NumPage() }

func (s pdfSource) PageText(i int) (string, bool, error) {
	page := s.r.Page(i)
	if page.V.IsNull() {
		return "", false, nil
	}
	text, err := page.GetPlainText(nil)
	return text, true, err
}

func openPDF(data []byte) (pageSource, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return pdfSource{r: r}, nil
}

// PDFExtractor extracts text from PDF documents
type PDFExtractor struct {
	open func(data []byte) (pageSource, error)
}

// NewPDFExtractor creates an extractor backed by ledongthuc/pdf
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{open: openPDF}
}

// Extract returns the document text with a newline after each page.
// name is only used in error messages.
func (e *PDFExtractor) Extract(data []byte, name string) (text string, err error) {
	if !IsPDF(data) {
		return "", &UnsupportedDocumentError{Name: name}
	}
	if len(data) > MaxUploadSize {
		return "", &ExtractionError{Message: fmt.Sprintf("document exceeds %d bytes", MaxUploadSize)}
	}

	// The PDF reader panics on some malformed object streams.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Message: "malformed PDF", Cause: fmt.Errorf("%v", r)}
		}
	}()

	src, err := e.open(data)
	if err != nil {
		return "", &ExtractionError{Message: "failed to read PDF", Cause: err}
	}

	var sb strings.Builder
	for i := 1; i <= src.NumPage(); i++ {
		pageText, ok, err := src.PageText(i)
		if err != nil {
			return "", &ExtractionError{Message: fmt.Sprintf("failed to read page %d", i), Cause: err}
		}
		if !ok {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyDocument
	}
	return sb.String(), nil
}
