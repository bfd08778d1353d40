// Package docsource extracts plain text from the document formats the
// summarizer accepts.
package docsource

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html"

	"github.com/cognicore/lakhas/pkg/lakhas/internalerr"
)

// Format is a supported input format
type Format int

const (
	Text Format = iota
	HTML
	PDF
)

func (f Format) String() string {
	switch f {
	case HTML:
		return "html"
	case PDF:
		return "pdf"
	default:
		return "text"
	}
}

// FormatOf picks the format from the file extension. Unknown extensions
// are read as plain text; office and e-book formats are rejected.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return HTML, nil
	case ".pdf":
		return PDF, nil
	case ".doc", ".docx", ".odt", ".rtf", ".epub":
		return Text, fmt.Errorf("%w: %s", internalerr.ErrUnsupportedFormat, filepath.Ext(path))
	default:
		return Text, nil
	}
}

// FromFilePath reads the document at path as text
func FromFilePath(path string) (string, error) {
	format, err := FormatOf(path)
	if err != nil {
		return "", err
	}

	if format == PDF {
		f, r, err := pdf.Open(path)
		if err != nil {
			return "", fmt.Errorf("open pdf: %w", err)
		}
		defer f.Close()
		return pdfText(r)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return FromReader(f, format)
}

// FromReader reads a document of the given format as text
func FromReader(r io.Reader, format Format) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	switch format {
	case HTML:
		return htmlText(data)
	case PDF:
		pr, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return "", fmt.Errorf("read pdf: %w", err)
		}
		return pdfText(pr)
	default:
		return string(data), nil
	}
}

func pdfText(r *pdf.Reader) (string, error) {
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	data, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// skipped elements carry no readable text
var skipped = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// blocks end a line so adjacent paragraphs do not run together
var blocks = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "section": true, "article": true,
	"title": true,
}

func htmlText(data []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.ElementNode && skipped[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
		if n.Type == html.ElementNode && blocks[n.Data] {
			buf.WriteString("\n")
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String()), nil
}
