// Package source turns raw input of a known format into the plain text that
// is scanned for digit runs.
package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format names an input encoding.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// ErrUnknownFormat is returned for format names with no converter.
var ErrUnknownFormat = errors.New("unknown input format")

// Converter turns raw input into scannable text. Implementations must be
// deterministic and must not merge characters that were separated in the
// original document.
type Converter interface {
	Convert(input []byte) ([]byte, error)
}

// Text passes input through unchanged.
type Text struct{}

func (Text) Convert(input []byte) ([]byte, error) { return input, nil }

// ParseFormat validates a user supplied format name. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Detect picks a format from a file extension.
func Detect(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return FormatHTML
	}
	return FormatText
}

// For returns the converter for f.
func For(f Format) (Converter, error) {
	switch f {
	case "", FormatText:
		return Text{}, nil
	case FormatHTML:
		return HTML{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}
