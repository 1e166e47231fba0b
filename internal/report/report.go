// Package report renders extraction results for people and machines.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/digitruns/internal/numbers"
)

// Format names an output rendering.
type Format string

const (
	FormatLines    Format = "lines"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
)

// ErrUnknownFormat is returned for unsupported output formats.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates an output format name. Empty means lines.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatLines, nil
	case "md":
		return FormatMarkdown, nil
	case "yml":
		return FormatYAML, nil
	case FormatLines, FormatJSON, FormatYAML, FormatMarkdown, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Result is everything a report shows about one extraction.
type Result struct {
	RunID       string           `json:"run_id"`
	Input       string           `json:"input"`
	Format      string           `json:"input_format"`
	SHA256      string           `json:"sha256"`
	Stats       numbers.Stats    `json:"stats"`
	Cached      bool             `json:"cached"`
	Numbers     []numbers.Number `json:"numbers"`
	GeneratedAt time.Time        `json:"generated_at"`
	Version     string           `json:"version"`
}

// NewRunID returns a fresh identifier for a Result.
func NewRunID() string { return uuid.NewString() }

// Options tweak human-oriented renderings.
type Options struct {
	// Language is a BCP 47 tag used for counts in Markdown and PDF.
	Language string
}

func (o Options) printer() *message.Printer {
	tag := language.English
	if s := strings.TrimSpace(o.Language); s != "" {
		if t, err := language.Parse(s); err == nil {
			tag = t
		}
	}
	return message.NewPrinter(tag)
}

// Write renders r to w. PDF needs a file; use WritePDF.
func Write(w io.Writer, f Format, r Result, o Options) error {
	switch f {
	case FormatLines, "":
		return writeLines(w, r)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		return writeYAML(w, r)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(r, o))
		return err
	case FormatPDF:
		return errors.New("pdf output requires a file path")
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

func writeLines(w io.Writer, r Result) error {
	var b strings.Builder
	for _, n := range r.Numbers {
		b.WriteString(n.String())
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// writeYAML builds the document by hand so numbers of any size are emitted
// as untagged plain scalars. Marshalling Number directly would quote them.
func writeYAML(w io.Writer, r Result) error {
	nums := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, n := range r.Numbers {
		nums.Content = append(nums.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: n.String()})
	}
	doc := &yaml.Node{Kind: yaml.MappingNode}
	add := func(k string, v *yaml.Node) {
		doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: k}, v)
	}
	str := func(s string) *yaml.Node { return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s} }
	var stats yaml.Node
	if err := stats.Encode(r.Stats); err != nil {
		return err
	}
	add("run_id", str(r.RunID))
	add("input", str(r.Input))
	add("input_format", str(r.Format))
	add("sha256", str(r.SHA256))
	add("stats", &stats)
	add("cached", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprint(r.Cached)})
	add("numbers", nums)
	add("generated_at", str(r.GeneratedAt.UTC().Format(time.RFC3339)))
	add("version", str(r.Version))

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// Markdown renders a short human report.
func Markdown(r Result, o Options) string {
	p := o.printer()
	var b strings.Builder
	b.WriteString("# Numbers in ")
	b.WriteString(displayInput(r.Input))
	b.WriteString("\n\n")
	b.WriteString(p.Sprintf("- Distinct numbers: %d\n", r.Stats.Distinct))
	b.WriteString(p.Sprintf("- Digit runs: %d\n", r.Stats.Runs))
	b.WriteString(p.Sprintf("- Bytes scanned: %d\n", r.Stats.Bytes))
	if r.Cached {
		b.WriteString("- Served from cache\n")
	}
	b.WriteString("\n")
	if len(r.Numbers) == 0 {
		b.WriteString("_No digit runs found._\n")
	} else {
		for i, n := range r.Numbers {
			b.WriteString(p.Sprintf("%d. ", i+1))
			b.WriteString("`")
			b.WriteString(n.String())
			b.WriteString("`\n")
		}
	}
	b.WriteString("\n---\n")
	b.WriteString("Run ")
	b.WriteString(r.RunID)
	b.WriteString(" · sha256 ")
	b.WriteString(r.SHA256)
	b.WriteString(" · digitruns ")
	b.WriteString(r.Version)
	b.WriteString("\n")
	return b.String()
}

func displayInput(in string) string {
	if in == "" || in == "-" {
		return "stdin"
	}
	return in
}
