// Package numbers finds the distinct non-negative integers written as runs of
// ASCII decimal digits inside arbitrary text. Every byte that is not '0'-'9'
// separates runs. Results are deduplicated by value and returned ascending.
package numbers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/transform"
	"golang.org/x/text/width"
)

// ErrOverflow is matched by OverflowError via errors.Is.
var ErrOverflow = errors.New("digit run overflows uint64")

// OverflowError reports a run too large for a fixed-width result.
type OverflowError struct {
	Offset int64 // byte offset of the run's first digit
	Length int   // digits in the run, leading zeros included
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("digit run at offset %d (%d digits) overflows uint64", e.Offset, e.Length)
}

func (e *OverflowError) Is(target error) bool { return target == ErrOverflow }

var maxUint64Digits = strconv.FormatUint(math.MaxUint64, 10)

func checkUint64(start int64, length int, digits string) error {
	if len(digits) > len(maxUint64Digits) ||
		(len(digits) == len(maxUint64Digits) && strings.Compare(digits, maxUint64Digits) > 0) {
		return &OverflowError{Offset: start, Length: length}
	}
	return nil
}

// Options tune how input is prepared before scanning.
type Options struct {
	// FoldWidth maps full-width digits (U+FF10..U+FF19) and other
	// full-width forms to their narrow equivalents before scanning.
	FoldWidth bool
}

// Reader wraps r with the transformations selected by o.
func (o Options) Reader(r io.Reader) io.Reader {
	if o.FoldWidth {
		return transform.NewReader(r, width.Fold)
	}
	return r
}

// Extract returns the distinct values of all maximal digit runs in text in
// ascending order. It never fails.
func Extract(text string) []Number {
	var a Accumulator
	_, _ = a.WriteString(text)
	_ = a.Close()
	return a.Numbers()
}

// ExtractBytes is Extract for a byte slice.
func ExtractBytes(b []byte) []Number {
	var a Accumulator
	_, _ = a.Write(b)
	_ = a.Close()
	return a.Numbers()
}

// ExtractWith applies o to text before extracting.
func ExtractWith(text string, o Options) []Number {
	if !o.FoldWidth {
		return Extract(text)
	}
	folded, _, err := transform.String(width.Fold, text)
	if err != nil {
		// width.Fold does not fail on valid or invalid UTF-8; keep the raw text
		folded = text
	}
	return Extract(folded)
}

// ExtractReader streams r through an Accumulator so the input never has to
// be held in memory. ctx is checked between reads.
func ExtractReader(ctx context.Context, r io.Reader, o Options) ([]Number, Stats, error) {
	a := NewAccumulator()
	if _, err := io.Copy(a, ctxReader{ctx: ctx, r: o.Reader(r)}); err != nil {
		return nil, a.Stats(), fmt.Errorf("scan input: %w", err)
	}
	_ = a.Close()
	return a.Numbers(), a.Stats(), nil
}

// ExtractUint64 is the fixed-width variant of Extract. It fails with an
// *OverflowError for the first run whose value exceeds math.MaxUint64.
func ExtractUint64(text string) ([]uint64, error) {
	a := &Accumulator{check: checkUint64}
	if _, err := a.WriteString(text); err != nil {
		return nil, err
	}
	if err := a.Close(); err != nil {
		return nil, err
	}
	ns := a.Numbers()
	out := make([]uint64, len(ns))
	for i, n := range ns {
		// checked above
		out[i], _ = n.Uint64()
	}
	return out, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
