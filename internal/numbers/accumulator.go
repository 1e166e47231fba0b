package numbers

// Stats summarizes one scan.
type Stats struct {
	Bytes    int64 `json:"bytes" yaml:"bytes"`
	Runs     int   `json:"runs" yaml:"runs"`
	Distinct int   `json:"distinct" yaml:"distinct"`
}

// runCheck is consulted for every closed run. start is the byte offset of
// the first digit, length the run length including leading zeros, digits
// the canonical form. A non-nil error stops the scan.
type runCheck func(start int64, length int, digits string) error

// Accumulator scans input incrementally for maximal digit runs. Input can be
// fed in arbitrarily sized pieces; a run split across two writes is joined.
// It implements io.Writer and io.StringWriter.
//
// Only significant digits are buffered, so memory is bounded by the longest
// run value plus the set of distinct values.
type Accumulator struct {
	set   Set
	run   []byte
	inRun bool
	start int64
	pos   int64
	runs  int
	check runCheck
	err   error
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{set: Set{items: make(map[string]struct{})}}
}

func (a *Accumulator) Write(p []byte) (int, error) {
	return scan(a, p)
}

func (a *Accumulator) WriteString(s string) (int, error) {
	return scan(a, s)
}

func scan[T ~string | ~[]byte](a *Accumulator, p T) (int, error) {
	if a.err != nil {
		return 0, a.err
	}
	for i := 0; i < len(p); i++ {
		c := p[i]
		if isDigit(c) {
			if !a.inRun {
				a.inRun = true
				a.start = a.pos + int64(i)
				a.run = a.run[:0]
			}
			// leading zeros are dropped on the fly; canonical restores "0"
			if c != '0' || len(a.run) > 0 {
				a.run = append(a.run, c)
			}
			continue
		}
		if a.inRun {
			if err := a.closeRun(a.pos + int64(i)); err != nil {
				a.pos += int64(i)
				return i, err
			}
		}
	}
	a.pos += int64(len(p))
	return len(p), nil
}

func (a *Accumulator) closeRun(end int64) error {
	a.inRun = false
	a.runs++
	d := "0"
	if len(a.run) > 0 {
		d = string(a.run)
	}
	if a.check != nil {
		if err := a.check(a.start, int(end-a.start), d); err != nil {
			a.err = err
			return err
		}
	}
	a.set.addDigits(d)
	return nil
}

// Close ends the input, closing a run that reaches the last byte.
// Further writes after Close start a fresh run.
func (a *Accumulator) Close() error {
	if a.err != nil {
		return a.err
	}
	if a.inRun {
		return a.closeRun(a.pos)
	}
	return nil
}

// Numbers returns the distinct values seen so far in ascending order.
// A run still open at the end of the input is not included until Close.
func (a *Accumulator) Numbers() []Number {
	return a.set.Sorted()
}

// Runs reports how many digit runs have been closed.
func (a *Accumulator) Runs() int { return a.runs }

// Stats reports scan totals.
func (a *Accumulator) Stats() Stats {
	return Stats{Bytes: a.pos, Runs: a.runs, Distinct: a.set.Len()}
}
