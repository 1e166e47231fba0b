package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestLevel(t *testing.T) {
	cases := []struct {
		o    Options
		want zerolog.Level
	}{
		{Options{}, zerolog.InfoLevel},
		{Options{Verbose: true}, zerolog.DebugLevel},
		{Options{Verbose: true, Level: "warn"}, zerolog.WarnLevel},
		{Options{Level: "bogus"}, zerolog.InfoLevel},
	}
	for _, c := range cases {
		if got := level(c.o); got != c.want {
			t.Fatalf("level(%+v) = %v, want %v", c.o, got, c.want)
		}
	}
}

func TestSetup_FileSink(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)
	path := filepath.Join(t.TempDir(), "digitruns.log")
	var console bytes.Buffer
	closer := Setup(Options{File: path, Console: &console})
	log.Info().Int("distinct", 3).Msg("extracted")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(b), `"distinct":3`) {
		t.Fatalf("expected JSON line in log file, got %q", b)
	}
	if !strings.Contains(console.String(), "extracted") {
		t.Fatalf("expected console output, got %q", console.String())
	}
}
