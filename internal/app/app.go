package app

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/digitruns/internal/cache"
	"github.com/hyperifyio/digitruns/internal/numbers"
	"github.com/hyperifyio/digitruns/internal/report"
	"github.com/hyperifyio/digitruns/internal/source"
)

type App struct {
	cfg     Config
	results *cache.ResultCache
	stdin   io.Reader
	stdout  io.Writer
}

func New(_ context.Context, cfg Config) (*App, error) {
	cfg.Defaults()
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, stdin: os.Stdin, stdout: os.Stdout}
	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			if err := cache.ClearDir(cfg.CacheDir); err != nil {
				log.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache clear failed")
			}
		}
		if cfg.CacheMaxAge > 0 {
			// best effort; a broken cache must not block extraction
			if n, err := cache.PurgeByAge(cfg.CacheDir, cfg.CacheMaxAge); err != nil {
				log.Warn().Err(err).Msg("cache purge failed")
			} else if n > 0 {
				log.Debug().Int("removed", n).Msg("purged expired cache entries")
			}
		}
		a.results = &cache.ResultCache{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
	}
	return a, nil
}

func (a *App) Close() {
	// nothing yet
}

func (a *App) Run(ctx context.Context) error {
	if a.cfg.Interactive {
		return a.Interactive(ctx)
	}

	res, err := a.extractInput(ctx)
	if err != nil {
		return err
	}
	log.Info().
		Str("input", res.Input).
		Int64("bytes", res.Stats.Bytes).
		Int("runs", res.Stats.Runs).
		Int("distinct", res.Stats.Distinct).
		Bool("cached", res.Cached).
		Msg("extracted numbers")

	if err := a.writeReport(res); err != nil {
		return err
	}
	if a.cfg.WriteManifest {
		path := report.ManifestPath(a.cfg.OutputPath)
		if err := report.WriteManifest(path, res); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
		log.Debug().Str("path", path).Msg("wrote manifest")
	}
	return nil
}

func (a *App) options() numbers.Options {
	return numbers.Options{FoldWidth: a.cfg.FoldWidth}
}

func (a *App) inputFormat() source.Format {
	if a.cfg.InputFormat != "" {
		f, _ := source.ParseFormat(a.cfg.InputFormat)
		return f
	}
	return source.Detect(a.cfg.InputPath)
}

func (a *App) openInput() (io.ReadCloser, error) {
	if a.cfg.InputPath == "-" {
		return io.NopCloser(a.stdin), nil
	}
	f, err := os.Open(a.cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

// extractInput streams plain text straight through the scanner. Formats
// that need the whole document, and cached runs, read the input fully.
func (a *App) extractInput(ctx context.Context) (report.Result, error) {
	format := a.inputFormat()
	res := report.Result{
		RunID:       report.NewRunID(),
		Input:       a.cfg.InputPath,
		Format:      string(format),
		GeneratedAt: time.Now().UTC(),
		Version:     BuildVersion,
	}
	in, err := a.openInput()
	if err != nil {
		return res, err
	}
	defer in.Close()

	h := sha256.New()
	if format == source.FormatText && a.results == nil {
		ns, stats, err := numbers.ExtractReader(ctx, io.TeeReader(in, h), a.options())
		if err != nil {
			return res, err
		}
		res.Numbers, res.Stats = ns, stats
		res.SHA256 = hex.EncodeToString(h.Sum(nil))
		return res, nil
	}

	raw, err := io.ReadAll(in)
	if err != nil {
		return res, fmt.Errorf("read input: %w", err)
	}
	h.Write(raw)
	res.SHA256 = hex.EncodeToString(h.Sum(nil))

	var key string
	if a.results != nil {
		key = cache.Key(raw, a.fingerprint(format))
		if e, err := a.results.Load(ctx, key); err == nil {
			log.Debug().Str("key", key).Msg("cache hit")
			res.Numbers, res.Stats, res.Cached = e.Numbers, e.Stats, true
			return res, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Msg("cache read failed")
		}
	}

	conv, err := source.For(format)
	if err != nil {
		return res, err
	}
	text, err := conv.Convert(raw)
	if err != nil {
		return res, fmt.Errorf("convert %s input: %w", format, err)
	}
	ns, stats, err := numbers.ExtractReader(ctx, bytes.NewReader(text), a.options())
	if err != nil {
		return res, err
	}
	res.Numbers, res.Stats = ns, stats

	if a.results != nil {
		if err := a.results.Save(ctx, key, cache.Entry{Numbers: ns, Stats: stats}); err != nil {
			log.Warn().Err(err).Msg("cache write failed")
		}
	}
	return res, nil
}

// fingerprint names every option that changes the extracted set.
func (a *App) fingerprint(f source.Format) string {
	return fmt.Sprintf("v1|format=%s|fold=%t", f, a.cfg.FoldWidth)
}

func (a *App) writeReport(res report.Result) error {
	format, err := report.ParseFormat(a.cfg.OutputFormat)
	if err != nil {
		return err
	}
	opts := report.Options{Language: a.cfg.Language}
	if format == report.FormatPDF {
		if err := report.WritePDF(a.cfg.OutputPath, res, opts); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		log.Info().Str("out", a.cfg.OutputPath).Msg("wrote pdf report")
		return nil
	}
	if strings.TrimSpace(a.cfg.OutputPath) == "" {
		return report.Write(a.stdout, format, res, opts)
	}
	f, err := os.Create(a.cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := report.Write(f, format, res, opts); err != nil {
		f.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info().Str("out", a.cfg.OutputPath).Msg("wrote report")
	return nil
}
