package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/digitruns/internal/app"
	"github.com/hyperifyio/digitruns/internal/logging"
)

func main() {
	cfg, showVersion, err := loadConfig(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if showVersion {
		fmt.Println(app.VersionString())
		os.Exit(0)
	}

	closer := logging.Setup(logging.Options{Verbose: cfg.Verbose, Level: cfg.LogLevel, File: cfg.LogFile})
	defer closer.Close()

	if err != nil {
		log.Error().Err(err).Msg("configuration failed")
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Exit code policy: 2 for configuration problems, 1 for everything else.
		if errors.Is(err, app.ErrInvalidConfig) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// loadConfig resolves configuration with precedence flags > env > config
// file > defaults. Dotenv files are loaded before env is consulted.
func loadConfig(args []string, stderr io.Writer) (app.Config, bool, error) {
	fs := flag.NewFlagSet("digitruns", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		flagCfg     app.Config
		configPath  string
		envFiles    string
		showVersion bool
	)
	fs.StringVar(&flagCfg.InputPath, "input", "-", "Path to the text to scan; - reads stdin")
	fs.StringVar(&flagCfg.OutputPath, "output", "", "Path to write the report; empty writes to stdout")
	fs.StringVar(&flagCfg.InputFormat, "in.format", "", "Input format: text or html (default: by file extension)")
	fs.StringVar(&flagCfg.OutputFormat, "out.format", "lines", "Report format: lines, json, yaml, markdown or pdf")
	fs.BoolVar(&flagCfg.FoldWidth, "fold.width", false, "Treat full-width digits as ASCII digits")
	fs.StringVar(&flagCfg.Language, "lang", "", "BCP 47 language for counts in markdown/pdf reports, e.g. 'en' or 'fi'")
	fs.BoolVar(&flagCfg.Interactive, "interactive", false, "Read lines from the terminal and print their numbers")
	fs.BoolVar(&flagCfg.WriteManifest, "manifest", false, "Write <output>.manifest.json next to the report")
	fs.BoolVar(&flagCfg.Verbose, "v", false, "Verbose logging")
	fs.StringVar(&flagCfg.LogFile, "log.file", "", "Also write JSON logs to this file (rotated)")
	fs.StringVar(&flagCfg.LogLevel, "log.level", "", "Log level override: trace, debug, info, warn, error")
	fs.StringVar(&flagCfg.CacheDir, "cache.dir", "", "Result cache directory; empty disables caching")
	fs.DurationVar(&flagCfg.CacheMaxAge, "cache.maxAge", 0, "Max age for cache entries before purge (e.g. 24h); 0 disables")
	fs.BoolVar(&flagCfg.CacheClear, "cache.clear", false, "Clear cache directory before run")
	fs.BoolVar(&flagCfg.CacheStrictPerms, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
	fs.StringVar(&configPath, "config", os.Getenv("DIGITRUNS_CONFIG"), "Path to YAML or JSON config file")
	fs.StringVar(&envFiles, "env", ".env", "Comma-separated dotenv files; missing files are ignored")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return app.Config{}, false, err
	}
	if showVersion {
		return app.Config{}, true, nil
	}

	if err := app.LoadEnvFiles(splitList(envFiles)...); err != nil {
		return app.Config{}, false, fmt.Errorf("%w: load env: %v", app.ErrInvalidConfig, err)
	}

	var cfg app.Config
	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			return app.Config{}, false, fmt.Errorf("%w: %v", app.ErrInvalidConfig, err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvOverrides(&cfg)

	// Only flags given on the command line beat env and file; the rest act
	// as defaults for fields still unset.
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	pick := func(name string, dst *string, v string) {
		if set[name] || *dst == "" {
			*dst = v
		}
	}
	pickBool := func(name string, dst *bool, v bool) {
		if set[name] {
			*dst = v
		}
	}
	pick("input", &cfg.InputPath, flagCfg.InputPath)
	pick("output", &cfg.OutputPath, flagCfg.OutputPath)
	pick("in.format", &cfg.InputFormat, flagCfg.InputFormat)
	pick("out.format", &cfg.OutputFormat, flagCfg.OutputFormat)
	pick("lang", &cfg.Language, flagCfg.Language)
	pick("log.file", &cfg.LogFile, flagCfg.LogFile)
	pick("log.level", &cfg.LogLevel, flagCfg.LogLevel)
	pick("cache.dir", &cfg.CacheDir, flagCfg.CacheDir)
	pickBool("fold.width", &cfg.FoldWidth, flagCfg.FoldWidth)
	pickBool("interactive", &cfg.Interactive, flagCfg.Interactive)
	pickBool("manifest", &cfg.WriteManifest, flagCfg.WriteManifest)
	pickBool("v", &cfg.Verbose, flagCfg.Verbose)
	pickBool("cache.clear", &cfg.CacheClear, flagCfg.CacheClear)
	pickBool("cache.strictPerms", &cfg.CacheStrictPerms, flagCfg.CacheStrictPerms)
	if set["cache.maxAge"] || cfg.CacheMaxAge == 0 {
		cfg.CacheMaxAge = flagCfg.CacheMaxAge
	}
	return cfg, false, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			list = append(list, v)
		}
	}
	return list
}

func run(ctx context.Context, cfg app.Config) error {
	start := time.Now()
	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		return err
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("done")
	return nil
}
