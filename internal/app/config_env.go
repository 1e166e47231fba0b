package app

import (
	"os"
	"strings"
	"time"
)

// ApplyEnvOverrides overrides cfg fields with environment variables that are
// set. Called after the config file so env wins over file, and before flags
// are re-applied so explicit flags win over env.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}
	setString := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := strings.TrimSpace(os.Getenv(k)); v != "" {
				*dst = v
				return
			}
		}
	}
	setString(&cfg.InputPath, "DIGITRUNS_INPUT")
	setString(&cfg.OutputPath, "DIGITRUNS_OUTPUT")
	setString(&cfg.InputFormat, "INPUT_FORMAT")
	setString(&cfg.OutputFormat, "OUTPUT_FORMAT")
	setString(&cfg.Language, "LANGUAGE")
	setString(&cfg.CacheDir, "CACHE_DIR")
	setString(&cfg.LogFile, "LOG_FILE")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	if s := os.Getenv("CACHE_MAX_AGE"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			cfg.CacheMaxAge = d
		}
	}

	// Booleans override when env present and truthy/falsey
	setBool := func(dst *bool, envKey string) {
		switch strings.ToLower(strings.TrimSpace(os.Getenv(envKey))) {
		case "1", "true", "yes", "on":
			*dst = true
		case "0", "false", "no", "off":
			*dst = false
		}
	}
	setBool(&cfg.FoldWidth, "FOLD_WIDTH")
	setBool(&cfg.WriteManifest, "WRITE_MANIFEST")
	setBool(&cfg.Verbose, "VERBOSE")
	setBool(&cfg.CacheClear, "CACHE_CLEAR")
	setBool(&cfg.CacheStrictPerms, "CACHE_STRICT_PERMS")
}
