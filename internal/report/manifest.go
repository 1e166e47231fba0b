package report

import (
	"encoding/json"
	"os"
	"time"
)

// manifest is the machine-readable sidecar written next to a report. It
// records provenance only, not the numbers themselves.
type manifest struct {
	RunID       string `json:"run_id"`
	Input       string `json:"input"`
	InputFormat string `json:"input_format"`
	SHA256      string `json:"sha256"`
	Bytes       int64  `json:"bytes"`
	Runs        int    `json:"runs"`
	Distinct    int    `json:"distinct"`
	Cached      bool   `json:"cached"`
	GeneratedAt string `json:"generated_at"`
	Version     string `json:"version"`
}

// ManifestPath returns the sidecar path for a report written to outputPath.
func ManifestPath(outputPath string) string {
	return outputPath + ".manifest.json"
}

// WriteManifest writes the sidecar for r.
func WriteManifest(path string, r Result) error {
	m := manifest{
		RunID:       r.RunID,
		Input:       displayInput(r.Input),
		InputFormat: r.Format,
		SHA256:      r.SHA256,
		Bytes:       r.Stats.Bytes,
		Runs:        r.Stats.Runs,
		Distinct:    r.Stats.Distinct,
		Cached:      r.Cached,
		GeneratedAt: r.GeneratedAt.UTC().Format(time.RFC3339),
		Version:     r.Version,
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
