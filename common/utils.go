package common

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// PipelineConfig holds the configuration for one classification run.
type PipelineConfig struct {
	APIKey        string   // YouTube Data API key, required
	SeedVideoIDs  []string // seed video ids used to resolve channels
	TitleFilter   string   // raw substring filter on video titles, empty = no filtering
	SubtitleLangs []string // preferred caption languages, in order
	OutputDir     string   // directory for the result CSV
	StagingDir    string   // scratch directory for caption files
	YtdlpPath     string   // path to the yt-dlp executable
	Threshold     float64  // keyword-density threshold (matches per minute)
	RunID         string
	Debug         bool
}

// Validate checks the required configuration before any network activity.
func (c *PipelineConfig) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("YouTube API key is not set")
	}
	if len(c.SeedVideoIDs) == 0 {
		return fmt.Errorf("no seed video ids provided")
	}
	return nil
}

// GenerateRunID generates a unique identifier based on the current timestamp.
// The identifier is formatted as a string in the "YYYYMMDDHHMMSS" format.
func GenerateRunID() string {
	return time.Now().Format("20060102150405")
}

// SplitList splits a comma-separated list into trimmed, non-empty items.
func SplitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ReadIDsFromFile reads video ids from a file, one per line.
// It ignores empty lines and lines starting with a '#' character (comments).
func ReadIDsFromFile(filename string) ([]string, error) {
	log.Debug().Str("filename", filename).Msg("Reading video ids from file")

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	var ids []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			ids = append(ids, line)
		}
	}

	log.Debug().Int("id_count", len(ids)).Msg("Video ids read from file")
	return ids, nil
}
