// Package transcript acquires caption tracks via yt-dlp and normalizes them
// to plain spoken text.
package transcript

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/researchaccelerator-hub/youtube-classifier/model"
	"github.com/rs/zerolog/log"
)

const (
	defaultYtdlpPath    = "yt-dlp"
	defaultYtdlpTimeout = 5 * time.Minute
)

// DefaultFormats is the caption format preference order. Language preference
// strictly dominates format preference when probing downloaded files.
var DefaultFormats = []string{"srt", "vtt"}

// sequenceLineRe matches SRT cue sequence numbers (a line of digits only).
var sequenceLineRe = regexp.MustCompile(`^\d+$`)

// timingLineRe matches SRT/VTT cue timing lines like
// "00:00:01,234 --> 00:00:03.456".
var timingLineRe = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}[,.]\d{3} --> `)

// Extractor downloads caption tracks into a staging directory and converts
// them to normalized text. The staging directory is a scratch cache for the
// duration of a run; the orchestrating caller removes it afterwards.
type Extractor struct {
	// StagingDir is where yt-dlp writes caption files.
	StagingDir string

	// Langs is the preferred caption language order.
	Langs []string

	// Formats is the preferred caption format order. Defaults to srt, vtt.
	Formats []string

	// Path is the path to the yt-dlp executable. Defaults to "yt-dlp".
	Path string

	// Timeout is the maximum time to wait for yt-dlp per video.
	Timeout time.Duration
}

// NewExtractor creates an extractor staging captions under stagingDir for the
// given preferred languages.
func NewExtractor(stagingDir string, langs []string) *Extractor {
	return &Extractor{
		StagingDir: stagingDir,
		Langs:      langs,
		Formats:    DefaultFormats,
		Path:       defaultYtdlpPath,
		Timeout:    defaultYtdlpTimeout,
	}
}

// Extract downloads any matching caption track for videoID and returns the
// normalized transcript text. Every failure yields an empty transcript and a
// non-nil error for logging; the caller never aborts the batch on it.
func (e *Extractor) Extract(ctx context.Context, videoID string) (string, error) {
	if err := os.MkdirAll(e.StagingDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}

	if err := e.download(ctx, videoID); err != nil {
		return "", err
	}

	path := e.findSubtitleFile(videoID)
	if path == "" {
		log.Debug().Str("video_id", videoID).Msg("No caption track found")
		return "", nil
	}

	text, err := NormalizeSubtitleFile(path)
	if err != nil {
		return "", err
	}
	return text, nil
}

// download runs yt-dlp to fetch caption tracks without the video content.
func (e *Extractor) download(ctx context.Context, videoID string) error {
	args := []string{
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", strings.Join(e.langs(), ","),
		"--sub-format", strings.Join(e.formats(), "/"),
		"--output", filepath.Join(e.StagingDir, "%(id)s.%(ext)s"),
		"--quiet",
		"--no-warnings",
		"--ignore-errors",
		model.WatchURL(videoID),
	}

	timeout := e.Timeout
	if timeout == 0 {
		timeout = defaultYtdlpTimeout
	}
	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, e.path(), args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if cmdCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("yt-dlp timed out for video %s", videoID)
		}
		return fmt.Errorf("yt-dlp failed for video %s: %w: %s", videoID, err, stderr.String())
	}
	return nil
}

// findSubtitleFile probes the staging directory for a downloaded caption
// file. Languages are checked in preference order, formats within each
// language; the first existing file wins. Returns "" when nothing matched.
func (e *Extractor) findSubtitleFile(videoID string) string {
	for _, lang := range e.langs() {
		for _, ext := range e.formats() {
			p := filepath.Join(e.StagingDir, fmt.Sprintf("%s.%s.%s", videoID, lang, ext))
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

func (e *Extractor) path() string {
	if e.Path != "" {
		return e.Path
	}
	return defaultYtdlpPath
}

func (e *Extractor) langs() []string {
	if len(e.Langs) > 0 {
		return e.Langs
	}
	return []string{"ja"}
}

func (e *Extractor) formats() []string {
	if len(e.Formats) > 0 {
		return e.Formats
	}
	return DefaultFormats
}

// NormalizeSubtitleFile reads an SRT or VTT file and returns its spoken text.
func NormalizeSubtitleFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open caption file: %w", err)
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if skipSubtitleLine(line) {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read caption file: %w", err)
	}

	// Cue lines join with a single space so the result stays one block of
	// text and renormalizes to itself.
	return strings.Join(out, " "), nil
}

// NormalizeSubtitleText applies the same normalization to caption content
// already held in memory.
func NormalizeSubtitleText(content string) string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if skipSubtitleLine(line) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, " ")
}

// skipSubtitleLine reports whether a caption line carries no spoken text:
// blank lines, cue sequence numbers, timing lines, and format headers.
func skipSubtitleLine(line string) bool {
	return line == "" ||
		sequenceLineRe.MatchString(line) ||
		timingLineRe.MatchString(line) ||
		strings.HasPrefix(line, "WEBVTT") ||
		strings.HasPrefix(line, "NOTE")
}
