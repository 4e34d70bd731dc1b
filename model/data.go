// Package model defines the data records produced by the classification pipeline.
package model

import (
	"fmt"
	"time"
)

// VideoMetadata holds the per-video details retrieved from the YouTube Data API.
// Records are immutable once the fetch stage has produced them.
type VideoMetadata struct {
	VideoID         string    `json:"video_id"`
	Title           string    `json:"title"`
	PublishedDate   time.Time `json:"published_date"` // truncated to a UTC calendar date
	DurationSeconds int64     `json:"duration_seconds"`
	Views           int64     `json:"views"`
	Likes           int64     `json:"likes"`
	Comments        int64     `json:"comments"`
	URL             string    `json:"url"`
}

// TranscriptRecord pairs a video with its normalized spoken text. Text is the
// empty string when no caption track was found or retrieval failed; downstream
// stages treat both identically.
type TranscriptRecord struct {
	VideoID string `json:"video_id"`
	Text    string `json:"text"`
}

// CategoryScore holds the per-category keyword-density result for one video.
type CategoryScore struct {
	WordCount int     `json:"word_count"`
	PerMin    float64 `json:"per_min"` // keyword matches per minute, 3-decimal rounding
	Matched   bool    `json:"matched"` // PerMin >= threshold
	InTitle   bool    `json:"in_title"`
}

// ClassifiedRecord is one output row: metadata joined with transcript text and
// the classification columns. Metadata is nil for videos whose detail fetch
// failed; the transcript is empty for videos without captions.
type ClassifiedRecord struct {
	VideoID         string                   `json:"video_id"`
	Metadata        *VideoMetadata           `json:"metadata"`
	Transcript      string                   `json:"transcript"`
	DurationMin     float64                  `json:"duration_min"`
	Scores          map[string]CategoryScore `json:"scores"`
	PrimaryCategory string                   `json:"primary_category"`
}

// PrimaryNone is the sentinel primary category for videos that matched no
// category keywords at all.
const PrimaryNone = "none"

// WatchURL builds the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}
