// Package state persists pipeline results as delimited tabular files.
package state

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/researchaccelerator-hub/youtube-classifier/classify"
	"github.com/researchaccelerator-hub/youtube-classifier/model"
	"github.com/rs/zerolog/log"
)

// utf8BOM is prepended to output files so spreadsheet tools detect UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVStore writes classification results to CSV files in a fixed directory.
type CSVStore struct {
	dir string
}

// NewCSVStore creates a store rooted at dir, creating the directory if
// needed.
func NewCSVStore(dir string) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &CSVStore{dir: dir}, nil
}

// SaveClassified writes one row per classified record, all metadata and
// score columns included, and returns the written file path.
func (s *CSVStore) SaveClassified(records []*model.ClassifiedRecord, filename string) (string, error) {
	header := metadataHeader()
	for _, name := range classify.CategoryNames() {
		header = append(header,
			name+"_word_count",
			name+"_per_min",
			"is_"+name,
			name+"_in_title",
		)
	}
	header = append(header, "primary_category")

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := metadataRow(rec)
		for _, name := range classify.CategoryNames() {
			score := rec.Scores[name]
			row = append(row,
				strconv.Itoa(score.WordCount),
				strconv.FormatFloat(score.PerMin, 'f', -1, 64),
				strconv.FormatBool(score.Matched),
				strconv.FormatBool(score.InTitle),
			)
		}
		row = append(row, rec.PrimaryCategory)
		rows = append(rows, row)
	}

	return s.write(filename, header, rows)
}

// SaveMerged writes the merged, pre-classification table. Used as a debug
// artifact when verbose mode is on.
func (s *CSVStore) SaveMerged(records []*model.ClassifiedRecord, filename string) (string, error) {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, metadataRow(rec))
	}
	return s.write(filename, metadataHeader(), rows)
}

func metadataHeader() []string {
	return []string{
		"video_id", "title", "date", "views", "duration",
		"likes", "comments", "url", "subtitles", "duration_min",
	}
}

// metadataRow renders the metadata and transcript columns of one record.
// Records whose metadata fetch failed keep those fields empty.
func metadataRow(rec *model.ClassifiedRecord) []string {
	row := []string{rec.VideoID}
	if m := rec.Metadata; m != nil {
		date := ""
		if !m.PublishedDate.IsZero() {
			date = m.PublishedDate.Format("2006-01-02")
		}
		row = append(row,
			m.Title,
			date,
			strconv.FormatInt(m.Views, 10),
			strconv.FormatInt(m.DurationSeconds, 10),
			strconv.FormatInt(m.Likes, 10),
			strconv.FormatInt(m.Comments, 10),
			m.URL,
		)
	} else {
		row = append(row, "", "", "", "", "", "", "")
	}
	row = append(row,
		rec.Transcript,
		strconv.FormatFloat(rec.DurationMin, 'f', -1, 64),
	)
	return row
}

// write persists a header and rows as a UTF-8 CSV with a byte-order mark.
func (s *CSVStore) write(filename string, header []string, rows [][]string) (string, error) {
	path := filepath.Join(s.dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return "", fmt.Errorf("failed to write BOM: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush output: %w", err)
	}

	log.Info().Str("path", path).Int("row_count", len(rows)).Msg("Results saved")
	return path, nil
}
