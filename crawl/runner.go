// Package crawl drives the ingestion and classification pipeline: channel
// resolution, catalog enumeration, metadata fetch, transcript acquisition,
// merge and classification.
package crawl

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/researchaccelerator-hub/youtube-classifier/classify"
	"github.com/researchaccelerator-hub/youtube-classifier/client"
	"github.com/researchaccelerator-hub/youtube-classifier/common"
	"github.com/researchaccelerator-hub/youtube-classifier/model"
	"github.com/rs/zerolog/log"
)

// batchSize is the upstream API limit on ids per batch lookup.
const batchSize = 50

// TranscriptExtractor acquires the normalized transcript of a single video.
type TranscriptExtractor interface {
	Extract(ctx context.Context, videoID string) (string, error)
}

// Delayer pauses between successive upstream calls to reduce rate-limit
// pressure. It is a politeness measure only, never a correctness one.
type Delayer func(min, max time.Duration)

// Runner executes one sequential pipeline run.
type Runner struct {
	client    client.Client
	extractor TranscriptExtractor
	cfg       common.PipelineConfig
	delay     Delayer
}

// NewRunner creates a pipeline runner.
func NewRunner(c client.Client, e TranscriptExtractor, cfg common.PipelineConfig) *Runner {
	return &Runner{
		client:    c,
		extractor: e,
		cfg:       cfg,
		delay:     randomDelay,
	}
}

// Run executes the full pipeline and returns one classified record per video.
func (r *Runner) Run(ctx context.Context) ([]*model.ClassifiedRecord, error) {
	log.Info().
		Str("run_id", r.cfg.RunID).
		Int("seed_count", len(r.cfg.SeedVideoIDs)).
		Str("title_filter", r.cfg.TitleFilter).
		Msg("Starting classification run")

	playlistIDs := r.ResolveUploadPlaylists(ctx, r.cfg.SeedVideoIDs)
	log.Info().Int("playlist_count", len(playlistIDs)).Msg("Resolved upload playlists")

	videoIDs := r.CollectPlaylistVideos(ctx, playlistIDs, r.cfg.TitleFilter)
	log.Info().Int("video_count", len(videoIDs)).Msg("Collected video ids")

	details := r.FetchVideoDetails(ctx, videoIDs)
	log.Info().Int("detail_count", len(details)).Msg("Fetched video details")

	transcripts := r.FetchTranscripts(ctx, videoIDs)
	log.Info().Int("transcript_count", len(transcripts)).Msg("Fetched transcripts")

	records := MergeRecords(details, transcripts)
	log.Info().Int("record_count", len(records)).Msg("Merged metadata and transcripts")

	threshold := r.cfg.Threshold
	if threshold == 0 {
		threshold = classify.DefaultThreshold
	}
	if err := classify.Classify(records, threshold); err != nil {
		return nil, err
	}

	return records, nil
}

// UploadsPlaylistID derives a channel's uploads playlist id from its channel
// id by replacing the first "C" with "U" ("UCabc" becomes "UUabc").
func UploadsPlaylistID(channelID string) string {
	return strings.Replace(channelID, "C", "U", 1)
}

// ResolveUploadPlaylists maps seed video ids to the uploads playlist ids of
// their channels. Input is partitioned into batches of at most 50 ids; a
// failed batch is skipped entirely and the run continues. Duplicate playlist
// ids collapse to one, first-seen order preserved.
func (r *Runner) ResolveUploadPlaylists(ctx context.Context, videoIDs []string) []string {
	var playlistIDs []string
	seen := make(map[string]bool)

	for _, batch := range batches(videoIDs, batchSize) {
		channelIDs, err := r.client.ChannelIDs(ctx, batch)
		if err != nil {
			log.Error().Err(err).Strs("video_ids", batch).Msg("Failed to resolve channels for batch, skipping")
			continue
		}

		for _, channelID := range channelIDs {
			if channelID == "" {
				continue
			}
			playlistID := UploadsPlaylistID(channelID)
			if !seen[playlistID] {
				seen[playlistID] = true
				playlistIDs = append(playlistIDs, playlistID)
			}
		}

		r.delay(100*time.Millisecond, 200*time.Millisecond)
	}

	return playlistIDs
}

// CollectPlaylistVideos pages through each playlist's catalog and returns the
// video ids of every item, optionally filtered by title substring. A page
// failure aborts enumeration for that playlist only, keeping the items
// already collected for it.
func (r *Runner) CollectPlaylistVideos(ctx context.Context, playlistIDs []string, titleFilter string) []string {
	var videoIDs []string

	for _, playlistID := range playlistIDs {
		pageToken := ""
		for {
			page, err := r.client.PlaylistPage(ctx, playlistID, pageToken)
			if err != nil {
				log.Error().Err(err).Str("playlist_id", playlistID).Msg("Failed to list playlist page, moving to next playlist")
				break
			}

			for _, entry := range page.Entries {
				if titleFilter != "" && !strings.Contains(entry.Title, titleFilter) {
					continue
				}
				videoIDs = append(videoIDs, entry.VideoID)
			}

			if page.NextPageToken == "" {
				break
			}
			pageToken = page.NextPageToken
			r.delay(100*time.Millisecond, 200*time.Millisecond)
		}
	}

	return videoIDs
}

// FetchVideoDetails retrieves metadata in batches of at most 50 ids. Ids in a
// failed batch are absent from the result; there is no retry.
func (r *Runner) FetchVideoDetails(ctx context.Context, videoIDs []string) []*model.VideoMetadata {
	var details []*model.VideoMetadata

	for _, batch := range batches(videoIDs, batchSize) {
		videos, err := r.client.VideoDetails(ctx, batch)
		if err != nil {
			log.Error().Err(err).Strs("video_ids", batch).Msg("Failed to fetch video details for batch, skipping")
			continue
		}
		details = append(details, videos...)
	}

	return details
}

// FetchTranscripts acquires the transcript of each video in turn. Any failure
// yields an empty transcript for that video only.
func (r *Runner) FetchTranscripts(ctx context.Context, videoIDs []string) []model.TranscriptRecord {
	transcripts := make([]model.TranscriptRecord, 0, len(videoIDs))

	for _, videoID := range videoIDs {
		text, err := r.extractor.Extract(ctx, videoID)
		if err != nil {
			log.Warn().Err(err).Str("video_id", videoID).Msg("Failed to extract transcript")
			text = ""
		}
		transcripts = append(transcripts, model.TranscriptRecord{VideoID: videoID, Text: text})

		r.delay(500*time.Millisecond, 1500*time.Millisecond)
	}

	return transcripts
}

// MergeRecords outer-joins metadata and transcripts on video id. Rows present
// only in metadata get an empty transcript; rows present only in transcripts
// carry nil metadata. Video id uniqueness is assumed from upstream.
func MergeRecords(details []*model.VideoMetadata, transcripts []model.TranscriptRecord) []*model.ClassifiedRecord {
	transcriptByID := make(map[string]string, len(transcripts))
	for _, t := range transcripts {
		transcriptByID[t.VideoID] = t.Text
	}

	records := make([]*model.ClassifiedRecord, 0, len(details))
	metaSeen := make(map[string]bool, len(details))
	for _, d := range details {
		metaSeen[d.VideoID] = true
		records = append(records, &model.ClassifiedRecord{
			VideoID:    d.VideoID,
			Metadata:   d,
			Transcript: transcriptByID[d.VideoID],
		})
	}

	for _, t := range transcripts {
		if metaSeen[t.VideoID] {
			continue
		}
		records = append(records, &model.ClassifiedRecord{
			VideoID:    t.VideoID,
			Transcript: t.Text,
		})
	}

	return records
}

// batches partitions ids into chunks of at most size elements.
func batches(ids []string, size int) [][]string {
	var out [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		out = append(out, ids[start:end])
	}
	return out
}

// randomDelay sleeps for a random duration between min and max.
func randomDelay(min, max time.Duration) {
	time.Sleep(min + time.Duration(rand.Int63n(int64(max-min))))
}
