package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/researchaccelerator-hub/youtube-classifier/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

// maxBatchSize is the upstream limit on ids per Videos.List call and items
// per PlaylistItems.List page.
const maxBatchSize = 50

// requestTimeout is the fixed per-call timeout on API requests. A timeout is
// handled like any other request failure by the caller.
const requestTimeout = 10 * time.Second

// YouTubeDataClient implements the Client interface on top of the YouTube
// Data API v3.
type YouTubeDataClient struct {
	service *ytapi.Service
	apiKey  string
}

// NewYouTubeDataClient creates a new YouTube data client.
func NewYouTubeDataClient(apiKey string) (*YouTubeDataClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	return &YouTubeDataClient{
		apiKey: apiKey,
	}, nil
}

// Connect establishes a connection to the YouTube API.
func (c *YouTubeDataClient) Connect(ctx context.Context) error {
	log.Info().Msg("Connecting to YouTube API")

	httpClient := &http.Client{
		Timeout: requestTimeout,
	}

	service, err := ytapi.NewService(ctx, option.WithAPIKey(c.apiKey), option.WithHTTPClient(httpClient))
	if err != nil {
		log.Error().Err(err).Msg("Failed to create YouTube service")
		return fmt.Errorf("failed to create YouTube service: %w", err)
	}

	c.service = service
	log.Info().Msg("Connected to YouTube API successfully")
	return nil
}

// Disconnect closes the connection to the YouTube API.
func (c *YouTubeDataClient) Disconnect(ctx context.Context) error {
	// No explicit disconnect needed for the YouTube API client
	c.service = nil
	return nil
}

// ChannelIDs looks up the channel ID of each video in ids with a single
// Videos.List call. Videos the API does not return are simply absent from the
// result.
func (c *YouTubeDataClient) ChannelIDs(ctx context.Context, ids []string) ([]string, error) {
	if c.service == nil {
		return nil, fmt.Errorf("YouTube client not connected")
	}
	if len(ids) > maxBatchSize {
		return nil, fmt.Errorf("at most %d video ids per lookup, got %d", maxBatchSize, len(ids))
	}

	response, err := c.service.Videos.List([]string{"snippet"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to look up videos: %w", err)
	}

	channelIDs := make([]string, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Snippet == nil {
			return nil, fmt.Errorf("video %s returned without snippet", item.Id)
		}
		channelIDs = append(channelIDs, item.Snippet.ChannelId)
	}

	return channelIDs, nil
}

// PlaylistPage fetches one page of up to 50 playlist items.
func (c *YouTubeDataClient) PlaylistPage(ctx context.Context, playlistID, pageToken string) (*PlaylistPage, error) {
	if c.service == nil {
		return nil, fmt.Errorf("YouTube client not connected")
	}

	call := c.service.PlaylistItems.List([]string{"snippet"}).
		PlaylistId(playlistID).
		MaxResults(maxBatchSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list playlist %s: %w", playlistID, err)
	}

	page := &PlaylistPage{
		Entries:       make([]PlaylistEntry, 0, len(response.Items)),
		NextPageToken: response.NextPageToken,
	}
	for _, item := range response.Items {
		if item.Snippet == nil || item.Snippet.ResourceId == nil {
			return nil, fmt.Errorf("playlist %s returned item without snippet", playlistID)
		}
		page.Entries = append(page.Entries, PlaylistEntry{
			VideoID: item.Snippet.ResourceId.VideoId,
			Title:   item.Snippet.Title,
		})
	}

	return page, nil
}

// VideoDetails retrieves metadata for up to 50 videos with a single
// Videos.List call. Publish timestamps are truncated to UTC calendar dates
// and ISO-8601 durations are normalized to seconds.
func (c *YouTubeDataClient) VideoDetails(ctx context.Context, ids []string) ([]*model.VideoMetadata, error) {
	if c.service == nil {
		return nil, fmt.Errorf("YouTube client not connected")
	}
	if len(ids) > maxBatchSize {
		return nil, fmt.Errorf("at most %d video ids per lookup, got %d", maxBatchSize, len(ids))
	}

	response, err := c.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get video details: %w", err)
	}

	videos := make([]*model.VideoMetadata, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Snippet == nil || item.ContentDetails == nil {
			return nil, fmt.Errorf("video %s returned without snippet or contentDetails", item.Id)
		}

		video := &model.VideoMetadata{
			VideoID:         item.Id,
			Title:           item.Snippet.Title,
			PublishedDate:   truncateToDate(item.Snippet.PublishedAt),
			DurationSeconds: ParseISODuration(item.ContentDetails.Duration),
			URL:             model.WatchURL(item.Id),
		}

		// Statistics can be absent entirely, each counter defaults to 0.
		if item.Statistics != nil {
			video.Views = int64(item.Statistics.ViewCount)
			video.Likes = int64(item.Statistics.LikeCount)
			video.Comments = int64(item.Statistics.CommentCount)
		}

		videos = append(videos, video)
	}

	return videos, nil
}

// truncateToDate parses an RFC3339 timestamp and truncates it to a UTC
// calendar date. Unparseable timestamps yield the zero time.
func truncateToDate(published string) time.Time {
	t, err := time.Parse(time.RFC3339, published)
	if err != nil {
		log.Warn().Err(err).Str("date", published).Msg("Failed to parse video published date")
		return time.Time{}
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseISODuration converts an ISO-8601 duration of the PTnHnMnS form (with
// an optional day component) to seconds. Malformed values fall back to 0
// seconds rather than failing the batch.
func ParseISODuration(duration string) int64 {
	rest, ok := strings.CutPrefix(duration, "P")
	if !ok {
		log.Warn().Str("duration", duration).Msg("Unparseable ISO-8601 duration, treating as zero")
		return 0
	}

	datePart := rest
	timePart := ""
	if i := strings.Index(rest, "T"); i >= 0 {
		datePart, timePart = rest[:i], rest[i+1:]
	}

	days, rest, okDays := cutUnit(datePart, 'D')
	if !okDays || rest != "" {
		log.Warn().Str("duration", duration).Msg("Unparseable ISO-8601 duration, treating as zero")
		return 0
	}

	hours, rest, okH := cutUnit(timePart, 'H')
	minutes, rest, okM := cutUnit(rest, 'M')
	seconds, rest, okS := cutUnit(rest, 'S')
	if !okH || !okM || !okS || rest != "" {
		log.Warn().Str("duration", duration).Msg("Unparseable ISO-8601 duration, treating as zero")
		return 0
	}

	return ((days*24+hours)*60+minutes)*60 + seconds
}

// cutUnit consumes a leading "<digits><unit>" component from s. It returns
// the component's value, the remaining string, and whether s was well formed.
// A missing component is valid and counts as zero.
func cutUnit(s string, unit byte) (int64, string, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == len(s) || s[i] != unit {
		// Component absent, nothing consumed.
		return 0, s, true
	}
	if i == 0 {
		// Unit letter with no digits.
		return 0, s, false
	}
	var v int64
	for _, d := range []byte(s[:i]) {
		v = v*10 + int64(d-'0')
	}
	return v, s[i+1:], true
}
