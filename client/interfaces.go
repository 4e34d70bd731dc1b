// Package client provides access to the YouTube Data API for the
// classification pipeline.
package client

import (
	"context"

	"github.com/researchaccelerator-hub/youtube-classifier/model"
)

// PlaylistEntry is one item of a playlist page.
type PlaylistEntry struct {
	VideoID string
	Title   string
}

// PlaylistPage is a single page of a playlist listing together with the
// cursor for the next page. NextPageToken is empty on the last page.
type PlaylistPage struct {
	Entries       []PlaylistEntry
	NextPageToken string
}

// Client defines the YouTube API operations the pipeline needs. Each method
// maps to exactly one API request; batching and pagination loops live in the
// crawl package so they can be tested against mock clients.
type Client interface {
	// Connect establishes a connection to the YouTube API
	Connect(ctx context.Context) error

	// Disconnect closes the connection to the YouTube API
	Disconnect(ctx context.Context) error

	// ChannelIDs returns the channel ID of each video in ids (at most 50).
	ChannelIDs(ctx context.Context, ids []string) ([]string, error)

	// PlaylistPage fetches one page of a playlist. An empty pageToken
	// requests the first page.
	PlaylistPage(ctx context.Context, playlistID, pageToken string) (*PlaylistPage, error)

	// VideoDetails returns metadata for the videos in ids (at most 50).
	VideoDetails(ctx context.Context, ids []string) ([]*model.VideoMetadata, error)
}
