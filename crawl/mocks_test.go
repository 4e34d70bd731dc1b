package crawl

import (
	"context"

	"github.com/researchaccelerator-hub/youtube-classifier/client"
	"github.com/researchaccelerator-hub/youtube-classifier/model"
	"github.com/stretchr/testify/mock"
)

// MockClient is a mock implementation of the client.Client interface.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Connect(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockClient) Disconnect(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockClient) ChannelIDs(ctx context.Context, ids []string) ([]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockClient) PlaylistPage(ctx context.Context, playlistID, pageToken string) (*client.PlaylistPage, error) {
	args := m.Called(ctx, playlistID, pageToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.PlaylistPage), args.Error(1)
}

func (m *MockClient) VideoDetails(ctx context.Context, ids []string) ([]*model.VideoMetadata, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.VideoMetadata), args.Error(1)
}

// MockExtractor is a mock implementation of the TranscriptExtractor interface.
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, videoID string) (string, error) {
	args := m.Called(ctx, videoID)
	return args.String(0), args.Error(1)
}
