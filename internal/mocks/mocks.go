// Package mocks holds testify mocks for the store and event interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/grvbrk/provideo_server/internal/events"
	"github.com/grvbrk/provideo_server/internal/models"
	"github.com/grvbrk/provideo_server/internal/store"
)

var (
	_ store.VideoStore     = (*VideoStoreMock)(nil)
	_ store.CreatorStore   = (*CreatorStoreMock)(nil)
	_ store.TagStore       = (*TagStoreMock)(nil)
	_ store.ViewEventStore = (*ViewEventStoreMock)(nil)
	_ store.VideoCache     = (*VideoCacheMock)(nil)
	_ events.Publisher     = (*PublisherMock)(nil)
)

type VideoStoreMock struct {
	mock.Mock
}

func (m *VideoStoreMock) ListPublished(ctx context.Context, limit, offset int) ([]models.VideoWithCreator, int, error) {
	args := m.Called(ctx, limit, offset)
	if v := args.Get(0); v != nil {
		return v.([]models.VideoWithCreator), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *VideoStoreMock) ListPublishedByCreator(ctx context.Context, creatorID uuid.UUID, limit, offset int) ([]models.Video, int, error) {
	args := m.Called(ctx, creatorID, limit, offset)
	if v := args.Get(0); v != nil {
		return v.([]models.Video), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *VideoStoreMock) ListPublishedByTag(ctx context.Context, tagID uuid.UUID, limit, offset int) ([]models.VideoWithCreator, int, error) {
	args := m.Called(ctx, tagID, limit, offset)
	if v := args.Get(0); v != nil {
		return v.([]models.VideoWithCreator), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *VideoStoreMock) ListSlugsByCreator(ctx context.Context, creatorID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, creatorID)
	if v := args.Get(0); v != nil {
		return v.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VideoStoreMock) GetPublishedBySlug(ctx context.Context, slug string) (*models.VideoDetail, error) {
	args := m.Called(ctx, slug)
	if v := args.Get(0); v != nil {
		return v.(*models.VideoDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VideoStoreMock) ProbeBySlug(ctx context.Context, slug string) (*models.VideoProbe, error) {
	args := m.Called(ctx, slug)
	if v := args.Get(0); v != nil {
		return v.(*models.VideoProbe), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VideoStoreMock) Search(ctx context.Context, query string, limit int) ([]models.VideoSummary, error) {
	args := m.Called(ctx, query, limit)
	if v := args.Get(0); v != nil {
		return v.([]models.VideoSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VideoStoreMock) CreateVideo(ctx context.Context, video *models.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *VideoStoreMock) UpdateVideo(ctx context.Context, slug string, patch models.VideoPatch) (uuid.UUID, error) {
	args := m.Called(ctx, slug, patch)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *VideoStoreMock) SetViews(ctx context.Context, counts map[uuid.UUID]int64) error {
	args := m.Called(ctx, counts)
	return args.Error(0)
}

type CreatorStoreMock struct {
	mock.Mock
}

func (m *CreatorStoreMock) ListCreators(ctx context.Context) ([]models.Creator, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]models.Creator), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CreatorStoreMock) GetCreatorByID(ctx context.Context, id uuid.UUID) (*models.Creator, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Creator), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CreatorStoreMock) GetCreatorBySlug(ctx context.Context, slug string) (*models.Creator, error) {
	args := m.Called(ctx, slug)
	if v := args.Get(0); v != nil {
		return v.(*models.Creator), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CreatorStoreMock) SearchCreators(ctx context.Context, query string, limit int) ([]models.CreatorSummary, error) {
	args := m.Called(ctx, query, limit)
	if v := args.Get(0); v != nil {
		return v.([]models.CreatorSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CreatorStoreMock) CreateCreator(ctx context.Context, creator *models.Creator) error {
	args := m.Called(ctx, creator)
	return args.Error(0)
}

func (m *CreatorStoreMock) UpdateCreator(ctx context.Context, id uuid.UUID, patch models.CreatorPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *CreatorStoreMock) RecountVideos(ctx context.Context, id uuid.UUID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type TagStoreMock struct {
	mock.Mock
}

func (m *TagStoreMock) ListTagsWithCounts(ctx context.Context) ([]models.TagWithCount, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]models.TagWithCount), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TagStoreMock) GetTagBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	args := m.Called(ctx, slug)
	if v := args.Get(0); v != nil {
		return v.(*models.Tag), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TagStoreMock) FindOrCreateTag(ctx context.Context, name, slug string) (*models.Tag, error) {
	args := m.Called(ctx, name, slug)
	if v := args.Get(0); v != nil {
		return v.(*models.Tag), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TagStoreMock) LinkVideo(ctx context.Context, videoID, tagID uuid.UUID) error {
	args := m.Called(ctx, videoID, tagID)
	return args.Error(0)
}

type ViewEventStoreMock struct {
	mock.Mock
}

func (m *ViewEventStoreMock) RecordView(ctx context.Context, event models.ViewEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *ViewEventStoreMock) CountViewsByVideo(ctx context.Context) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(map[uuid.UUID]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

type VideoCacheMock struct {
	mock.Mock
}

func (m *VideoCacheMock) GetVideo(ctx context.Context, slug string) (*models.VideoDetail, bool, error) {
	args := m.Called(ctx, slug)
	if v := args.Get(0); v != nil {
		return v.(*models.VideoDetail), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *VideoCacheMock) SetVideo(ctx context.Context, video *models.VideoDetail) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *VideoCacheMock) DeleteVideo(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *PublisherMock) Close() error {
	args := m.Called()
	return args.Error(0)
}
