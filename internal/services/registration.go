package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/grvbrk/provideo_server/internal/events"
	"github.com/grvbrk/provideo_server/internal/metrics"
	"github.com/grvbrk/provideo_server/internal/models"
	"github.com/grvbrk/provideo_server/internal/store"
	"github.com/grvbrk/provideo_server/internal/utils"
)

const slugSuffixLen = 8

type RegistrationService struct {
	videos    store.VideoStore
	creators  store.CreatorStore
	tags      store.TagStore
	cache     store.VideoCache
	publisher events.Publisher
	logger    zerolog.Logger

	idGen func() uuid.UUID
}

func NewRegistrationService(
	videos store.VideoStore,
	creators store.CreatorStore,
	tags store.TagStore,
	cache store.VideoCache,
	publisher events.Publisher,
	logger zerolog.Logger,
) *RegistrationService {
	if cache == nil {
		cache = store.NopVideoCache{}
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &RegistrationService{
		videos:    videos,
		creators:  creators,
		tags:      tags,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
		idGen:     uuid.New,
	}
}

type CreateCreatorInput struct {
	Name      string
	Slug      string
	Bio       string
	Thumbnail string
}

type RegisterVideoInput struct {
	Title       string
	Description string
	CreatorRef  string
	MediaURL    string
	Thumbnail   string
	PreviewURL  string
	Duration    *int
	Resolution  string
	Orientation string
	Type        string
	Tags        []string
}

func (s *RegistrationService) CreateCreator(ctx context.Context, in CreateCreatorInput) (*models.Creator, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.Invalid("name is required")
	}

	slug := utils.Slugify(in.Slug)
	if strings.TrimSpace(in.Slug) == "" {
		slug = utils.Slugify(name)
	}
	if slug == "" {
		return nil, models.Invalid("slug must contain at least one letter or digit")
	}

	creator := &models.Creator{
		ID:        s.idGen(),
		Name:      name,
		Slug:      slug,
		Bio:       strings.TrimSpace(in.Bio),
		Thumbnail: strings.TrimSpace(in.Thumbnail),
	}

	if err := s.creators.CreateCreator(ctx, creator); err != nil {
		return nil, err
	}

	metrics.IncRegistration(metrics.KindCreator)
	s.publish(ctx, events.Event{Type: events.TypeCreatorCreated, ID: creator.ID, Slug: creator.Slug})

	s.logger.Info().Str("id", creator.ID.String()).Str("slug", creator.Slug).Msg("creator created")
	return creator, nil
}

// UpdateCreator applies patch to the creator identified by rawID. Omitted fields are left unchanged.
func (s *RegistrationService) UpdateCreator(ctx context.Context, rawID string, patch models.CreatorPatch) error {
	if strings.TrimSpace(rawID) == "" {
		return models.Invalid("id is required")
	}
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return models.Invalid("id must be a valid UUID")
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return models.Invalid("name must not be empty")
		}
		patch.Name = &name
	}
	if patch.Slug != nil {
		slug := utils.Slugify(*patch.Slug)
		if slug == "" {
			return models.Invalid("slug must contain at least one letter or digit")
		}
		patch.Slug = &slug
	}

	if patch.Empty() {
		_, err := s.creators.GetCreatorByID(ctx, id)
		return err
	}

	if err := s.creators.UpdateCreator(ctx, id, patch); err != nil {
		return err
	}

	// cached video details embed the creator's name, slug and thumbnail
	if patch.Name != nil || patch.Slug != nil || patch.Thumbnail != nil {
		s.evictCreatorVideos(ctx, id)
	}

	s.logger.Info().Str("id", id.String()).Msg("creator updated")
	return nil
}

func (s *RegistrationService) evictCreatorVideos(ctx context.Context, creatorID uuid.UUID) {
	slugs, err := s.videos.ListSlugsByCreator(ctx, creatorID)
	if err != nil {
		s.logger.Warn().Err(err).Str("id", creatorID.String()).Msg("failed to list creator videos for eviction")
		return
	}
	for _, slug := range slugs {
		if err := s.cache.DeleteVideo(ctx, slug); err != nil {
			s.logger.Warn().Err(err).Str("slug", slug).Msg("failed to evict cached video")
		}
	}
}

// resolveCreator looks the reference up as an id first, then as a slug.
func (s *RegistrationService) resolveCreator(ctx context.Context, ref string) (*models.Creator, error) {
	if id, err := uuid.Parse(ref); err == nil {
		creator, err := s.creators.GetCreatorByID(ctx, id)
		if err == nil {
			return creator, nil
		}
		if !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
	}

	creator, err := s.creators.GetCreatorBySlug(ctx, ref)
	if err != nil {
		return nil, err
	}
	return creator, nil
}

func videoSlug(title string, id uuid.UUID) string {
	suffix := id.String()[:slugSuffixLen]
	base := utils.Slugify(title)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

func (s *RegistrationService) RegisterVideo(ctx context.Context, in RegisterVideoInput) (*models.Video, error) {
	ref := strings.TrimSpace(in.CreatorRef)
	if ref == "" {
		return nil, models.Invalid("modelId is required")
	}

	creator, err := s.resolveCreator(ctx, ref)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.Invalid("title is required")
	}
	mediaURL := strings.TrimSpace(in.MediaURL)
	if mediaURL == "" {
		return nil, models.Invalid("video_url is required")
	}

	videoType := models.VideoTypeNormal
	if in.Type != "" {
		videoType = models.VideoType(strings.ToLower(in.Type))
		if !videoType.Valid() {
			return nil, models.Invalid("type must be normal or exclusive")
		}
	}

	orientation := models.OrientationLandscape
	if in.Orientation != "" {
		orientation = models.Orientation(strings.ToLower(in.Orientation))
		if !orientation.Valid() {
			return nil, models.Invalid("orientation must be landscape or portrait")
		}
	}

	duration := 0
	if in.Duration != nil {
		if *in.Duration < 0 {
			return nil, models.Invalid("duration must not be negative")
		}
		duration = *in.Duration
	}

	resolution := strings.TrimSpace(in.Resolution)
	if resolution == "" {
		resolution = models.DefaultResolution
	}

	id := s.idGen()
	video := &models.Video{
		ID:          id,
		Title:       title,
		Slug:        videoSlug(title, id),
		Description: strings.TrimSpace(in.Description),
		Type:        videoType,
		ModelID:     creator.ID,
		Duration:    duration,
		Resolution:  resolution,
		Orientation: orientation,
		Thumbnail:   strings.TrimSpace(in.Thumbnail),
		MediaURL:    mediaURL,
		PreviewURL:  strings.TrimSpace(in.PreviewURL),
		IsPublished: true,
	}

	if err := s.videos.CreateVideo(ctx, video); err != nil {
		return nil, err
	}

	if _, err := s.creators.RecountVideos(ctx, creator.ID); err != nil {
		return nil, fmt.Errorf("video %s created but creator count not updated: %w", video.Slug, err)
	}

	tagSlugs, err := s.linkTags(ctx, video.ID, in.Tags)
	if err != nil {
		return nil, fmt.Errorf("video %s created but tags not linked: %w", video.Slug, err)
	}

	metrics.IncRegistration(metrics.KindVideo)
	s.publish(ctx, events.Event{
		Type:      events.TypeVideoRegistered,
		ID:        video.ID,
		Slug:      video.Slug,
		CreatorID: &creator.ID,
		Tags:      tagSlugs,
	})

	s.logger.Info().
		Str("id", video.ID.String()).
		Str("slug", video.Slug).
		Str("model", creator.Slug).
		Int("tags", len(tagSlugs)).
		Msg("video registered")

	return video, nil
}

// linkTags finds or creates each named tag and associates it with the video.
// Blank names and names without a usable slug are skipped.
func (s *RegistrationService) linkTags(ctx context.Context, videoID uuid.UUID, names []string) ([]string, error) {
	seen := make(map[string]bool, len(names))
	linked := []string{}

	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		slug := utils.Slugify(name)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true

		tag, err := s.tags.FindOrCreateTag(ctx, name, slug)
		if err != nil {
			return linked, err
		}
		if err := s.tags.LinkVideo(ctx, videoID, tag.ID); err != nil {
			return linked, err
		}
		linked = append(linked, slug)
	}

	return linked, nil
}

func validateVideoPatch(patch models.VideoPatch) error {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return models.Invalid("title must not be empty")
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return models.Invalid("type must be normal or exclusive")
	}
	if patch.Orientation != nil && !patch.Orientation.Valid() {
		return models.Invalid("orientation must be landscape or portrait")
	}
	if patch.Duration != nil && *patch.Duration < 0 {
		return models.Invalid("duration must not be negative")
	}
	return nil
}

// UpdateVideo applies patch to the video with slug. The cached detail is evicted and,
// when publication changes, the owning creator's videosCount is recomputed.
func (s *RegistrationService) UpdateVideo(ctx context.Context, slug string, patch models.VideoPatch) error {
	if err := validateVideoPatch(patch); err != nil {
		return err
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title
	}

	creatorID, err := s.videos.UpdateVideo(ctx, slug, patch)
	if err != nil {
		return err
	}

	if err := s.cache.DeleteVideo(ctx, slug); err != nil {
		s.logger.Warn().Err(err).Str("slug", slug).Msg("failed to evict cached video")
	}

	if patch.IsPublished != nil {
		if _, err := s.creators.RecountVideos(ctx, creatorID); err != nil {
			return fmt.Errorf("video %s updated but creator count not updated: %w", slug, err)
		}
	}

	s.logger.Info().Str("slug", slug).Msg("video updated")
	return nil
}

func (s *RegistrationService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("type", event.Type).Str("slug", event.Slug).Msg("failed to publish catalog event")
	}
}
