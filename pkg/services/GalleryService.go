package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Nkemjikanma/esemese-backend/pkg/models"
	"github.com/Nkemjikanma/esemese-backend/pkg/pinata"
	"github.com/alitto/pond/v2"
)

type GalleryServicer interface {
	GetGroups(ctx context.Context) ([]models.PinataGroup, error)
	GetGroupsWithThumbnails(ctx context.Context) ([]models.GroupWithThumbnail, error)
	GetGroupImages(ctx context.Context, groupID string, limit int) ([]models.PinataFile, error)
	GetFilesByCategory(ctx context.Context, categories []string, limit int) ([]models.PinataFile, error)
}

type GalleryServiceConfig struct {
	Pinata              pinata.Client
	MaxThumbnailWorkers int
}

type GalleryService struct {
	pinata              pinata.Client
	maxThumbnailWorkers int
}

func NewGalleryService(config GalleryServiceConfig) GalleryService {
	if config.MaxThumbnailWorkers <= 0 {
		config.MaxThumbnailWorkers = 5
	}

	return GalleryService{
		pinata:              config.Pinata,
		maxThumbnailWorkers: config.MaxThumbnailWorkers,
	}
}

// GetGroups drains the whole group collection from Pinata in upstream
// order. There is no cap; the upstream cursor running out is the only
// stop condition.
func (s GalleryService) GetGroups(ctx context.Context) ([]models.PinataGroup, error) {
	groups, err := pinata.DrainPages(func(pageToken string) (pinata.Page[models.PinataGroup], error) {
		return s.pinata.ListGroups(ctx, pageToken)
	}, 0)

	if err != nil {
		return nil, fmt.Errorf("error fetching groups: %w", err)
	}

	return groups, nil
}

/*
GetGroupsWithThumbnails joins the full group list with a capped file
lookup per group. Lookups run on a bounded worker pool but write into
their own slot, so the output order always matches the group order. A
failed lookup degrades that entry to no thumbnail and a zero count
instead of failing the whole composition.
*/
func (s GalleryService) GetGroupsWithThumbnails(ctx context.Context) ([]models.GroupWithThumbnail, error) {
	var (
		err    error
		groups []models.PinataGroup
	)

	if groups, err = s.GetGroups(ctx); err != nil {
		return nil, err
	}

	collections := make([]models.GroupWithThumbnail, len(groups))
	pool := pond.NewPool(s.maxThumbnailWorkers)

	for i, group := range groups {
		pool.Submit(func() {
			entry := models.GroupWithThumbnail{
				ID:        group.ID,
				Name:      group.Name,
				IsPublic:  group.IsPublic,
				CreatedAt: group.CreatedAt,
			}

			files, lookupErr := s.GetGroupImages(ctx, group.ID, 1)

			if lookupErr != nil {
				slog.Error("error fetching thumbnail for group", "groupID", group.ID, "error", lookupErr)
			} else if len(files) > 0 {
				entry.ThumbnailImage = &files[0]
				entry.PhotoCount = len(files)
			}

			collections[i] = entry
		})
	}

	_ = pool.Stop().Wait()

	return collections, nil
}

// GetGroupImages drains the files of one group, stopping early once
// limit items have been collected when limit is positive.
func (s GalleryService) GetGroupImages(ctx context.Context, groupID string, limit int) ([]models.PinataFile, error) {
	query := pinata.FileQuery{
		GroupID: groupID,
	}

	files, err := pinata.DrainPages(func(pageToken string) (pinata.Page[models.PinataFile], error) {
		return s.pinata.ListFiles(ctx, query, pageToken)
	}, limit)

	if err != nil {
		return nil, fmt.Errorf("error fetching images for group %s: %w", groupID, err)
	}

	return files, nil
}

/*
GetFilesByCategory lists files matching the given categories. The
predicate is applied upstream via the metadata filter and stays fixed
for the whole drain; the limit is applied again client-side afterwards
because the upstream filter makes no count guarantee.
*/
func (s GalleryService) GetFilesByCategory(ctx context.Context, categories []string, limit int) ([]models.PinataFile, error) {
	var (
		err    error
		filter string
	)

	if filter, err = pinata.CategoryFilter(categories); err != nil {
		return nil, err
	}

	query := pinata.FileQuery{
		Metadata: filter,
	}

	files, err := pinata.DrainPages(func(pageToken string) (pinata.Page[models.PinataFile], error) {
		return s.pinata.ListFiles(ctx, query, pageToken)
	}, 0)

	if err != nil {
		return nil, fmt.Errorf("error fetching files by category: %w", err)
	}

	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}

	return files, nil
}
