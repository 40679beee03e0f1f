package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Nkemjikanma/esemese-backend/pkg/models"
	"github.com/Nkemjikanma/esemese-backend/pkg/pinata"
)

type stubPinataClient struct {
	listGroups  func(ctx context.Context, pageToken string) (pinata.Page[models.PinataGroup], error)
	listFiles   func(ctx context.Context, query pinata.FileQuery, pageToken string) (pinata.Page[models.PinataFile], error)
	createGroup func(ctx context.Context, name string) (string, error)
	uploadFile  func(ctx context.Context, form pinata.UploadForm) (models.UploadedFile, error)
}

func (s *stubPinataClient) ListGroups(ctx context.Context, pageToken string) (pinata.Page[models.PinataGroup], error) {
	return s.listGroups(ctx, pageToken)
}

func (s *stubPinataClient) ListFiles(ctx context.Context, query pinata.FileQuery, pageToken string) (pinata.Page[models.PinataFile], error) {
	return s.listFiles(ctx, query, pageToken)
}

func (s *stubPinataClient) CreateGroup(ctx context.Context, name string) (string, error) {
	return s.createGroup(ctx, name)
}

func (s *stubPinataClient) UploadFile(ctx context.Context, form pinata.UploadForm) (models.UploadedFile, error) {
	return s.uploadFile(ctx, form)
}

func groupPage(ids []string, nextPageToken string) pinata.Page[models.PinataGroup] {
	page := pinata.Page[models.PinataGroup]{NextPageToken: nextPageToken}

	for _, id := range ids {
		page.Items = append(page.Items, models.PinataGroup{ID: id, Name: "group " + id})
	}

	return page
}

func filePage(ids []string, nextPageToken string) pinata.Page[models.PinataFile] {
	page := pinata.Page[models.PinataFile]{NextPageToken: nextPageToken}

	for _, id := range ids {
		page.Items = append(page.Items, models.PinataFile{ID: id, MimeType: "image/jpeg"})
	}

	return page
}

func TestGetGroupsDrainsEveryPage(t *testing.T) {
	calls := 0

	client := &stubPinataClient{
		listGroups: func(ctx context.Context, pageToken string) (pinata.Page[models.PinataGroup], error) {
			calls++

			switch pageToken {
			case "":
				return groupPage([]string{"g1", "g2"}, "c2"), nil
			case "c2":
				return groupPage([]string{"g3"}, ""), nil
			default:
				t.Fatalf("unexpected page token %q", pageToken)
				return pinata.Page[models.PinataGroup]{}, nil
			}
		},
	}

	service := NewGalleryService(GalleryServiceConfig{Pinata: client})
	groups, err := service.GetGroups(context.Background())

	if err != nil {
		t.Fatalf("GetGroups error: %v", err)
	}

	want := []string{"g1", "g2", "g3"}

	if len(groups) != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), len(groups))
	}

	for i, id := range want {
		if groups[i].ID != id {
			t.Errorf("group %d: expected id %q, got %q", i, id, groups[i].ID)
		}
	}

	if calls != 2 {
		t.Errorf("expected 2 upstream calls, got %d", calls)
	}
}

func TestGetGroupImagesHonorsLimitAcrossPages(t *testing.T) {
	calls := 0

	client := &stubPinataClient{
		listFiles: func(ctx context.Context, query pinata.FileQuery, pageToken string) (pinata.Page[models.PinataFile], error) {
			calls++

			if query.GroupID != "g1" {
				t.Errorf("expected group scope 'g1', got %q", query.GroupID)
			}

			switch pageToken {
			case "":
				return filePage([]string{"f1", "f2"}, "c2"), nil
			case "c2":
				return filePage([]string{"f3", "f4", "f5"}, ""), nil
			default:
				t.Fatalf("unexpected page token %q", pageToken)
				return pinata.Page[models.PinataFile]{}, nil
			}
		},
	}

	service := NewGalleryService(GalleryServiceConfig{Pinata: client})
	images, err := service.GetGroupImages(context.Background(), "g1", 2)

	if err != nil {
		t.Fatalf("GetGroupImages error: %v", err)
	}

	if len(images) != 2 || images[0].ID != "f1" || images[1].ID != "f2" {
		t.Fatalf("expected the first 2 items from page 1, got %#v", images)
	}

	if calls != 1 {
		t.Errorf("expected exactly 1 upstream call, got %d", calls)
	}
}

func TestGetGroupsWithThumbnailsPreservesOrder(t *testing.T) {
	groupCount := 7

	client := &stubPinataClient{
		listGroups: func(ctx context.Context, pageToken string) (pinata.Page[models.PinataGroup], error) {
			page := pinata.Page[models.PinataGroup]{}

			for i := 0; i < groupCount; i++ {
				page.Items = append(page.Items, models.PinataGroup{ID: fmt.Sprintf("g%d", i)})
			}

			return page, nil
		},
		listFiles: func(ctx context.Context, query pinata.FileQuery, pageToken string) (pinata.Page[models.PinataFile], error) {
			return filePage([]string{"thumb-" + query.GroupID}, ""), nil
		},
	}

	service := NewGalleryService(GalleryServiceConfig{Pinata: client, MaxThumbnailWorkers: 3})
	collections, err := service.GetGroupsWithThumbnails(context.Background())

	if err != nil {
		t.Fatalf("GetGroupsWithThumbnails error: %v", err)
	}

	if len(collections) != groupCount {
		t.Fatalf("expected %d entries, got %d", groupCount, len(collections))
	}

	for i, entry := range collections {
		wantID := fmt.Sprintf("g%d", i)

		if entry.ID != wantID {
			t.Errorf("entry %d: expected group %q, got %q", i, wantID, entry.ID)
		}

		if entry.ThumbnailImage == nil || entry.ThumbnailImage.ID != "thumb-"+wantID {
			t.Errorf("entry %d: unexpected thumbnail %#v", i, entry.ThumbnailImage)
		}

		if entry.PhotoCount != 1 {
			t.Errorf("entry %d: expected photo count 1, got %d", i, entry.PhotoCount)
		}
	}
}

func TestGetGroupsWithThumbnailsDegradesOnLookupFailure(t *testing.T) {
	client := &stubPinataClient{
		listGroups: func(ctx context.Context, pageToken string) (pinata.Page[models.PinataGroup], error) {
			return groupPage([]string{"g1", "g2", "g3"}, ""), nil
		},
		listFiles: func(ctx context.Context, query pinata.FileQuery, pageToken string) (pinata.Page[models.PinataFile], error) {
			return pinata.Page[models.PinataFile]{}, errors.New("lookup failed")
		},
	}

	service := NewGalleryService(GalleryServiceConfig{Pinata: client})
	collections, err := service.GetGroupsWithThumbnails(context.Background())

	if err != nil {
		t.Fatalf("expected per-group failures to be absorbed, got %v", err)
	}

	if len(collections) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(collections))
	}

	for i, entry := range collections {
		if entry.ThumbnailImage != nil {
			t.Errorf("entry %d: expected no thumbnail, got %#v", i, entry.ThumbnailImage)
		}

		if entry.PhotoCount != 0 {
			t.Errorf("entry %d: expected photo count 0, got %d", i, entry.PhotoCount)
		}
	}
}

func TestGetGroupsWithThumbnailsFailsWhenGroupListFails(t *testing.T) {
	listErr := errors.New("groups unavailable")

	client := &stubPinataClient{
		listGroups: func(ctx context.Context, pageToken string) (pinata.Page[models.PinataGroup], error) {
			return pinata.Page[models.PinataGroup]{}, listErr
		},
	}

	service := NewGalleryService(GalleryServiceConfig{Pinata: client})
	_, err := service.GetGroupsWithThumbnails(context.Background())

	if !errors.Is(err, listErr) {
		t.Fatalf("expected group list error to propagate, got %v", err)
	}
}

func TestGetFilesByCategorySendsFilterAndAppliesLimit(t *testing.T) {
	var capturedMetadata string

	client := &stubPinataClient{
		listFiles: func(ctx context.Context, query pinata.FileQuery, pageToken string) (pinata.Page[models.PinataFile], error) {
			capturedMetadata = query.Metadata
			return filePage([]string{"f1", "f2", "f3", "f4"}, ""), nil
		},
	}

	service := NewGalleryService(GalleryServiceConfig{Pinata: client})
	images, err := service.GetFilesByCategory(context.Background(), []string{"cat", "dog"}, 2)

	if err != nil {
		t.Fatalf("GetFilesByCategory error: %v", err)
	}

	if capturedMetadata != `{"category":{"value":["cat","dog"],"op":"in"}}` {
		t.Errorf("unexpected metadata filter %q", capturedMetadata)
	}

	if len(images) != 2 {
		t.Fatalf("expected limit of 2 applied, got %d images", len(images))
	}
}

func TestGetFilesByCategoryWithoutCategoriesSendsNoFilter(t *testing.T) {
	client := &stubPinataClient{
		listFiles: func(ctx context.Context, query pinata.FileQuery, pageToken string) (pinata.Page[models.PinataFile], error) {
			if query.Metadata != "" {
				t.Errorf("expected no metadata filter, got %q", query.Metadata)
			}

			return filePage([]string{"f1"}, ""), nil
		},
	}

	service := NewGalleryService(GalleryServiceConfig{Pinata: client})
	images, err := service.GetFilesByCategory(context.Background(), nil, 0)

	if err != nil {
		t.Fatalf("GetFilesByCategory error: %v", err)
	}

	if len(images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(images))
	}
}
