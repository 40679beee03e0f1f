package gallery

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Nkemjikanma/esemese-backend/cmd/server/internal/viewmodels"
	"github.com/Nkemjikanma/esemese-backend/pkg/models"
	"github.com/Nkemjikanma/esemese-backend/pkg/responses"
	"github.com/Nkemjikanma/esemese-backend/pkg/services"
)

type GalleryHandlers interface {
	GetGroups(w http.ResponseWriter, r *http.Request)
	GetGroupsWithThumbnails(w http.ResponseWriter, r *http.Request)
	GetGroupImages(w http.ResponseWriter, r *http.Request)
	GetFavourites(w http.ResponseWriter, r *http.Request)
	GetFilesByCategory(w http.ResponseWriter, r *http.Request)
}

type GalleryControllerConfig struct {
	FavouritesGroupID string
	GalleryService    services.GalleryServicer
}

type GalleryController struct {
	favouritesGroupID string
	galleryService    services.GalleryServicer
}

func NewGalleryController(config GalleryControllerConfig) GalleryController {
	return GalleryController{
		favouritesGroupID: config.FavouritesGroupID,
		galleryService:    config.GalleryService,
	}
}

/*
GET /groups
*/
func (c GalleryController) GetGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := c.galleryService.GetGroups(r.Context())

	if err != nil {
		slog.Error("error fetching groups", "error", err)
		responses.WriteError(w, err)
		return
	}

	slog.Info("fetched groups", "count", len(groups))

	responses.JSON(w, http.StatusOK, viewmodels.GroupList{
		Success: true,
		Groups:  groups,
	})
}

/*
GET /groups-with-thumbnails
*/
func (c GalleryController) GetGroupsWithThumbnails(w http.ResponseWriter, r *http.Request) {
	collections, err := c.galleryService.GetGroupsWithThumbnails(r.Context())

	if err != nil {
		slog.Error("error fetching groups with thumbnails", "error", err)
		responses.WriteError(w, err)
		return
	}

	responses.JSON(w, http.StatusOK, viewmodels.GroupsWithThumbnails{
		Success:     true,
		Collections: collections,
	})
}

/*
GET /group-images?group_id=&limit=
*/
func (c GalleryController) GetGroupImages(w http.ResponseWriter, r *http.Request) {
	groupID := r.URL.Query().Get("group_id")

	if groupID == "" {
		groupID = c.favouritesGroupID
	}

	images, err := c.galleryService.GetGroupImages(r.Context(), groupID, queryLimit(r))

	if err != nil {
		slog.Error("error fetching group images", "groupID", groupID, "error", err)
		responses.WriteError(w, err)
		return
	}

	responses.JSON(w, http.StatusOK, viewmodels.GroupImages{
		Success: true,
		GroupID: groupID,
		Images:  images,
	})
}

/*
GET /favourites?group_id=&limit=

Same lookup as /group-images, but only actual images survive; the
favourites group can also hold non-image pins that the carousel must
never show.
*/
func (c GalleryController) GetFavourites(w http.ResponseWriter, r *http.Request) {
	groupID := r.URL.Query().Get("group_id")

	if groupID == "" {
		groupID = c.favouritesGroupID
	}

	files, err := c.galleryService.GetGroupImages(r.Context(), groupID, queryLimit(r))

	if err != nil {
		slog.Error("error fetching favourites", "groupID", groupID, "error", err)
		responses.WriteError(w, err)
		return
	}

	images := []models.PinataFile{}

	for _, file := range files {
		if strings.HasPrefix(file.MimeType, "image/") {
			images = append(images, file)
		}
	}

	responses.JSON(w, http.StatusOK, viewmodels.GroupImages{
		Success: true,
		GroupID: groupID,
		Images:  images,
	})
}

/*
GET /files-category?categories=&limit=
*/
func (c GalleryController) GetFilesByCategory(w http.ResponseWriter, r *http.Request) {
	var (
		categories []string
	)

	if raw := r.URL.Query().Get("categories"); raw != "" {
		for _, category := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(category); trimmed != "" {
				categories = append(categories, trimmed)
			}
		}
	}

	images, err := c.galleryService.GetFilesByCategory(r.Context(), categories, queryLimit(r))

	if err != nil {
		slog.Error("error fetching files by category", "categories", categories, "error", err)
		responses.WriteError(w, err)
		return
	}

	responses.JSON(w, http.StatusOK, viewmodels.CategoryImages{
		Success: true,
		Images:  images,
	})
}

func queryLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))

	if err != nil || limit < 0 {
		return 0
	}

	return limit
}
