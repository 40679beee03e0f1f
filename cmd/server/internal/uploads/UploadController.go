package uploads

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/Nkemjikanma/esemese-backend/cmd/server/internal/viewmodels"
	"github.com/Nkemjikanma/esemese-backend/pkg/models"
	"github.com/Nkemjikanma/esemese-backend/pkg/responses"
	"github.com/Nkemjikanma/esemese-backend/pkg/services"
)

type UploadHandlers interface {
	UploadPhotos(w http.ResponseWriter, r *http.Request)
}

type UploadControllerConfig struct {
	MaxUploadSizeMB int
	UploadService   services.UploadServicer
}

type UploadController struct {
	maxUploadSizeMB int
	uploadService   services.UploadServicer
}

func NewUploadController(config UploadControllerConfig) UploadController {
	if config.MaxUploadSizeMB <= 0 {
		config.MaxUploadSizeMB = 50
	}

	return UploadController{
		maxUploadSizeMB: config.MaxUploadSizeMB,
		uploadService:   config.UploadService,
	}
}

/*
POST /upload

The inbound form carries createNewGroup/groupId/groupName once, plus a
file_{id} part and a metadata_{id} JSON field per photo. Each photo goes
through the upload service in turn; when a new group is requested it is
created for the first photo and every later photo joins it, so one
request never produces more than one group. The first upload failure
aborts the rest.
*/
func (c UploadController) UploadPhotos(w http.ResponseWriter, r *http.Request) {
	var (
		err error
	)

	slog.Info("processing upload request")

	maxBytes := int64(c.maxUploadSizeMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err = r.ParseMultipartForm(maxBytes); err != nil {
		slog.Error("error parsing upload form", "error", err)
		responses.BadRequest(w, fmt.Sprintf("Failed to process multipart form: %s", err.Error()))
		return
	}

	createNewGroup, _ := strconv.ParseBool(r.FormValue("createNewGroup"))
	groupID := r.FormValue("groupId")
	groupName := r.FormValue("groupName")

	fileIDs := []string{}

	for fieldName := range r.MultipartForm.File {
		if strings.HasPrefix(fieldName, "file_") {
			fileIDs = append(fileIDs, fieldName)
		}
	}

	// Map iteration order is random; keep uploads deterministic.
	sort.Strings(fileIDs)

	uploadedFiles := []models.UploadedFile{}
	var resolvedGroupID *string

	if !createNewGroup && groupID != "" {
		resolvedGroupID = &groupID
	}

	for _, fileID := range fileIDs {
		fileData, filename, readErr := c.readFilePart(r, fileID)

		if readErr != nil {
			slog.Error("error reading file part", "fileID", fileID, "error", readErr)
			responses.BadRequest(w, fmt.Sprintf("Failed to read file data: %s", readErr.Error()))
			return
		}

		// The inbound form pairs each file part with a metadata field
		// named after it: file_abc goes with metadata_file_abc.
		metadataValue := r.FormValue("metadata_" + fileID)

		if metadataValue == "" {
			responses.BadRequest(w, fmt.Sprintf("Missing metadata for file: %s", fileID))
			return
		}

		metadata := models.PhotoMetadata{}

		if err = json.Unmarshal([]byte(metadataValue), &metadata); err != nil {
			slog.Error("error parsing photo metadata", "fileID", fileID, "error", err)
			responses.BadRequest(w, fmt.Sprintf("Failed to parse metadata JSON: %s", err.Error()))
			return
		}

		upload := models.PhotoUpload{
			File:     fileData,
			Filename: filename,
			Metadata: metadata,
			Group:    c.groupIntent(createNewGroup, resolvedGroupID, groupName),
		}

		result, uploadErr := c.uploadService.UploadPhoto(r.Context(), upload)

		if uploadErr != nil {
			slog.Error("error uploading photo", "filename", filename, "error", uploadErr)
			responses.WriteError(w, uploadErr)
			return
		}

		// The first photo of a create-new-group request establishes the
		// group every later photo joins.
		if createNewGroup && resolvedGroupID == nil {
			resolvedGroupID = result.GroupID
		}

		uploadedFiles = append(uploadedFiles, result)
	}

	slog.Info("upload request complete", "files", len(uploadedFiles))

	responses.JSON(w, http.StatusOK, viewmodels.UploadResult{
		Success: true,
		Files:   uploadedFiles,
		GroupID: resolvedGroupID,
	})
}

func (c UploadController) readFilePart(r *http.Request, fieldName string) ([]byte, string, error) {
	file, header, err := r.FormFile(fieldName)

	if err != nil {
		return nil, "", fmt.Errorf("error opening file part '%s': %w", fieldName, err)
	}

	defer file.Close()

	data, err := io.ReadAll(file)

	if err != nil {
		return nil, "", fmt.Errorf("error reading file part '%s': %w", fieldName, err)
	}

	filename := header.Filename

	if filename == "" {
		filename = "unnamed_file"
	}

	slog.Debug("read file part", "fieldName", fieldName, "filename", filename, "size", len(data))
	return data, filename, nil
}

func (c UploadController) groupIntent(createNewGroup bool, resolvedGroupID *string, groupName string) models.GroupInfo {
	intent := models.GroupInfo{}

	switch {
	case resolvedGroupID != nil:
		intent.GroupID = resolvedGroupID

	case createNewGroup:
		intent.CreateNewGroup = true
		intent.GroupName = &groupName
	}

	return intent
}
