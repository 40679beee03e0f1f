package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Nkemjikanma/esemese-backend/pkg/models"
	"github.com/Nkemjikanma/esemese-backend/pkg/pinata"
)

type UploadServicer interface {
	UploadPhoto(ctx context.Context, upload models.PhotoUpload) (models.UploadedFile, error)
}

type UploadServiceConfig struct {
	Pinata      pinata.Client
	MaxAttempts int

	// Sleep is swappable so tests can observe backoff delays without
	// waiting them out. Defaults to time.Sleep.
	Sleep func(d time.Duration)
}

type UploadService struct {
	pinata      pinata.Client
	maxAttempts int
	sleep       func(d time.Duration)
}

func NewUploadService(config UploadServiceConfig) UploadService {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}

	if config.Sleep == nil {
		config.Sleep = time.Sleep
	}

	return UploadService{
		pinata:      config.Pinata,
		maxAttempts: config.MaxAttempts,
		sleep:       config.Sleep,
	}
}

/*
UploadPhoto resolves the photo's destination group, then submits the
multipart form through a bounded retry policy. Only transport timeouts
and connection failures are retried, with exponential backoff (2s, 4s,
8s); an upstream rejection or decode failure is returned on first
occurrence. The form is rebuilt for every attempt since a multipart
body cannot be replayed once sent.
*/
func (s UploadService) UploadPhoto(ctx context.Context, upload models.PhotoUpload) (models.UploadedFile, error) {
	var (
		err     error
		groupID string
	)

	if groupID, err = s.resolveGroup(ctx, upload.Group); err != nil {
		return models.UploadedFile{}, err
	}

	var (
		attempts int
		lastErr  error
	)

	for attempts < s.maxAttempts {
		result, sendErr := s.pinata.UploadFile(ctx, buildUploadForm(upload, groupID))

		if sendErr == nil {
			return result, nil
		}

		if !pinata.IsRetryable(sendErr) {
			return models.UploadedFile{}, sendErr
		}

		lastErr = sendErr
		attempts++

		delay := time.Duration(1<<attempts) * time.Second

		slog.Warn("retrying pinata upload",
			"filename", upload.Filename,
			"delay", delay,
			"attempt", attempts,
			"maxAttempts", s.maxAttempts,
			"error", sendErr,
		)

		s.sleep(delay)
	}

	if lastErr == nil {
		lastErr = errors.New("maximum upload retries exceeded")
	}

	return models.UploadedFile{}, lastErr
}

/*
resolveGroup turns the caller's group intent into a concrete group id:
create one upstream, pass an existing id through, or none at all. A
failed creation is terminal with no retry; uploading into a destination
that was never created is meaningless.
*/
func (s UploadService) resolveGroup(ctx context.Context, group models.GroupInfo) (string, error) {
	if !group.CreateNewGroup {
		if group.GroupID != nil {
			return *group.GroupID, nil
		}

		return "", nil
	}

	if group.GroupName == nil || *group.GroupName == "" {
		return "", fmt.Errorf("group name is needed for new group creations")
	}

	groupID, err := s.pinata.CreateGroup(ctx, *group.GroupName)

	if err != nil {
		return "", fmt.Errorf("error creating group '%s': %w", *group.GroupName, err)
	}

	slog.Info("created new pinata group", "name", *group.GroupName, "id", groupID)
	return groupID, nil
}

// buildUploadForm flattens the photo metadata into the keyvalues blob
// Pinata stores. Category is always present; every other field is
// dropped when empty rather than sent as an empty value.
func buildUploadForm(upload models.PhotoUpload, groupID string) pinata.UploadForm {
	keyvalues := map[string]string{
		"category": upload.Metadata.Category,
	}

	optional := map[string]string{
		"description":  upload.Metadata.Description,
		"camera":       upload.Metadata.Camera,
		"lens":         upload.Metadata.Lens,
		"iso":          upload.Metadata.Iso,
		"aperture":     upload.Metadata.Aperture,
		"shutterSpeed": upload.Metadata.ShutterSpeed,
	}

	for key, value := range optional {
		if value != "" {
			keyvalues[key] = value
		}
	}

	return pinata.UploadForm{
		FileData:  upload.File,
		Filename:  upload.Filename,
		Name:      upload.Metadata.Title,
		GroupID:   groupID,
		Keyvalues: keyvalues,
	}
}
