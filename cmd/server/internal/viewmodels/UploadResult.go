package viewmodels

import (
	"github.com/Nkemjikanma/esemese-backend/pkg/models"
)

type UploadResult struct {
	Success bool                  `json:"success"`
	Files   []models.UploadedFile `json:"files"`
	GroupID *string               `json:"group_id"`
	Message string                `json:"message,omitempty"`
}
