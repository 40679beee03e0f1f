package viewmodels

import (
	"github.com/Nkemjikanma/esemese-backend/pkg/models"
)

type GroupsWithThumbnails struct {
	Success     bool                        `json:"success"`
	Collections []models.GroupWithThumbnail `json:"collections"`
	Message     string                      `json:"message,omitempty"`
}
