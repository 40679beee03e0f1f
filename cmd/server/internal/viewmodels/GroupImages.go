package viewmodels

import (
	"github.com/Nkemjikanma/esemese-backend/pkg/models"
)

type GroupImages struct {
	Success bool                `json:"success"`
	GroupID string              `json:"group_id"`
	Images  []models.PinataFile `json:"images"`
	Message string              `json:"message,omitempty"`
}
