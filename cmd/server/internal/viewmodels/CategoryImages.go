package viewmodels

import (
	"github.com/Nkemjikanma/esemese-backend/pkg/models"
)

type CategoryImages struct {
	Success bool                `json:"success"`
	Images  []models.PinataFile `json:"images"`
	Message string              `json:"message,omitempty"`
}
