package viewmodels

import (
	"github.com/Nkemjikanma/esemese-backend/pkg/models"
)

type GroupList struct {
	Success bool                 `json:"success"`
	Groups  []models.PinataGroup `json:"groups"`
	Message string               `json:"message,omitempty"`
}
