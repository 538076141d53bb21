package dto

import (
	"finsight/internal/models"
)

// TransactionPage is the unit every caller receives: the total match count
// before pagination plus the page slice. Callers must never infer the total
// from the page length.
type TransactionPage struct {
	Size    int                  `json:"size"`
	Data    []models.Transaction `json:"data"`
	Mode    string               `json:"mode"`
	Message string               `json:"message,omitempty"`
}

type DemoPreferenceRequest struct {
	DemoMode bool `json:"demoMode"`
}

type DemoPreferenceResponse struct {
	DemoMode   *bool `json:"demoMode"`
	UserExists bool  `json:"userExists"`
}
